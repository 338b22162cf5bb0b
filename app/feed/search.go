package feed

import (
	"context"
	"strings"

	"instafeed/app/models"
)

// Search filters the already-fetched posts by caption text or hashtag
// token, case-insensitively. Results are bounded by what has been
// fetched so far; this is not a server-side search.
func (r *Reconciler) Search(query string) []*models.Post {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	tagQuery := strings.TrimPrefix(query, "#")

	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*models.Post
	for _, p := range r.feed {
		if strings.Contains(strings.ToLower(p.Caption), query) {
			matches = append(matches, p)
			continue
		}
		for _, tag := range p.Hashtags() {
			if strings.Contains(tag, tagQuery) {
				matches = append(matches, p)
				break
			}
		}
	}
	return matches
}

// ResolveAuthorID maps a display name or email to a user ID via user
// search. Results, including failures, are cached for the session; a
// cached failure keeps the follow control suppressed without re-querying.
func (r *Reconciler) ResolveAuthorID(ctx context.Context, identifier string) (int64, bool) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return 0, false
	}

	r.mu.Lock()
	if id, ok := r.userIDCache[identifier]; ok {
		r.mu.Unlock()
		return id, id != 0
	}
	r.mu.Unlock()

	users, err := r.users.SearchUsers(ctx, identifier)
	if err != nil {
		r.log.Warn().Str("identifier", identifier).Err(err).Msg("author lookup failed")
		return 0, false
	}

	id := matchUser(users, identifier)

	r.mu.Lock()
	r.userIDCache[identifier] = id
	r.mu.Unlock()
	return id, id != 0
}

// matchUser prefers an exact username/email/name match, then falls back
// to the first search result.
func matchUser(users []*models.User, identifier string) int64 {
	lower := strings.ToLower(identifier)
	for _, u := range users {
		if strings.ToLower(u.Username) == lower ||
			strings.ToLower(u.Email) == lower ||
			strings.ToLower(u.Name) == lower {
			return u.ID
		}
	}
	if len(users) > 0 {
		return users[0].ID
	}
	return 0
}

// resolveAuthor picks the post's best identifier and resolves it.
func (r *Reconciler) resolveAuthor(ctx context.Context, p *models.Post) (int64, bool) {
	identifier := p.Username
	if identifier == "" {
		identifier = p.UserEmail
	}
	return r.ResolveAuthorID(ctx, identifier)
}
