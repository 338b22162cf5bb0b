package feed

import (
	"context"
	"errors"
	"sync"

	"instafeed/app/api"
	"instafeed/app/models"
	"instafeed/app/session"

	"github.com/rs/zerolog"
)

var (
	ErrUnknownPost      = errors.New("unknown post")
	ErrUnresolvedAuthor = errors.New("author could not be resolved")
)

// Confirmer answers a yes/no prompt before a destructive action runs.
// Returning false aborts the action without issuing a request.
type Confirmer func(prompt string) bool

// Reconciler owns the in-memory feed state: the ordered post list, the
// paging cursor, and the session-scoped resolution caches. Local actions
// are applied optimistically and later reconciled against whatever the
// server confirms.
type Reconciler struct {
	posts api.PostService
	users api.UserService
	sess  session.Session
	log   zerolog.Logger

	pageSize        int
	scrollThreshold float64

	mu        sync.Mutex
	feed      []*models.Post
	byID      map[int64]*models.Post
	page      int
	isLoading bool
	hasMore   bool

	// Double-submit guard: one in-flight follow request per author.
	inflightFollow map[int64]bool

	// Session-scoped caches; entries live until the view is torn down.
	// A zero value in userIDCache marks an identifier as unresolvable.
	userIDCache    map[string]int64
	followingCache map[int64]bool
}

// New creates a Reconciler for the given session identity.
func New(posts api.PostService, users api.UserService, sess session.Session, pageSize int, scrollThreshold float64, log zerolog.Logger) *Reconciler {
	if pageSize < 1 {
		pageSize = 10
	}
	if scrollThreshold <= 0 {
		scrollThreshold = 500
	}
	return &Reconciler{
		posts:           posts,
		users:           users,
		sess:            sess,
		log:             log.With().Str("component", "feed").Logger(),
		pageSize:        pageSize,
		scrollThreshold: scrollThreshold,
		byID:            make(map[int64]*models.Post),
		hasMore:         true,
		inflightFollow:  make(map[int64]bool),
		userIDCache:     make(map[string]int64),
		followingCache:  make(map[int64]bool),
	}
}

// Posts returns the current feed in display order.
func (r *Reconciler) Posts() []*models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Post, len(r.feed))
	copy(out, r.feed)
	return out
}

// Post looks up one post by ID.
func (r *Reconciler) Post(id int64) (*models.Post, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	return p, ok
}

// HasMore reports whether another page may still exist. Once a page
// comes back short it stays false until Reset.
func (r *Reconciler) HasMore() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasMore
}

// Loading reports whether a page load is in flight.
func (r *Reconciler) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isLoading
}

// ShouldLoadMore implements the infinite-scroll gate: within the
// configured distance of the bottom edge, no load already running, and
// the feed not yet exhausted.
func (r *Reconciler) ShouldLoadMore(scrollPos, viewport, docHeight float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isLoading || !r.hasMore {
		return false
	}
	return scrollPos+viewport >= docHeight-r.scrollThreshold
}

// LoadNextPage fetches the next batch from the remote service and
// appends it to the feed. A page shorter than the page size marks the
// feed exhausted. Overlapping calls return an empty page.
func (r *Reconciler) LoadNextPage(ctx context.Context) (*models.FeedPage, error) {
	r.mu.Lock()
	pageIndex := r.page
	if r.isLoading || !r.hasMore {
		r.mu.Unlock()
		return &models.FeedPage{Index: pageIndex}, nil
	}
	r.isLoading = true
	r.mu.Unlock()

	posts, err := r.posts.ListPosts(ctx, pageIndex, r.pageSize)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.isLoading = false
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		if _, seen := r.byID[p.ID]; seen {
			continue
		}
		r.normalizeOwnership(p)
		r.feed = append(r.feed, p)
		r.byID[p.ID] = p
	}
	r.page++
	r.hasMore = len(posts) >= r.pageSize

	return &models.FeedPage{Posts: posts, Index: pageIndex}, nil
}

// Reset clears the feed and paging state so the next load starts over.
// Used after creating a post.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feed = nil
	r.byID = make(map[int64]*models.Post)
	r.page = 0
	r.isLoading = false
	r.hasMore = true
}

// Hydrate runs the per-post sub-loads for a fetched page: the comment
// list and, for posts by other users, the follow state. Individual
// failures are logged and skipped; the page stays usable.
func (r *Reconciler) Hydrate(ctx context.Context, page *models.FeedPage) {
	if page == nil {
		return
	}
	for _, p := range page.Posts {
		if err := r.LoadComments(ctx, p.ID); err != nil {
			r.log.Warn().Int64("post", p.ID).Err(err).Msg("comment load failed")
		}
		if err := r.resolveFollowState(ctx, p); err != nil && !errors.Is(err, ErrUnresolvedAuthor) {
			r.log.Warn().Int64("post", p.ID).Err(err).Msg("follow resolution failed")
		}
	}
}

// normalizeOwnership strips follow state from the viewer's own posts;
// it is meaningless there and must never render.
func (r *Reconciler) normalizeOwnership(p *models.Post) {
	if p.OwnedBy(r.sess.UserID) {
		p.FollowingAuthor = nil
	}
}

// resolveFollowState fills in FollowingAuthor for a post. Posts without
// a numeric author ID go through search-based resolution first; if that
// fails the follow control stays suppressed for the session.
func (r *Reconciler) resolveFollowState(ctx context.Context, p *models.Post) error {
	r.mu.Lock()
	if p.OwnedBy(r.sess.UserID) {
		p.FollowingAuthor = nil
		r.mu.Unlock()
		return nil
	}
	if p.FollowingAuthor != nil {
		r.mu.Unlock()
		return nil
	}
	authorID := p.AuthorID
	r.mu.Unlock()

	if authorID == 0 {
		resolved, ok := r.resolveAuthor(ctx, p)
		if !ok {
			return ErrUnresolvedAuthor
		}
		authorID = resolved
		r.mu.Lock()
		p.AuthorID = authorID
		r.mu.Unlock()
	}

	r.mu.Lock()
	if cached, ok := r.followingCache[authorID]; ok {
		f := cached
		p.FollowingAuthor = &f
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	following, err := r.users.IsFollowing(ctx, authorID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.followingCache[authorID] = following
	f := following
	p.FollowingAuthor = &f
	r.mu.Unlock()
	return nil
}
