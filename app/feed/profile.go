package feed

import (
	"context"
	"fmt"
	"strings"

	"instafeed/app/models"
)

// statsFetchSize bounds the superset fetched for own-post counting and
// profile views, mirroring the search bound.
const statsFetchSize = 100

// Stats is the viewer's sidebar numbers.
type Stats struct {
	Posts     int64
	Followers int64
	Following int64
}

// Profile is the viewer's own page: identity, stats, and their posts.
type Profile struct {
	UserID   int64
	Username string
	Stats    Stats
	Posts    []*models.Post
}

// Stats fetches the viewer's follower/following counts from the server
// and counts their posts out of a bounded superset.
func (r *Reconciler) Stats(ctx context.Context) (Stats, error) {
	own, err := r.ownPosts(ctx)
	if err != nil {
		return Stats{}, err
	}
	return r.statsFor(ctx, own)
}

// Profile assembles the viewer's profile page. The own-post superset is
// fetched once and feeds both the stats and the post list.
func (r *Reconciler) Profile(ctx context.Context) (Profile, error) {
	own, err := r.ownPosts(ctx)
	if err != nil {
		return Profile{}, err
	}
	stats, err := r.statsFor(ctx, own)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		UserID:   r.sess.UserID,
		Username: r.sess.Username,
		Stats:    stats,
		Posts:    own,
	}, nil
}

func (r *Reconciler) statsFor(ctx context.Context, own []*models.Post) (Stats, error) {
	followers, err := r.users.FollowerCount(ctx, r.sess.UserID)
	if err != nil {
		return Stats{}, fmt.Errorf("follower count: %w", err)
	}
	following, err := r.users.FollowingCount(ctx, r.sess.UserID)
	if err != nil {
		return Stats{}, fmt.Errorf("following count: %w", err)
	}
	return Stats{
		Posts:     int64(len(own)),
		Followers: followers,
		Following: following,
	}, nil
}

// CreatePost validates and submits a new post, then resets the feed so
// the next load starts from the first page and includes it.
func (r *Reconciler) CreatePost(ctx context.Context, in models.NewPostInput) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	if err := r.posts.CreatePost(ctx, in); err != nil {
		return err
	}
	r.Reset()
	return nil
}

// UpdateProfilePhoto points the viewer's profile photo at a new image
// URL. A blank URL is a silent no-op.
func (r *Reconciler) UpdateProfilePhoto(ctx context.Context, imageURL string) error {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil
	}
	return r.users.UpdateProfilePhoto(ctx, imageURL)
}

func (r *Reconciler) ownPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := r.posts.ListPosts(ctx, 0, statsFetchSize)
	if err != nil {
		return nil, err
	}
	var own []*models.Post
	for _, p := range posts {
		if p.OwnedBy(r.sess.UserID) {
			own = append(own, p)
		}
	}
	return own, nil
}
