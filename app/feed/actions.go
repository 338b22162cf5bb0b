package feed

import (
	"context"
	"strings"
	"time"
)

// ToggleLike flips the post's liked state and adjusts the displayed
// count before the network call resolves. If the call fails the
// optimistic state is left as-is; the authoritative count re-sync after
// a successful call is the only reconciliation path.
func (r *Reconciler) ToggleLike(ctx context.Context, postID int64) error {
	r.mu.Lock()
	p, ok := r.byID[postID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownPost
	}
	wasLiked := p.LikedByCurrentUser
	p.LikedByCurrentUser = !wasLiked
	if wasLiked {
		p.LikeCount--
	} else {
		p.LikeCount++
	}
	if p.LikeCount < 0 {
		p.LikeCount = 0
	}
	r.mu.Unlock()

	var err error
	if wasLiked {
		err = r.posts.Unlike(ctx, postID)
	} else {
		err = r.posts.Like(ctx, postID)
	}
	if err != nil {
		// No rollback. The flipped state stays until the next re-sync.
		r.log.Warn().Int64("post", postID).Err(err).Msg("like not confirmed, state unreconciled")
		return err
	}

	count, err := r.posts.LikeCount(ctx, postID)
	if err != nil {
		r.log.Warn().Int64("post", postID).Err(err).Msg("like count re-sync failed")
		return nil
	}
	r.mu.Lock()
	p.LikeCount = count
	r.mu.Unlock()
	return nil
}

// ToggleFollow flips follow state for the post's author, optimistically.
// While a request for that author is in flight further calls are
// no-ops, so a double click cannot race the first request.
func (r *Reconciler) ToggleFollow(ctx context.Context, postID int64) error {
	r.mu.Lock()
	p, ok := r.byID[postID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownPost
	}
	if p.OwnedBy(r.sess.UserID) {
		r.mu.Unlock()
		return nil
	}
	authorID := p.AuthorID
	if authorID == 0 {
		r.mu.Unlock()
		return ErrUnresolvedAuthor
	}
	if r.inflightFollow[authorID] {
		r.mu.Unlock()
		return nil
	}
	r.inflightFollow[authorID] = true

	wasFollowing := p.FollowingAuthor != nil && *p.FollowingAuthor
	nowFollowing := !wasFollowing
	p.FollowingAuthor = &nowFollowing
	r.followingCache[authorID] = nowFollowing
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.inflightFollow, authorID)
		r.mu.Unlock()
	}()

	var err error
	if wasFollowing {
		err = r.users.Unfollow(ctx, authorID)
	} else {
		err = r.users.Follow(ctx, authorID)
	}
	if err != nil {
		r.log.Warn().Int64("author", authorID).Err(err).Msg("follow not confirmed, state unreconciled")
		return err
	}
	return nil
}

// EditCaption replaces the caption only after server confirmation.
// Empty or unchanged text is a silent no-op; no request is issued.
func (r *Reconciler) EditCaption(ctx context.Context, postID int64, newText string) error {
	newText = strings.TrimSpace(newText)

	r.mu.Lock()
	p, ok := r.byID[postID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownPost
	}
	if newText == "" || newText == p.Caption {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	if err := r.posts.UpdatePost(ctx, postID, newText); err != nil {
		return err
	}

	r.mu.Lock()
	p.Caption = newText
	p.UpdatedAt = time.Now()
	r.mu.Unlock()
	return nil
}

// DeletePost removes a post after the confirmer accepts. The returned
// bool says whether the post was actually deleted; a declined prompt or
// a failed request leaves everything unchanged.
func (r *Reconciler) DeletePost(ctx context.Context, postID int64, confirm Confirmer) (bool, error) {
	r.mu.Lock()
	if _, ok := r.byID[postID]; !ok {
		r.mu.Unlock()
		return false, ErrUnknownPost
	}
	r.mu.Unlock()

	if confirm != nil && !confirm("Are you sure you want to delete this post?") {
		return false, nil
	}

	if err := r.posts.DeletePost(ctx, postID); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, postID)
	for i, p := range r.feed {
		if p.ID == postID {
			r.feed = append(r.feed[:i], r.feed[i+1:]...)
			break
		}
	}
	return true, nil
}

// LoadComments replaces the post's comment list with the server's
// current version. There is no merging with local state.
func (r *Reconciler) LoadComments(ctx context.Context, postID int64) error {
	comments, err := r.posts.ListComments(ctx, postID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[postID]
	if !ok {
		return ErrUnknownPost
	}
	p.Comments = comments
	return nil
}

// AddComment posts a new comment, then reloads the full comment list
// and bumps the displayed count. Empty input is a silent no-op.
func (r *Reconciler) AddComment(ctx context.Context, postID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	r.mu.Lock()
	p, ok := r.byID[postID]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownPost
	}
	r.mu.Unlock()

	if err := r.posts.AddComment(ctx, postID, text); err != nil {
		return err
	}

	if err := r.LoadComments(ctx, postID); err != nil {
		r.log.Warn().Int64("post", postID).Err(err).Msg("comment reload failed")
	}

	r.mu.Lock()
	p.CommentCount++
	r.mu.Unlock()
	return nil
}

// DeleteComment removes a comment after the confirmer accepts, then
// reloads the comment list; the count never drops below zero.
func (r *Reconciler) DeleteComment(ctx context.Context, postID, commentID int64, confirm Confirmer) (bool, error) {
	r.mu.Lock()
	p, ok := r.byID[postID]
	if !ok {
		r.mu.Unlock()
		return false, ErrUnknownPost
	}
	r.mu.Unlock()

	if confirm != nil && !confirm("Delete this comment?") {
		return false, nil
	}

	if err := r.posts.DeleteComment(ctx, postID, commentID); err != nil {
		return false, err
	}

	if err := r.LoadComments(ctx, postID); err != nil {
		r.log.Warn().Int64("post", postID).Err(err).Msg("comment reload failed")
	}

	r.mu.Lock()
	if p.CommentCount > 0 {
		p.CommentCount--
	}
	r.mu.Unlock()
	return true, nil
}
