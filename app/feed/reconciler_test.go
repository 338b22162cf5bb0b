package feed

import (
	"context"
	"testing"

	"instafeed/app/models"
	"instafeed/app/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewerID = 42

func newTestReconciler(m *mockAPI, pageSize int) *Reconciler {
	sess := session.Session{UserID: viewerID, Username: "me", Token: "t"}
	return New(m, m, sess, pageSize, 500, zerolog.Nop())
}

func makePost(id, authorID int64, caption string, likes int64) *models.Post {
	return &models.Post{
		ID:        id,
		AuthorID:  authorID,
		Username:  "someone",
		Caption:   caption,
		LikeCount: likes,
	}
}

func makePosts(n int, startID int64) []*models.Post {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, makePost(startID+int64(i), 7, "post", 0))
	}
	return posts
}

func TestLoadNextPageAppends(t *testing.T) {
	m := newMockAPI()
	m.pages = [][]*models.Post{makePosts(3, 1), makePosts(3, 4)}
	r := newTestReconciler(m, 3)
	ctx := context.Background()

	page, err := r.LoadNextPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Index)
	assert.Len(t, r.Posts(), 3)
	assert.True(t, r.HasMore())

	_, err = r.LoadNextPage(ctx)
	require.NoError(t, err)
	assert.Len(t, r.Posts(), 6)
}

func TestHasMoreTurnsFalseOnShortPage(t *testing.T) {
	m := newMockAPI()
	m.pages = [][]*models.Post{makePosts(3, 1), makePosts(2, 4)}
	r := newTestReconciler(m, 3)
	ctx := context.Background()

	_, err := r.LoadNextPage(ctx)
	require.NoError(t, err)
	assert.True(t, r.HasMore(), "full page means more may exist")

	_, err = r.LoadNextPage(ctx)
	require.NoError(t, err)
	assert.False(t, r.HasMore(), "short page is terminal")

	// No further automatic loads after exhaustion.
	_, err = r.LoadNextPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, m.listCalls)
	assert.Len(t, r.Posts(), 5)
}

func TestShouldLoadMore(t *testing.T) {
	m := newMockAPI()
	m.pages = [][]*models.Post{makePosts(1, 1)}
	r := newTestReconciler(m, 3)

	assert.True(t, r.ShouldLoadMore(1000, 800, 2000), "within 500 of bottom")
	assert.False(t, r.ShouldLoadMore(100, 800, 2000), "far from bottom")

	// A short page exhausts the feed and disables the trigger entirely.
	_, err := r.LoadNextPage(context.Background())
	require.NoError(t, err)
	assert.False(t, r.ShouldLoadMore(1000, 800, 2000))
}

func TestResetStartsOver(t *testing.T) {
	m := newMockAPI()
	m.pages = [][]*models.Post{makePosts(1, 1), makePosts(3, 10)}
	r := newTestReconciler(m, 3)
	ctx := context.Background()

	_, err := r.LoadNextPage(ctx)
	require.NoError(t, err)
	assert.False(t, r.HasMore())

	r.Reset()
	assert.True(t, r.HasMore())
	assert.Empty(t, r.Posts())

	_, err = r.LoadNextPage(ctx)
	require.NoError(t, err)
	assert.Len(t, r.Posts(), 3)
}

func TestLoadNextPageDropsDuplicates(t *testing.T) {
	m := newMockAPI()
	m.pages = [][]*models.Post{makePosts(3, 1), makePosts(3, 2)}
	r := newTestReconciler(m, 3)
	ctx := context.Background()

	_, err := r.LoadNextPage(ctx)
	require.NoError(t, err)
	_, err = r.LoadNextPage(ctx)
	require.NoError(t, err)

	assert.Len(t, r.Posts(), 4, "overlapping IDs are kept once")
}

func TestOwnPostNeverCarriesFollowState(t *testing.T) {
	m := newMockAPI()
	following := true
	own := makePost(1, viewerID, "mine", 0)
	own.FollowingAuthor = &following
	m.pages = [][]*models.Post{{own}}
	r := newTestReconciler(m, 10)

	_, err := r.LoadNextPage(context.Background())
	require.NoError(t, err)

	p, ok := r.Post(1)
	require.True(t, ok)
	assert.Nil(t, p.FollowingAuthor)
}

func TestHydrateResolvesFollowState(t *testing.T) {
	m := newMockAPI()
	m.pages = [][]*models.Post{{makePost(1, 7, "a", 0), makePost(2, 7, "b", 0)}}
	m.isFollowing = true
	r := newTestReconciler(m, 10)
	ctx := context.Background()

	page, err := r.LoadNextPage(ctx)
	require.NoError(t, err)
	r.Hydrate(ctx, page)

	p1, _ := r.Post(1)
	require.NotNil(t, p1.FollowingAuthor)
	assert.True(t, *p1.FollowingAuthor)

	// Second post by the same author comes from the cache.
	p2, _ := r.Post(2)
	require.NotNil(t, p2.FollowingAuthor)
	assert.Equal(t, 1, m.isFollowingCalls)
}

func TestHydrateSuppressesUnresolvableAuthor(t *testing.T) {
	m := newMockAPI()
	anon := makePost(1, 0, "who wrote this", 0)
	anon.Username = "ghost"
	m.pages = [][]*models.Post{{anon}}
	m.searchResults = nil
	r := newTestReconciler(m, 10)
	ctx := context.Background()

	page, err := r.LoadNextPage(ctx)
	require.NoError(t, err)
	r.Hydrate(ctx, page)

	p, _ := r.Post(1)
	assert.Nil(t, p.FollowingAuthor, "unresolvable author keeps the control suppressed")

	// The failed resolution is cached; hydrating again does not re-query.
	r.Hydrate(ctx, page)
	assert.Equal(t, 1, m.searchCalls)
}

func TestHydrateLoadsComments(t *testing.T) {
	m := newMockAPI()
	m.pages = [][]*models.Post{{makePost(1, 7, "a", 0)}}
	m.comments[1] = []*models.Comment{{ID: 1, Content: "first"}}
	r := newTestReconciler(m, 10)
	ctx := context.Background()

	page, err := r.LoadNextPage(ctx)
	require.NoError(t, err)
	r.Hydrate(ctx, page)

	p, _ := r.Post(1)
	require.Len(t, p.Comments, 1)
	assert.Equal(t, "first", p.Comments[0].Content)
}
