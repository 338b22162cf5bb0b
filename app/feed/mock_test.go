package feed

import (
	"context"
	"sync"

	"instafeed/app/models"
)

// mockAPI fakes the remote post service for reconciler tests.
type mockAPI struct {
	mu sync.Mutex

	pages     [][]*models.Post
	listCalls int
	listErr   error

	createCalls int
	createErr   error

	likeCalls   int
	unlikeCalls int
	likeErr     error
	onLike      func()

	likeCount      int64
	likeCountErr   error
	likeCountCalls int

	updateCaptions map[int64]string
	updateErr      error

	deleteCalls []int64
	deleteErr   error

	comments           map[int64][]*models.Comment
	listCommentCalls   int
	addCommentCalls    int
	deleteCommentCalls int
	commentErr         error

	followCalls   int
	unfollowCalls int
	followErr     error
	followStarted chan struct{}
	followBlock   chan struct{}

	isFollowing      bool
	isFollowingErr   error
	isFollowingCalls int

	followerCount  int64
	followingCount int64

	searchResults []*models.User
	searchErr     error
	searchCalls   int

	photoURLs []string
	photoErr  error
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		updateCaptions: make(map[int64]string),
		comments:       make(map[int64][]*models.Comment),
	}
}

// PostService

func (m *mockAPI) ListPosts(ctx context.Context, page, size int) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	idx := m.listCalls
	m.listCalls++
	if idx < len(m.pages) {
		return m.pages[idx], nil
	}
	return []*models.Post{}, nil
}

func (m *mockAPI) CreatePost(ctx context.Context, in models.NewPostInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	return m.createErr
}

func (m *mockAPI) UpdatePost(ctx context.Context, id int64, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updateCaptions[id] = caption
	return nil
}

func (m *mockAPI) DeletePost(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleteCalls = append(m.deleteCalls, id)
	return nil
}

func (m *mockAPI) Like(ctx context.Context, postID int64) error {
	m.mu.Lock()
	m.likeCalls++
	hook := m.onLike
	err := m.likeErr
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	return err
}

func (m *mockAPI) Unlike(ctx context.Context, postID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unlikeCalls++
	return m.likeErr
}

func (m *mockAPI) LikeCount(ctx context.Context, postID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.likeCountCalls++
	return m.likeCount, m.likeCountErr
}

func (m *mockAPI) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCommentCalls++
	if m.commentErr != nil {
		return nil, m.commentErr
	}
	return m.comments[postID], nil
}

func (m *mockAPI) AddComment(ctx context.Context, postID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCommentCalls++
	if m.commentErr != nil {
		return m.commentErr
	}
	m.comments[postID] = append(m.comments[postID], &models.Comment{
		ID:      int64(len(m.comments[postID]) + 1),
		PostID:  postID,
		Content: text,
	})
	return nil
}

func (m *mockAPI) DeleteComment(ctx context.Context, postID, commentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCommentCalls++
	if m.commentErr != nil {
		return m.commentErr
	}
	kept := m.comments[postID][:0]
	for _, c := range m.comments[postID] {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	m.comments[postID] = kept
	return nil
}

// UserService

func (m *mockAPI) Follow(ctx context.Context, userID int64) error {
	m.mu.Lock()
	m.followCalls++
	started := m.followStarted
	block := m.followBlock
	err := m.followErr
	m.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	return err
}

func (m *mockAPI) Unfollow(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unfollowCalls++
	return m.followErr
}

func (m *mockAPI) IsFollowing(ctx context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isFollowingCalls++
	return m.isFollowing, m.isFollowingErr
}

func (m *mockAPI) FollowerCount(ctx context.Context, userID int64) (int64, error) {
	return m.followerCount, nil
}

func (m *mockAPI) FollowingCount(ctx context.Context, userID int64) (int64, error) {
	return m.followingCount, nil
}

func (m *mockAPI) SearchUsers(ctx context.Context, query string) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults, nil
}

func (m *mockAPI) UpdateProfilePhoto(ctx context.Context, imageURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.photoErr != nil {
		return m.photoErr
	}
	m.photoURLs = append(m.photoURLs, imageURL)
	return nil
}
