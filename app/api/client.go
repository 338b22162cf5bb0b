package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"instafeed/app/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client talks to the remote post service. All requests carry the
// session's bearer token and a generated request ID.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client

	log zerolog.Logger
}

// NewClient creates a Client for the given service root, e.g.
// "https://example.com". Paths in this package include the /api prefix.
func NewClient(baseURL, token string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "api").Logger(),
	}
}

var (
	_ PostService = (*Client)(nil)
	_ UserService = (*Client)(nil)
)

// do issues one request and returns the response body. Non-2xx statuses
// are mapped through statusError; the body is fully read and closed.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("request rejected")
		return nil, statusError(method, path, resp.StatusCode)
	}
	return data, nil
}

// Posts

func (c *Client) ListPosts(ctx context.Context, page, size int) ([]*models.Post, error) {
	path := fmt.Sprintf("/api/posts?page=%d&size=%d", page, size)
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodePosts(data), nil
}

func (c *Client) CreatePost(ctx context.Context, in models.NewPostInput) error {
	_, err := c.do(ctx, http.MethodPost, "/api/posts", in)
	return err
}

func (c *Client) UpdatePost(ctx context.Context, id int64, caption string) error {
	body := map[string]string{"caption": caption}
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), body)
	return err
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil)
	return err
}

// Likes

func (c *Client) Like(ctx context.Context, postID int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), nil)
	return err
}

func (c *Client) Unlike(ctx context.Context, postID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d/unlike", postID), nil)
	return err
}

func (c *Client) LikeCount(ctx context.Context, postID int64) (int64, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d/likes", postID), nil)
	if err != nil {
		return 0, err
	}
	return decodeCount(data, "likes"), nil
}

// Comments

func (c *Client) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", postID), nil)
	if err != nil {
		return nil, err
	}
	return decodeComments(data), nil
}

func (c *Client) AddComment(ctx context.Context, postID int64, text string) error {
	body := map[string]string{"text": text}
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), body)
	return err
}

func (c *Client) DeleteComment(ctx context.Context, postID, commentID int64) error {
	path := fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID)
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

// Users

func (c *Client) Follow(ctx context.Context, userID int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", userID), nil)
	return err
}

func (c *Client) Unfollow(ctx context.Context, userID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d/unfollow", userID), nil)
	return err
}

func (c *Client) IsFollowing(ctx context.Context, userID int64) (bool, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/is-following", userID), nil)
	if err != nil {
		return false, err
	}
	var res struct {
		Following bool `json:"following"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return false, nil
	}
	return res.Following, nil
}

func (c *Client) FollowerCount(ctx context.Context, userID int64) (int64, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/followers/count", userID), nil)
	if err != nil {
		return 0, err
	}
	return decodeCount(data, ""), nil
}

func (c *Client) FollowingCount(ctx context.Context, userID int64) (int64, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/following/count", userID), nil)
	if err != nil {
		return 0, err
	}
	return decodeCount(data, ""), nil
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]*models.User, error) {
	path := "/api/users/search?query=" + url.QueryEscape(query)
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeUsers(data), nil
}

func (c *Client) UpdateProfilePhoto(ctx context.Context, imageURL string) error {
	body := map[string]string{"imageUrl": imageURL}
	_, err := c.do(ctx, http.MethodPut, "/api/users/profile/photo", body)
	return err
}
