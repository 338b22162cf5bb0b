package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post is one feed entry as served by the remote post service.
type Post struct {
	ID                 int64      `json:"id" validate:"gte=0"`
	AuthorID           int64      `json:"authorId"`
	Username           string     `json:"username"`
	UserEmail          string     `json:"userEmail,omitempty"`
	Caption            string     `json:"caption" validate:"max=2200"`
	ImageURL           string     `json:"imageUrl,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	LikeCount          int64      `json:"likeCount" validate:"gte=0"`
	CommentCount       int64      `json:"commentCount" validate:"gte=0"`
	LikedByCurrentUser bool       `json:"likedByCurrentUser"`
	FollowingAuthor    *bool      `json:"followingAuthor,omitempty"`
	Comments           []*Comment `json:"-" validate:"-"`
}

// Comment belongs to exactly one post. The author arrives nested under
// "user"; older server builds put a flat "username" on the comment
// itself, so both are kept.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId,omitempty"`
	User      *User     `json:"user,omitempty"`
	Username  string    `json:"username,omitempty"`
	Content   string    `json:"content" validate:"required,min=1,max=500"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is the remote service's user record, as returned by user search.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// FeedPage is one fetched batch of posts, in server-insertion order.
type FeedPage struct {
	Posts []*Post
	Index int
}

// NewPostInput carries user input for post creation.
type NewPostInput struct {
	Caption  string `json:"caption" validate:"required,min=1,max=2200"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}
