package api

import (
	"context"

	"instafeed/app/models"
)

// PostService defines the post-side surface of the remote post service.
type PostService interface {
	ListPosts(ctx context.Context, page, size int) ([]*models.Post, error)
	CreatePost(ctx context.Context, in models.NewPostInput) error
	UpdatePost(ctx context.Context, id int64, caption string) error
	DeletePost(ctx context.Context, id int64) error
	Like(ctx context.Context, postID int64) error
	Unlike(ctx context.Context, postID int64) error
	LikeCount(ctx context.Context, postID int64) (int64, error)
	ListComments(ctx context.Context, postID int64) ([]*models.Comment, error)
	AddComment(ctx context.Context, postID int64, text string) error
	DeleteComment(ctx context.Context, postID, commentID int64) error
}

// UserService defines the user-side surface of the remote post service.
type UserService interface {
	Follow(ctx context.Context, userID int64) error
	Unfollow(ctx context.Context, userID int64) error
	IsFollowing(ctx context.Context, userID int64) (bool, error)
	FollowerCount(ctx context.Context, userID int64) (int64, error)
	FollowingCount(ctx context.Context, userID int64) (int64, error)
	SearchUsers(ctx context.Context, query string) ([]*models.User, error)
	UpdateProfilePhoto(ctx context.Context, imageURL string) error
}
