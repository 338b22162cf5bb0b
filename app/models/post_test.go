package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:        1,
				AuthorID:  2,
				Username:  "alice",
				Caption:   "Morning run #fitness",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "negative like count",
			post: &Post{
				ID:        1,
				LikeCount: -1,
			},
			wantErr: true,
		},
		{
			name: "negative comment count",
			post: &Post{
				ID:           1,
				CommentCount: -3,
			},
			wantErr: true,
		},
		{
			name: "negative id",
			post: &Post{
				ID: -5,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name    string
		caption string
		want    []string
	}{
		{"single tag", "Enjoying the sunny day! #sunny", []string{"sunny"}},
		{"multiple tags", "#beach #Sunset vibes", []string{"beach", "sunset"}},
		{"no tags", "just text", nil},
		{"empty", "", nil},
		{"marker alone", "just a # sign", nil},
		{"tag inside word", "c#sharp", []string{"sharp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.caption))
		})
	}
}

func TestPostOwnedBy(t *testing.T) {
	p := &Post{ID: 1, AuthorID: 7}
	assert.True(t, p.OwnedBy(7))
	assert.False(t, p.OwnedBy(8))
}

func TestPostEdited(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	p := &Post{CreatedAt: created, UpdatedAt: created}
	assert.False(t, p.Edited())

	p.UpdatedAt = created.Add(time.Hour)
	assert.True(t, p.Edited())

	q := &Post{CreatedAt: created}
	assert.False(t, q.Edited(), "zero UpdatedAt means never edited")
}

func TestRemoveComment(t *testing.T) {
	p := &Post{ID: 1}
	p.AddComment(&Comment{ID: 10, Content: "first"})
	p.AddComment(&Comment{ID: 11, Content: "second"})

	assert.True(t, p.RemoveComment(10))
	assert.Len(t, p.Comments, 1)
	assert.Equal(t, int64(11), p.Comments[0].ID)

	assert.False(t, p.RemoveComment(99))
	assert.Len(t, p.Comments, 1)
}

func TestNewPostInputValidation(t *testing.T) {
	valid := &NewPostInput{Caption: "hello", ImageURL: "https://example.com/a.jpg"}
	assert.NoError(t, valid.Validate())

	empty := &NewPostInput{}
	assert.Error(t, empty.Validate())

	badURL := &NewPostInput{Caption: "hello", ImageURL: "not a url"}
	assert.Error(t, badURL.Validate())
}
