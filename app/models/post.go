package models

import (
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// OwnedBy reports whether the post belongs to the given viewer.
func (p *Post) OwnedBy(userID int64) bool {
	return p.AuthorID == userID
}

// Edited reports whether the post was changed after creation.
func (p *Post) Edited() bool {
	return !p.UpdatedAt.IsZero() && !p.UpdatedAt.Equal(p.CreatedAt)
}

// Hashtags returns the hashtag tokens in the caption, without the
// leading "#", lowercased.
func (p *Post) Hashtags() []string {
	return ExtractHashtags(p.Caption)
}

// AddComment appends a comment to the post's comment list.
func (p *Post) AddComment(comment *Comment) {
	if comment == nil {
		return
	}
	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
}

// RemoveComment removes a comment from the post's comment list by ID.
func (p *Post) RemoveComment(commentID int64) bool {
	for i, comment := range p.Comments {
		if comment.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}

// ExtractHashtags pulls "#word" tokens out of text. Tokens are returned
// lowercased and without the marker.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m[1]))
	}
	return tags
}

// Validate checks if the input for a new post is acceptable.
func (in *NewPostInput) Validate() error {
	return validate.Struct(in)
}
