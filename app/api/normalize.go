package api

import (
	"bytes"
	"encoding/json"

	"instafeed/app/models"
)

// The remote service has gone through several revisions that wrapped
// list responses under different field names. Each decoder tries the
// recognized shapes in a fixed order and settles on an empty result
// when none of them match; a shape mismatch is never an error.

// unwrapArray returns the JSON array inside data: either data itself,
// or the first of the named envelope fields that holds an array.
func unwrapArray(data []byte, fields ...string) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil
	}
	for _, field := range fields {
		inner, ok := envelope[field]
		if !ok {
			continue
		}
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '[' {
			return inner
		}
	}
	return nil
}

// decodePosts accepts a raw array or {data}/{posts}/{results} envelopes.
func decodePosts(data []byte) []*models.Post {
	raw := unwrapArray(data, "data", "posts", "results")
	if raw == nil {
		return []*models.Post{}
	}
	var posts []*models.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return []*models.Post{}
	}
	return posts
}

// decodeComments accepts a raw array or {comments}/{data} envelopes.
func decodeComments(data []byte) []*models.Comment {
	raw := unwrapArray(data, "comments", "data")
	if raw == nil {
		return []*models.Comment{}
	}
	var comments []*models.Comment
	if err := json.Unmarshal(raw, &comments); err != nil {
		return []*models.Comment{}
	}
	return comments
}

// decodeUsers accepts a raw array or {results}/{data} envelopes.
func decodeUsers(data []byte) []*models.User {
	raw := unwrapArray(data, "results", "data")
	if raw == nil {
		return []*models.User{}
	}
	var users []*models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return []*models.User{}
	}
	return users
}

// decodeCount accepts {count}, an enveloped array under field, or a raw
// array, in that order; the array forms count their elements.
func decodeCount(data []byte, field string) int64 {
	var counted struct {
		Count *int64 `json:"count"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), &counted); err == nil && counted.Count != nil {
		return *counted.Count
	}

	raw := unwrapArray(data, field)
	if raw == nil {
		return 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return int64(len(items))
}
