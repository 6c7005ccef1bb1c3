package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Comment belongs to exactly one post and one author; both references are
// assigned by the server at creation and never taken from client input.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Author    string    `json:"author"` // author's username, read-only
	PostID    string    `json:"postId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewComment builds a comment with a fresh ID and creation time.
func NewComment(authorID, postID, text string) (Comment, error) {
	if text == "" {
		return Comment{}, fmt.Errorf("%w: text is required", ErrValidation)
	}
	return Comment{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		PostID:    postID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}, nil
}
