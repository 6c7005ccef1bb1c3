package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTitleLength bounds the title of a post.
const MaxTitleLength = 50

// Post is a blog entry owned by its author. Author and creation time are fixed
// at creation and never change afterwards.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Author    string    `json:"author"` // author's username, read-only
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPost builds a post with a fresh ID and creation time, enforcing the field
// constraints: title required and bounded, text required.
func NewPost(authorID, title, text string) (Post, error) {
	if title == "" {
		return Post{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return Post{}, fmt.Errorf("%w: title must be at most %d characters", ErrValidation, MaxTitleLength)
	}
	if text == "" {
		return Post{}, fmt.Errorf("%w: text is required", ErrValidation)
	}
	return Post{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Title:     title,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}, nil
}
