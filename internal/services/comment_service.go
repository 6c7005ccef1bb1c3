package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avilic/blog-api-be/internal/models"
)

// CommentServiceProvider defines the interface for comment services.
type CommentServiceProvider interface {
	ListComments() ([]models.Comment, error)
	ListCommentsByPost(postID string) ([]models.Comment, error)
	ListCommentsByAuthor(authorID string) ([]models.Comment, error)
	GetCommentByID(id string) (models.Comment, error)
	CreateComment(authorID, postID, text string) (models.Comment, error)
	UpdateComment(id string, text *string) (models.Comment, error)
	DeleteComment(id string) error
}

// CommentService provides business logic for comment management.
type CommentService struct {
	db *sql.DB
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{db: db}
}

const commentColumns = "c.id, c.author_id, u.username, c.post_id, c.text, c.created_at"

func scanComment(row interface{ Scan(...any) error }) (models.Comment, error) {
	var comment models.Comment
	err := row.Scan(&comment.ID, &comment.AuthorID, &comment.Author, &comment.PostID, &comment.Text, &comment.CreatedAt)
	return comment, err
}

func (s *CommentService) queryComments(query string, args ...any) ([]models.Comment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// ListComments returns all comments ordered by creation time.
func (s *CommentService) ListComments() ([]models.Comment, error) {
	return s.queryComments(
		"SELECT " + commentColumns + " FROM comments c JOIN users u ON u.id = c.author_id ORDER BY c.created_at",
	)
}

// ListCommentsByPost returns the comments under one post ordered by creation
// time. An unknown post yields an empty list, not an error.
func (s *CommentService) ListCommentsByPost(postID string) ([]models.Comment, error) {
	return s.queryComments(
		"SELECT "+commentColumns+" FROM comments c JOIN users u ON u.id = c.author_id WHERE c.post_id = ? ORDER BY c.created_at",
		postID,
	)
}

// ListCommentsByAuthor returns the comments of one author ordered by creation
// time.
func (s *CommentService) ListCommentsByAuthor(authorID string) ([]models.Comment, error) {
	return s.queryComments(
		"SELECT "+commentColumns+" FROM comments c JOIN users u ON u.id = c.author_id WHERE c.author_id = ? ORDER BY c.created_at",
		authorID,
	)
}

// GetCommentByID retrieves a single comment by its ID.
func (s *CommentService) GetCommentByID(id string) (models.Comment, error) {
	row := s.db.QueryRow(
		"SELECT "+commentColumns+" FROM comments c JOIN users u ON u.id = c.author_id WHERE c.id = ?",
		id,
	)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Comment{}, fmt.Errorf("%w: comment %s", models.ErrNotFound, id)
		}
		return models.Comment{}, err
	}
	return comment, nil
}

// CreateComment stores a new comment under a post. The caller is responsible
// for resolving the parent post; author and post references are fixed here and
// never come from client payloads.
func (s *CommentService) CreateComment(authorID, postID, text string) (models.Comment, error) {
	comment, err := models.NewComment(authorID, postID, text)
	if err != nil {
		return models.Comment{}, err
	}

	_, err = s.db.Exec(
		"INSERT INTO comments(id, author_id, post_id, text, created_at) VALUES(?, ?, ?, ?, ?)",
		comment.ID, comment.AuthorID, comment.PostID, comment.Text, comment.CreatedAt,
	)
	if err != nil {
		return models.Comment{}, err
	}
	return s.GetCommentByID(comment.ID)
}

// UpdateComment applies the supplied text to a comment; a nil field keeps the
// stored value. Author, post and creation time are never touched.
func (s *CommentService) UpdateComment(id string, text *string) (models.Comment, error) {
	comment, err := s.GetCommentByID(id)
	if err != nil {
		return models.Comment{}, err
	}

	if text != nil {
		if *text == "" {
			return models.Comment{}, fmt.Errorf("%w: text is required", models.ErrValidation)
		}
		comment.Text = *text
	}

	if _, err := s.db.Exec("UPDATE comments SET text = ? WHERE id = ?", comment.Text, id); err != nil {
		return models.Comment{}, err
	}
	return s.GetCommentByID(id)
}

// DeleteComment removes a single comment.
func (s *CommentService) DeleteComment(id string) error {
	res, err := s.db.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: comment %s", models.ErrNotFound, id)
	}
	return nil
}
