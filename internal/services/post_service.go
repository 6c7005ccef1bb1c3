package services

import (
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/avilic/blog-api-be/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	ListPosts() ([]models.Post, error)
	ListPostsByAuthor(authorID string) ([]models.Post, error)
	GetPostByID(id string) (models.Post, error)
	CreatePost(authorID, title, text string) (models.Post, error)
	UpdatePost(id string, title, text *string) (models.Post, error)
	DeletePost(id string) error
}

// PostService provides business logic for post management.
type PostService struct {
	db *sql.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

const postColumns = "p.id, p.author_id, u.username, p.title, p.text, p.created_at"

func scanPost(row interface{ Scan(...any) error }) (models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.AuthorID, &post.Author, &post.Title, &post.Text, &post.CreatedAt)
	return post, err
}

func (s *PostService) queryPosts(query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// ListPosts returns all posts ordered by creation time.
func (s *PostService) ListPosts() ([]models.Post, error) {
	return s.queryPosts(
		"SELECT " + postColumns + " FROM posts p JOIN users u ON u.id = p.author_id ORDER BY p.created_at",
	)
}

// ListPostsByAuthor returns the posts of one author ordered by creation time.
// An unknown author yields an empty list, not an error.
func (s *PostService) ListPostsByAuthor(authorID string) ([]models.Post, error) {
	return s.queryPosts(
		"SELECT "+postColumns+" FROM posts p JOIN users u ON u.id = p.author_id WHERE p.author_id = ? ORDER BY p.created_at",
		authorID,
	)
}

// GetPostByID retrieves a single post by its ID.
func (s *PostService) GetPostByID(id string) (models.Post, error) {
	row := s.db.QueryRow(
		"SELECT "+postColumns+" FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = ?",
		id,
	)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, fmt.Errorf("%w: post %s", models.ErrNotFound, id)
		}
		return models.Post{}, err
	}
	return post, nil
}

// CreatePost stores a new post owned by the given author.
func (s *PostService) CreatePost(authorID, title, text string) (models.Post, error) {
	post, err := models.NewPost(authorID, title, text)
	if err != nil {
		return models.Post{}, err
	}

	_, err = s.db.Exec(
		"INSERT INTO posts(id, author_id, title, text, created_at) VALUES(?, ?, ?, ?, ?)",
		post.ID, post.AuthorID, post.Title, post.Text, post.CreatedAt,
	)
	if err != nil {
		return models.Post{}, err
	}
	return s.GetPostByID(post.ID)
}

// UpdatePost applies the supplied fields to a post; nil fields keep their
// stored values. Author and creation time are never touched.
func (s *PostService) UpdatePost(id string, title, text *string) (models.Post, error) {
	post, err := s.GetPostByID(id)
	if err != nil {
		return models.Post{}, err
	}

	if title != nil {
		if *title == "" {
			return models.Post{}, fmt.Errorf("%w: title is required", models.ErrValidation)
		}
		if utf8.RuneCountInString(*title) > models.MaxTitleLength {
			return models.Post{}, fmt.Errorf("%w: title must be at most %d characters", models.ErrValidation, models.MaxTitleLength)
		}
		post.Title = *title
	}
	if text != nil {
		if *text == "" {
			return models.Post{}, fmt.Errorf("%w: text is required", models.ErrValidation)
		}
		post.Text = *text
	}

	_, err = s.db.Exec("UPDATE posts SET title = ?, text = ? WHERE id = ?", post.Title, post.Text, id)
	if err != nil {
		return models.Post{}, err
	}
	return s.GetPostByID(id)
}

// DeletePost removes a post and its comments in one transaction.
func (s *PostService) DeletePost(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM comments WHERE post_id = ?", id); err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: post %s", models.ErrNotFound, id)
	}

	return tx.Commit()
}
