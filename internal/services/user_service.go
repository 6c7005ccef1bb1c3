package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avilic/blog-api-be/internal/models"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials signals a login with an unknown username or a wrong
// password, as opposed to an infrastructure failure.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	ListUsers() ([]models.User, error)
	GetUserByID(id string) (models.User, error)
	CreateUser(username, email, password string) (models.User, error)
	UpdateUser(id string, username, email, password *string) (models.User, error)
	DeleteUser(id string) error
	AuthenticateUser(username, password string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// ListUsers returns all users ordered by creation time.
func (s *UserService) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, username, email, created_at FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		var email sql.NullString
		if err := rows.Scan(&user.ID, &user.Username, &email, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.Email = email.String
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	var email sql.NullString
	row := s.db.QueryRow("SELECT id, username, email, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%w: user %s", models.ErrNotFound, id)
		}
		return models.User{}, err
	}
	user.Email = email.String
	return user, nil
}

// CreateUser registers a new user, hashing their password before it is stored.
func (s *UserService) CreateUser(username, email, password string) (models.User, error) {
	user, err := models.NewUser(username, email, "")
	if err != nil {
		return models.User{}, err
	}
	if password == "" {
		return models.User{}, fmt.Errorf("%w: password is required", models.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)

	_, err = s.db.Exec(
		"INSERT INTO users(id, username, email, password_hash, created_at) VALUES(?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return models.User{}, fmt.Errorf("%w: username is already taken", models.ErrValidation)
		}
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// UpdateUser applies the supplied fields to a user; nil fields keep their
// stored values. A new password is hashed before storage. All supplied fields
// are validated up front and both statements run in one transaction, so a
// rejected update leaves the row untouched.
func (s *UserService) UpdateUser(id string, username, email, password *string) (models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	if username != nil {
		if *username == "" {
			return models.User{}, fmt.Errorf("%w: username is required", models.ErrValidation)
		}
		user.Username = *username
	}
	if email != nil {
		user.Email = *email
	}

	var hashedPassword string
	if password != nil {
		if *password == "" {
			return models.User{}, fmt.Errorf("%w: password must not be empty", models.ErrValidation)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashedPassword = string(hashed)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	_, err = tx.Exec("UPDATE users SET username = ?, email = ? WHERE id = ?", user.Username, user.Email, id)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return models.User{}, fmt.Errorf("%w: username is already taken", models.ErrValidation)
		}
		return models.User{}, err
	}

	if password != nil {
		if _, err := tx.Exec("UPDATE users SET password_hash = ? WHERE id = ?", hashedPassword, id); err != nil {
			return models.User{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// DeleteUser removes a user together with their posts and comments, including
// comments left by other users on the deleted posts. The whole cascade runs in
// one transaction.
func (s *UserService) DeleteUser(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"DELETE FROM comments WHERE author_id = ? OR post_id IN (SELECT id FROM posts WHERE author_id = ?)",
		id, id,
	)
	if err != nil {
		return err
	}
	if _, err = tx.Exec("DELETE FROM posts WHERE author_id = ?", id); err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: user %s", models.ErrNotFound, id)
	}

	return tx.Commit()
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(username, password string) (models.User, error) {
	var user models.User
	var email sql.NullString
	row := s.db.QueryRow("SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%w: user not found", ErrInvalidCredentials)
		}
		return models.User{}, err
	}
	user.Email = email.String

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("%w: wrong password", ErrInvalidCredentials)
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
