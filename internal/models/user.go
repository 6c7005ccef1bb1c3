package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser builds a user with a fresh ID and creation time. The password must
// already be hashed; plaintext never reaches the model.
func NewUser(username, email, passwordHash string) (User, error) {
	if username == "" {
		return User{}, fmt.Errorf("%w: username is required", ErrValidation)
	}
	return User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
