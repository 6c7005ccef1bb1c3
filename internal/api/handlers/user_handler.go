package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avilic/blog-api-be/internal/auth"
	"github.com/avilic/blog-api-be/internal/permissions"
	"github.com/avilic/blog-api-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// List handles the request to get all users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUserByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Create handles new user registration. Registration is open to anonymous
// subjects; the password is hashed before it is persisted.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.CreateUser(payload.Username, payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Update handles updating a user's own account. The target is loaded first so
// an unknown ID reports NotFound before any permission failure.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUserByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	sub := auth.SubjectFromContext(r.Context())
	if err := permissions.UserOwnerOrReadAndCreate(sub, permissions.ActionUpdate, user.ID); err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateUser(id, payload.Username, payload.Email, payload.Password)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to update user")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the permanent deletion of a user account, cascading to the
// user's posts and comments.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUserByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	sub := auth.SubjectFromContext(r.Context())
	if err := permissions.UserOwnerOrReadAndCreate(sub, permissions.ActionDelete, user.ID); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteUser(id); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
