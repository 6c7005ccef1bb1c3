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

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service services.PostServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider) *PostHandler {
	return &PostHandler{service: service}
}

// List handles the request to get all posts, ordered by creation time.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// ListByAuthor handles the request to get all posts of one user. An author
// with no posts yields an empty list, never a 404.
func (h *PostHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := chi.URLParam(r, "id")
	posts, err := h.service.ListPostsByAuthor(authorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get handles the request to get a single post by its ID.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.service.GetPostByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create handles the request to create a new post. The author is always the
// authenticated subject, regardless of the payload.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	sub := auth.SubjectFromContext(r.Context())
	if err := permissions.AuthenticatedOrReadOnly(sub, permissions.ActionCreate); err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.service.CreatePost(sub.ID, payload.Title, payload.Text)
	if err != nil {
		log.Warn().Err(err).Str("author_id", sub.ID).Msg("Failed to create post")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update handles the request to update an existing post. The target is loaded
// first so an unknown ID reports NotFound before any permission failure.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.service.GetPostByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	sub := auth.SubjectFromContext(r.Context())
	if err := permissions.OwnerOrReadOnly(sub, permissions.ActionUpdate, post.AuthorID); err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		Title *string `json:"title"`
		Text  *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdatePost(id, payload.Title, payload.Text)
	if err != nil {
		log.Error().Err(err).Str("post_id", id).Msg("Failed to update post")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a post, cascading to its comments.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.service.GetPostByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	sub := auth.SubjectFromContext(r.Context())
	if err := permissions.OwnerOrReadOnly(sub, permissions.ActionDelete, post.AuthorID); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeletePost(id); err != nil {
		log.Error().Err(err).Str("post_id", id).Msg("Failed to delete post")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
