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

// CommentHandler handles HTTP requests for comments. It keeps a post service
// alongside the comment service to resolve the parent post on creation.
type CommentHandler struct {
	service services.CommentServiceProvider
	posts   services.PostServiceProvider
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service services.CommentServiceProvider, posts services.PostServiceProvider) *CommentHandler {
	return &CommentHandler{service: service, posts: posts}
}

// List handles the request to get all comments, ordered by creation time.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// ListByPost handles the request to get the comments under one post. Filtering
// only; a post with no comments (or an unknown post ID) yields an empty list.
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	comments, err := h.service.ListCommentsByPost(postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// ListByAuthor handles the request to get all comments of one user.
func (h *CommentHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := chi.URLParam(r, "id")
	comments, err := h.service.ListCommentsByAuthor(authorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Get handles the request to get a single comment by its ID.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	comment, err := h.service.GetCommentByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// CreateUnderPost handles the request to create a comment under a post. The
// parent post must exist (404 otherwise); author and post references come from
// the subject and the route, never from the payload.
func (h *CommentHandler) CreateUnderPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	post, err := h.posts.GetPostByID(postID)
	if err != nil {
		writeError(w, err)
		return
	}

	sub := auth.SubjectFromContext(r.Context())
	if err := permissions.AuthenticatedOrReadOnly(sub, permissions.ActionCreate); err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.service.CreateComment(sub.ID, post.ID, payload.Text)
	if err != nil {
		log.Warn().Err(err).Str("post_id", post.ID).Msg("Failed to create comment")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// Update handles the request to update an existing comment. The target is
// loaded first so an unknown ID reports NotFound before any permission
// failure.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	comment, err := h.service.GetCommentByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	sub := auth.SubjectFromContext(r.Context())
	if err := permissions.OwnerOrReadOnly(sub, permissions.ActionUpdate, comment.AuthorID); err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateComment(id, payload.Text)
	if err != nil {
		log.Error().Err(err).Str("comment_id", id).Msg("Failed to update comment")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a comment.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	comment, err := h.service.GetCommentByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	sub := auth.SubjectFromContext(r.Context())
	if err := permissions.OwnerOrReadOnly(sub, permissions.ActionDelete, comment.AuthorID); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteComment(id); err != nil {
		log.Error().Err(err).Str("comment_id", id).Msg("Failed to delete comment")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
