package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/avilic/blog-api-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("bozo", "bozo")

	rr := env.request(http.MethodPost, "/api/v1/posts", token, map[string]string{
		"title": "Title",
		"text":  "Text",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	post := decode[models.Post](t, rr)
	assert.Equal(t, "Title", post.Title)
	assert.Equal(t, user.ID, post.AuthorID, "author is the requesting subject")
	assert.Equal(t, "bozo", post.Author)
}

func TestCreatePostNoLogin(t *testing.T) {
	env := newTestEnv(t)

	rr := env.request(http.MethodPost, "/api/v1/posts", "", map[string]string{
		"title": "Title",
		"text":  "Text",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreatePostMissingFields(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("bozo", "bozo")

	for name, payload := range map[string]map[string]string{
		"missing text":  {"title": "test"},
		"missing title": {"text": "test"},
	} {
		t.Run(name, func(t *testing.T) {
			rr := env.request(http.MethodPost, "/api/v1/posts", token, payload)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestCreatePostTitleTooLong(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("bozo", "bozo")

	// The bound counts characters, not bytes, so a multi-byte title at the
	// limit is fine.
	for _, tc := range []struct {
		name     string
		title    string
		wantCode int
	}{
		{"ascii too long", strings.Repeat("x", models.MaxTitleLength+1), http.StatusBadRequest},
		{"multibyte at limit", strings.Repeat("é", models.MaxTitleLength), http.StatusCreated},
		{"multibyte too long", strings.Repeat("é", models.MaxTitleLength+1), http.StatusBadRequest},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.request(http.MethodPost, "/api/v1/posts", token, map[string]string{
				"title": tc.title,
				"text":  "Text",
			})
			assert.Equal(t, tc.wantCode, rr.Code)
		})
	}
}

func TestListPosts(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser("bozo", "bozo")
	first := env.createPost(user.ID, "first", "text")
	second := env.createPost(user.ID, "second", "text")

	rr := env.request(http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	posts := decode[[]models.Post](t, rr)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID, "posts are ordered by creation time")
	assert.Equal(t, second.ID, posts[1].ID)
}

func TestGetPost(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser("bozo", "bozo")
	post := env.createPost(user.ID, "title", "text")

	rr := env.request(http.MethodGet, "/api/v1/posts/"+post.ID, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	got := decode[models.Post](t, rr)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, post.Text, got.Text)
	assert.Equal(t, post.AuthorID, got.AuthorID)
}

func TestGetPostNotFound(t *testing.T) {
	env := newTestEnv(t)

	rr := env.request(http.MethodGet, "/api/v1/posts/219", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListPostsByUser(t *testing.T) {
	env := newTestEnv(t)
	author, _ := env.createUser("bozo", "bozo")
	other, _ := env.createUser("novi", "novi")
	env.createPost(author.ID, "title", "text")

	rr := env.request(http.MethodGet, "/api/v1/users/"+author.ID+"/posts", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, decode[[]models.Post](t, rr), 1)

	// A user with no posts gets an empty list, not a 404.
	rr = env.request(http.MethodGet, "/api/v1/users/"+other.ID+"/posts", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestUpdatePost(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("bozo", "bozo")
	post := env.createPost(user.ID, "title", "text")

	rr := env.request(http.MethodPut, "/api/v1/posts/"+post.ID, token, map[string]string{
		"title": "edited",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	updated := decode[models.Post](t, rr)
	assert.Equal(t, "edited", updated.Title)
	assert.Equal(t, "text", updated.Text, "unsupplied fields keep their values")
	assert.Equal(t, post.AuthorID, updated.AuthorID, "author never changes")
	assert.True(t, post.CreatedAt.Equal(updated.CreatedAt), "creation time never changes")
}

func TestUpdatePostNoLogin(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser("bozo", "bozo")
	post := env.createPost(user.ID, "title", "text")

	rr := env.request(http.MethodPut, "/api/v1/posts/"+post.ID, "", map[string]string{"title": "edited"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdatePostWrongUser(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser("bozo", "bozo")
	_, otherToken := env.createUser("ja", "ja")
	post := env.createPost(user.ID, "title", "text")

	rr := env.request(http.MethodPut, "/api/v1/posts/"+post.ID, otherToken, map[string]string{"title": "edited"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestUpdateNonexistingPost(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("bozo", "bozo")

	rr := env.request(http.MethodPut, "/api/v1/posts/219", token, map[string]string{"title": "edited"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// NotFound takes precedence over AuthenticationRequired.
	rr = env.request(http.MethodPut, "/api/v1/posts/219", "", map[string]string{"title": "edited"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("bozo", "bozo")
	post := env.createPost(user.ID, "title", "text")

	rr := env.request(http.MethodDelete, "/api/v1/posts/"+post.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.request(http.MethodGet, "/api/v1/posts/"+post.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeletePostNoLogin(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser("bozo", "bozo")
	post := env.createPost(user.ID, "title", "text")

	rr := env.request(http.MethodDelete, "/api/v1/posts/"+post.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDeletePostWrongUser(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser("bozo", "bozo")
	_, otherToken := env.createUser("ja", "ja")
	post := env.createPost(user.ID, "title", "text")

	rr := env.request(http.MethodDelete, "/api/v1/posts/"+post.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestDeleteNonexistingPost(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("bozo", "bozo")

	rr := env.request(http.MethodDelete, "/api/v1/posts/219", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeletePostCascadesToComments(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("bozo", "bozo")
	post := env.createPost(user.ID, "title", "text")
	comment := env.createComment(user.ID, post.ID, "text")

	rr := env.request(http.MethodDelete, "/api/v1/posts/"+post.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.request(http.MethodGet, "/api/v1/comments/"+comment.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
