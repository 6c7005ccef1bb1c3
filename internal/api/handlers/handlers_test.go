package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/avilic/blog-api-be/internal/api"
	"github.com/avilic/blog-api-be/internal/auth"
	"github.com/avilic/blog-api-be/internal/database"
	"github.com/avilic/blog-api-be/internal/models"
	"github.com/avilic/blog-api-be/internal/services"
	"github.com/stretchr/testify/require"
)

// testEnv wires the real router over a throwaway sqlite database.
type testEnv struct {
	t        *testing.T
	router   http.Handler
	users    services.UserServiceProvider
	posts    services.PostServiceProvider
	comments services.CommentServiceProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	auth.Init("test-secret", time.Hour)

	userService := services.NewUserService(db)
	postService := services.NewPostService(db)
	commentService := services.NewCommentService(db)

	return &testEnv{
		t:        t,
		router:   api.NewRouter(userService, postService, commentService),
		users:    userService,
		posts:    postService,
		comments: commentService,
	}
}

// request runs one request through the router. An empty token means anonymous.
func (e *testEnv) request(method, target, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// createUser registers a user directly through the service and returns it
// together with a valid token.
func (e *testEnv) createUser(username, password string) (models.User, string) {
	e.t.Helper()

	user, err := e.users.CreateUser(username, username+"@example.com", password)
	require.NoError(e.t, err)

	token, err := auth.GenerateJWT(user)
	require.NoError(e.t, err)
	return user, token
}

func (e *testEnv) createPost(authorID, title, text string) models.Post {
	e.t.Helper()

	post, err := e.posts.CreatePost(authorID, title, text)
	require.NoError(e.t, err)
	return post
}

func (e *testEnv) createComment(authorID, postID, text string) models.Comment {
	e.t.Helper()

	comment, err := e.comments.CreateComment(authorID, postID, text)
	require.NoError(e.t, err)
	return comment
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
