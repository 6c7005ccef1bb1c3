package api

import (
	"github.com/avilic/blog-api-be/internal/api/handlers"
	"github.com/avilic/blog-api-be/internal/auth"
	"github.com/avilic/blog-api-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(userService services.UserServiceProvider, postService services.PostServiceProvider, commentService services.CommentServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Resolve the subject from the token when one is present. Rejection is the
	// handlers' job; every read route here is public.
	r.Use(auth.Middleware())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService)
	commentHandler := handlers.NewCommentHandler(commentService, postService)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Get("/auth/me", authHandler.Me)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.Get)
				r.Put("/", userHandler.Update)
				r.Delete("/", userHandler.Delete)
				r.Get("/posts", postHandler.ListByAuthor)
				r.Get("/comments", commentHandler.ListByAuthor)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Post("/", postHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", postHandler.Get)
				r.Put("/", postHandler.Update)
				r.Delete("/", postHandler.Delete)
				r.Get("/comments", commentHandler.ListByPost)
				r.Post("/comments", commentHandler.CreateUnderPost)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", commentHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", commentHandler.Get)
				r.Put("/", commentHandler.Update)
				r.Delete("/", commentHandler.Delete)
			})
		})
	})

	return r
}
