package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/api"
	apimiddleware "github.com/majikang/lumen-dingo-jwt-blog/internal/api/middleware"
)

// setupRouter builds the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	rateLimiter := apimiddleware.NewRateLimiter(
		app.config.Server.RateLimitRPS,
		app.config.Server.RateLimitBurst,
	)
	r.Use(rateLimiter.Limit)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.tokenLifetime(),
	)
	userHandler := api.NewUserHandler(app.userStore, app.passwordHasher, app.passwordVerifier)
	postHandler := api.NewPostHandler(app.postStore, app.userStore, app.commentStore)
	commentHandler := api.NewCommentHandler(app.commentStore, app.postStore, app.userStore)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Get("/users", userHandler.ListUsers)
		r.Get("/users/{id}", userHandler.GetUser)

		r.Get("/posts", postHandler.ListPosts)
		r.Get("/posts/{id}", postHandler.GetPost)
		r.Get("/posts/{id}/comments", commentHandler.ListPostComments)

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/user", userHandler.GetCurrentUser)
			r.Patch("/user", userHandler.UpdateCurrentUser)
			r.Put("/user/password", userHandler.ChangePassword)
			r.Get("/user/posts", postHandler.ListUserPosts)

			r.Post("/posts", postHandler.CreatePost)
			r.Put("/posts/{id}", postHandler.UpdatePost)
			r.Delete("/posts/{id}", postHandler.DeletePost)

			r.Post("/posts/{id}/comments", commentHandler.CreateComment)
			r.Put("/comments/{id}", commentHandler.UpdateComment)
			r.Delete("/comments/{id}", commentHandler.DeleteComment)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
