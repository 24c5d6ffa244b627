// Package blogify предоставляет маршруты приложения.
package blogify

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/blogify/internal/http/handlers/auth/admins"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/auth/updateprofile"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/blog/create"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/blog/list"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/blog/myblogs"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/blog/read"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/blog/remove"
	"github.com/magabrotheeeer/blogify/internal/http/handlers/blog/update"
	"github.com/magabrotheeeer/blogify/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blogify/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/blogify/internal/services/auth"
	blogservice "github.com/magabrotheeeer/blogify/internal/services/blog"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, authService *authservice.Service, blogService *blogservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/users", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/logout", logout.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Get("/my-profile", profile.New(logger, authService).ServeHTTP)
			r.Put("/update-profile", updateprofile.New(logger, authService).ServeHTTP)
			r.Get("/admins", admins.New(logger, authService).ServeHTTP)
		})
	})

	r.Route("/api/blogs", func(r chi.Router) {
		// Чтение доступно без аутентификации
		r.Get("/single-blog/{id}", read.New(logger, blogService).ServeHTTP)
		r.Get("/all-blogs", list.New(logger, blogService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Post("/create", create.New(logger, blogService, authService).ServeHTTP)
			r.Get("/my-blogs", myblogs.New(logger, blogService).ServeHTTP)
			r.Put("/update/{id}", update.New(logger, blogService).ServeHTTP)
			r.Delete("/delete/{id}", remove.New(logger, blogService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
