// Package profile возвращает профиль аутентифицированного пользователя.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blogify/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blogify/internal/http/response"
	"github.com/magabrotheeeer/blogify/internal/lib/sl"
	"github.com/magabrotheeeer/blogify/internal/models"
	"github.com/magabrotheeeer/blogify/internal/storage/repository"
)

// Service описывает интерфейс чтения профиля.
type Service interface {
	Profile(ctx context.Context, principal models.Principal) (*models.UserInfo, error)
}

// Handler обрабатывает запрос профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthenticated"))
		return
	}

	user, err := h.service.Profile(r.Context(), principal)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Error("account not found", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
			return
		}
		log.Error("failed to load profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": user,
	}))
}
