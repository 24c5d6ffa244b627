// Package remove реализует HTTP-обработчик удаления публикации.
// Удалять запись может только её автор или администратор.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blogify/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blogify/internal/http/response"
	"github.com/magabrotheeeer/blogify/internal/lib/sl"
	"github.com/magabrotheeeer/blogify/internal/models"
	"github.com/magabrotheeeer/blogify/internal/services/blog"
	"github.com/magabrotheeeer/blogify/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики публикаций.
type Service interface {
	Remove(ctx context.Context, principal models.Principal, id string) error
}

// Handler обрабатывает HTTP-запросы удаления публикаций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.remove"

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

	id := chi.URLParam(r, "id")
	if id == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing post id"))
		return
	}

	if err := h.service.Remove(r.Context(), principal, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			log.Info("post not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
		case errors.Is(err, blog.ErrForbidden):
			log.Warn("forbidden", slog.String("id", id), slog.String("user_uid", principal.UserUID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
		default:
			log.Error("failed to remove post", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to remove post"))
		}
		return
	}

	log.Info("post removed", slog.String("id", id))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "post removed successfully",
	}))
}
