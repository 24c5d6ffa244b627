// Package read реализует HTTP-обработчик чтения одной публикации.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blogify/internal/http/response"
	"github.com/magabrotheeeer/blogify/internal/lib/sl"
	"github.com/magabrotheeeer/blogify/internal/models"
	"github.com/magabrotheeeer/blogify/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики публикаций.
type Service interface {
	Read(ctx context.Context, id string) (*models.Post, error)
}

// Handler обрабатывает HTTP-запросы чтения публикации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing post id"))
		return
	}

	post, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			log.Info("post not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
			return
		}
		log.Error("failed to read post", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read post"))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OKWithData(post.Info()))
}
