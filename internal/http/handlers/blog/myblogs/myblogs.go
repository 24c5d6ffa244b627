// Package myblogs реализует HTTP-обработчик вывода публикаций принципала.
package myblogs

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blogify/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blogify/internal/http/response"
	"github.com/magabrotheeeer/blogify/internal/lib/sl"
	"github.com/magabrotheeeer/blogify/internal/models"
)

// Service описывает интерфейс бизнес-логики публикаций.
type Service interface {
	ListMy(ctx context.Context, principal models.Principal) ([]*models.Post, error)
}

// Handler обрабатывает HTTP-запросы вывода собственных публикаций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.myblogs"

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

	posts, err := h.service.ListMy(r.Context(), principal)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list posts"))
		return
	}

	infos := make([]models.PostInfo, 0, len(posts))
	for _, p := range posts {
		infos = append(infos, p.Info())
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OKWithData(infos))
}
