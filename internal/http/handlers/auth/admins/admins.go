// Package admins возвращает список администраторов. Конечная точка закрыта:
// доступ только принципалам с ролью admin.
package admins

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blogify/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blogify/internal/http/response"
	"github.com/magabrotheeeer/blogify/internal/lib/policy"
	"github.com/magabrotheeeer/blogify/internal/lib/sl"
	"github.com/magabrotheeeer/blogify/internal/models"
)

// Service описывает интерфейс выборки администраторов.
type Service interface {
	ListAdmins(ctx context.Context) ([]models.UserInfo, error)
}

// Handler обрабатывает запрос списка администраторов.
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
	const op = "handlers.auth.admins"

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

	if !policy.IsAdmin(principal) {
		log.Error("access denied", slog.String("role", principal.Role))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("forbidden"))
		return
	}

	adminsList, err := h.service.ListAdmins(r.Context())
	if err != nil {
		log.Error("failed to list admins", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"admins": adminsList,
	}))
}
