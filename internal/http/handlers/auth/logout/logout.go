// Package logout реализует выход из системы. Сессия не хранится на сервере,
// поэтому выход сводится к сбросу cookie: клиент обязан выбросить токен,
// срок его действия на сервере не отзывается.
package logout

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blogify/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blogify/internal/http/response"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.TokenCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})

	log.Info("user logged out")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "user logged out successfully",
	}))
}
