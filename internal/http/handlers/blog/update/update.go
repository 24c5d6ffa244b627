// Package update реализует HTTP-обработчик редактирования публикации.
// Изменять запись может только её автор или администратор.
package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blogify/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blogify/internal/http/response"
	"github.com/magabrotheeeer/blogify/internal/lib/sl"
	"github.com/magabrotheeeer/blogify/internal/models"
	"github.com/magabrotheeeer/blogify/internal/services/blog"
	"github.com/magabrotheeeer/blogify/internal/storage/repository"
)

const maxImageSize = 10 << 20 // 10 MiB

// Request — входные данные для редактирования публикации.
type Request struct {
	Title    string `validate:"required,min=3,max=200"`
	Category string `validate:"omitempty,max=50"`
	About    string `validate:"required,min=1"`
}

// Service описывает интерфейс бизнес-логики публикаций.
type Service interface {
	Update(ctx context.Context, principal models.Principal, id string, in blog.UpsertInput) error
}

// Handler обрабатывает HTTP-запросы редактирования публикаций.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.update"

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

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	req := Request{
		Title:    r.FormValue("title"),
		Category: r.FormValue("category"),
		About:    r.FormValue("about"),
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	var image []byte
	var imageType string
	if file, header, err := r.FormFile("blogImage"); err == nil {
		defer func() {
			_ = file.Close()
		}()
		image, err = io.ReadAll(file)
		if err != nil {
			log.Error("failed to read image", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid image"))
			return
		}
		imageType = header.Header.Get("Content-Type")
	}

	err := h.service.Update(r.Context(), principal, id, blog.UpsertInput{
		Title:     req.Title,
		Category:  req.Category,
		About:     req.About,
		Image:     image,
		ImageType: imageType,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			log.Info("post not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
		case errors.Is(err, blog.ErrForbidden):
			log.Warn("forbidden", slog.String("id", id), slog.String("user_uid", principal.UserUID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
		case errors.Is(err, blog.ErrMediaUnavailable):
			log.Error("media storage unavailable", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("media storage unavailable"))
		default:
			log.Error("failed to update post", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update post"))
		}
		return
	}

	log.Info("post updated", slog.String("id", id))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "post updated successfully",
	}))
}
