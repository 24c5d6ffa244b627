// Package create реализует HTTP-обработчик создания публикации.
// Автором записи всегда становится принципал запроса.
package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blogify/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blogify/internal/http/response"
	"github.com/magabrotheeeer/blogify/internal/lib/sl"
	"github.com/magabrotheeeer/blogify/internal/models"
	"github.com/magabrotheeeer/blogify/internal/services/blog"
)

const maxImageSize = 10 << 20 // 10 MiB

// Request — входные данные для создания публикации.
type Request struct {
	Title    string `validate:"required,min=3,max=200"`
	Category string `validate:"omitempty,max=50"`
	About    string `validate:"required,min=1"`
}

// Service описывает интерфейс бизнес-логики публикаций.
type Service interface {
	Create(ctx context.Context, principal models.Principal, authorName string, in blog.UpsertInput) (string, error)
}

// ProfileReader возвращает профиль принципала; имя автора снимается
// с учетной записи в момент создания записи.
type ProfileReader interface {
	Profile(ctx context.Context, principal models.Principal) (*models.UserInfo, error)
}

// Handler обрабатывает HTTP-запросы создания публикаций.
type Handler struct {
	log      *slog.Logger
	service  Service
	profiles ProfileReader
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, profiles ProfileReader) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		profiles: profiles,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.create"

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

	user, err := h.profiles.Profile(r.Context(), principal)
	if err != nil {
		log.Error("failed to resolve author", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	id, err := h.service.Create(r.Context(), principal, user.Name, blog.UpsertInput{
		Title:     req.Title,
		Category:  req.Category,
		About:     req.About,
		Image:     image,
		ImageType: imageType,
	})
	if err != nil {
		if errors.Is(err, blog.ErrMediaUnavailable) {
			log.Error("media storage unavailable", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("media storage unavailable"))
			return
		}
		log.Error("failed to create post", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create post"))
		return
	}

	log.Info("post created", slog.String("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":      id,
		"message": "post created successfully",
	}))
}
