// Package updateprofile реализует HTTP-обработчик редактирования профиля.
package updateprofile

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
	"github.com/magabrotheeeer/blogify/internal/services/auth"
	"github.com/magabrotheeeer/blogify/internal/storage/repository"
)

const maxPhotoSize = 10 << 20 // 10 MiB

// Request — входные данные для редактирования профиля.
type Request struct {
	Name      string `validate:"required,min=2,max=100"`
	Phone     string `validate:"omitempty,max=20"`
	Education string `validate:"omitempty,max=100"`
}

// Service описывает интерфейс бизнес-логики профиля.
type Service interface {
	UpdateProfile(ctx context.Context, principal models.Principal, in auth.ProfileInput) (*models.UserInfo, error)
}

// Handler обрабатывает HTTP-запросы редактирования профиля.
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
	const op = "handlers.auth.updateprofile"

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

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	req := Request{
		Name:      r.FormValue("name"),
		Phone:     r.FormValue("phone"),
		Education: r.FormValue("education"),
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	var photo []byte
	var photoType string
	if file, header, err := r.FormFile("photo"); err == nil {
		defer func() {
			_ = file.Close()
		}()
		photo, err = io.ReadAll(file)
		if err != nil {
			log.Error("failed to read photo", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid photo"))
			return
		}
		photoType = header.Header.Get("Content-Type")
	}

	user, err := h.service.UpdateProfile(r.Context(), principal, auth.ProfileInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Education: req.Education,
		Photo:     photo,
		PhotoType: photoType,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			log.Error("user not found", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, auth.ErrMediaUnavailable):
			log.Error("media storage unavailable", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("media storage unavailable"))
		default:
			log.Error("failed to update profile", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update profile"))
		}
		return
	}

	log.Info("profile updated", slog.String("uid", user.UID))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user":    user,
		"message": "profile updated successfully",
	}))
}
