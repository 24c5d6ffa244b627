// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Запрос приходит в multipart-форме с полями профиля, паролем и
// необязательным файлом аватара. После проверки полей операция
// делегируется сервису учетных записей; в ответ уходят токен сессии
// и безопасная проекция созданной учетной записи.
package register

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

// maxPhotoSize ограничивает размер загружаемого аватара.
const maxPhotoSize = 10 << 20 // 10 MiB

// Request — входные данные для регистрации.
type Request struct {
	Name      string `validate:"required,min=2,max=100"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"omitempty,max=20"`
	Password  string `validate:"required,min=6"`
	Role      string `validate:"required,oneof=user admin"`
	Education string `validate:"omitempty,max=100"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) (string, *models.UserInfo, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
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
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	req := Request{
		Name:      r.FormValue("name"),
		Email:     r.FormValue("email"),
		Phone:     r.FormValue("phone"),
		Password:  r.FormValue("password"),
		Role:      r.FormValue("role"),
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

	token, user, err := h.service.Register(r.Context(), auth.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Education: req.Education,
		Role:      req.Role,
		Password:  req.Password,
		Photo:     photo,
		PhotoType: photoType,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			log.Error("email already taken", sl.Err(err))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("email already taken"))
		case errors.Is(err, auth.ErrMediaUnavailable):
			log.Error("media storage unavailable", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("media storage unavailable"))
		default:
			log.Error("registration failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	log.Info("user registered", slog.String("uid", user.UID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":   token,
		"user":    user,
		"message": "user registered successfully",
	}))
}
