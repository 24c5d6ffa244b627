// Package auth содержит логику бизнес-уровня для работы с учетными записями:
// регистрацию, вход, выдачу токенов и чтение профиля.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/blogify/internal/lib/jwt"
	"github.com/magabrotheeeer/blogify/internal/lib/password"
	"github.com/magabrotheeeer/blogify/internal/media"
	"github.com/magabrotheeeer/blogify/internal/models"
	"github.com/magabrotheeeer/blogify/internal/storage/repository"
)

// Ошибки уровня сервиса.
var (
	// ErrInvalidCredentials — неверная почта, пароль или роль.
	// Клиенту не сообщается, какое именно поле не совпало.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMediaUnavailable — медиахранилище недоступно, регистрация отменена.
	ErrMediaUnavailable = errors.New("media storage unavailable")
)

// Фиксированный bcrypt-хэш для выравнивания времени ответа, когда почта
// не найдена: сравнение выполняется всегда, чтобы по задержке нельзя было
// перебрать зарегистрированные адреса.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по почте без учета регистра.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateUserProfile обновляет профильные поля пользователя.
	UpdateUserProfile(ctx context.Context, userUID, name, phone, education, photoURL string) (*models.User, error)
	// ListAdmins возвращает всех администраторов.
	ListAdmins(ctx context.Context) ([]*models.User, error)
}

// MediaStore описывает загрузку байтов в медиахранилище.
type MediaStore interface {
	// Upload сохраняет байты и возвращает стабильный публичный URL.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// RegisterInput — входные данные регистрации, уже проверенные на границе.
type RegisterInput struct {
	Name      string
	Email     string
	Phone     string
	Education string
	Role      string
	Password  string
	Photo     []byte // Байты аватара; пусто — зарегистрировать без фото
	PhotoType string // Content-Type аватара
}

// ProfileInput — изменяемые поля профиля.
type ProfileInput struct {
	Name      string
	Phone     string
	Education string
	Photo     []byte
	PhotoType string
}

// Service отвечает за регистрацию, вход и профиль пользователя.
type Service struct {
	users    UserRepository
	mediaSt  MediaStore
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, mediaSt MediaStore, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		mediaSt:  mediaSt,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя и возвращает токен сессии вместе
// с безопасной проекцией учетной записи.
//
// Аватар загружается в медиахранилище до создания записи: если хранилище
// недоступно, регистрация завершается ErrMediaUnavailable и учетная запись
// не создается. Занятая почта дает repository.ErrEmailTaken; решающей
// является проверка уникальности в самой базе.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, *models.UserInfo, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	var photoURL string
	if len(in.Photo) > 0 {
		photoURL, err = s.mediaSt.Upload(ctx, media.StorageKey("avatars"), in.PhotoType, in.Photo)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w: %w", op, ErrMediaUnavailable, err)
		}
	}

	user := models.User{
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		Phone:        in.Phone,
		Education:    in.Education,
		Role:         in.Role,
		PhotoURL:     photoURL,
		PasswordHash: hashed,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(uid, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	user.UID = uid
	info := user.Info()
	return token, &info, nil
}

// Login проверяет учетные данные и возвращает токен сессии.
//
// Неизвестная почта, неверный пароль и несовпавшая роль неразличимы для
// клиента: во всех случаях возвращается ErrInvalidCredentials. Когда почта
// не найдена, сравнение пароля выполняется против фиктивного хэша, чтобы
// время ответа не выдавало наличие учетной записи.
func (s *Service) Login(ctx context.Context, email, rawPassword, roleClaim string) (string, *models.UserInfo, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = password.CompareHash(dummyHash, rawPassword)
			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if roleClaim != user.Role {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	info := user.Info()
	return token, &info, nil
}

// Profile возвращает безопасную проекцию учетной записи принципала.
func (s *Service) Profile(ctx context.Context, principal models.Principal) (*models.UserInfo, error) {
	const op = "services.auth.Profile"

	user, err := s.users.GetUser(ctx, principal.UserUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	info := user.Info()
	return &info, nil
}

// UpdateProfile обновляет профильные поля принципала. Новый аватар,
// если он передан, сначала загружается в медиахранилище.
func (s *Service) UpdateProfile(ctx context.Context, principal models.Principal, in ProfileInput) (*models.UserInfo, error) {
	const op = "services.auth.UpdateProfile"

	var photoURL string
	if len(in.Photo) > 0 {
		var err error
		photoURL, err = s.mediaSt.Upload(ctx, media.StorageKey("avatars"), in.PhotoType, in.Photo)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrMediaUnavailable, err)
		}
	}

	user, err := s.users.UpdateUserProfile(ctx, principal.UserUID, in.Name, in.Phone, in.Education, photoURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	info := user.Info()
	return &info, nil
}

// ListAdmins возвращает безопасные проекции всех администраторов.
func (s *Service) ListAdmins(ctx context.Context) ([]models.UserInfo, error) {
	const op = "services.auth.ListAdmins"

	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := make([]models.UserInfo, 0, len(admins))
	for _, a := range admins {
		result = append(result, a.Info())
	}
	return result, nil
}
