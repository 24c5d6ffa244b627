// Package blog содержит бизнес-логику работы с публикациями, включая
// проверку прав на изменение и кеширование чтения.
package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/blogify/internal/lib/policy"
	"github.com/magabrotheeeer/blogify/internal/lib/sl"
	"github.com/magabrotheeeer/blogify/internal/media"
	"github.com/magabrotheeeer/blogify/internal/models"
)

// ErrForbidden — принципал аутентифицирован, но не владеет записью
// и не является администратором.
var ErrForbidden = errors.New("forbidden")

// ErrMediaUnavailable — медиахранилище недоступно, публикация не изменена.
var ErrMediaUnavailable = errors.New("media storage unavailable")

// PostRepository определяет методы для работы с публикациями в хранилище.
type PostRepository interface {
	// CreatePost добавляет новую публикацию и возвращает её ID.
	CreatePost(ctx context.Context, post models.Post) (string, error)
	// GetPost возвращает публикацию по ID.
	GetPost(ctx context.Context, id string) (*models.Post, error)
	// ListPosts возвращает публикации с пагинацией.
	ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error)
	// ListPostsByAuthor возвращает публикации конкретного автора.
	ListPostsByAuthor(ctx context.Context, authorUID string) ([]*models.Post, error)
	// UpdatePost обновляет публикацию по ID.
	UpdatePost(ctx context.Context, post models.Post, id string) (int, error)
	// RemovePost удаляет публикацию по ID.
	RemovePost(ctx context.Context, id string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// MediaStore описывает загрузку байтов в медиахранилище.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// UpsertInput — проверенные на границе поля публикации.
type UpsertInput struct {
	Title     string
	Category  string
	About     string
	Image     []byte // Байты изображения; пусто — оставить прежнее
	ImageType string
}

// Service реализует бизнес-логику публикаций.
type Service struct {
	repo    PostRepository
	cache   Cache
	mediaSt MediaStore
	log     *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo PostRepository, cache Cache, mediaSt MediaStore, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		mediaSt: mediaSt,
		log:     log,
	}
}

// Create создает публикацию от имени принципала. Автором становится сам
// принципал; передать чужой author_uid невозможно.
func (s *Service) Create(ctx context.Context, principal models.Principal, authorName string, in UpsertInput) (string, error) {
	const op = "services.blog.Create"

	var imageURL string
	if len(in.Image) > 0 {
		var err error
		imageURL, err = s.mediaSt.Upload(ctx, media.StorageKey("posts"), in.ImageType, in.Image)
		if err != nil {
			return "", fmt.Errorf("%s: %w: %w", op, ErrMediaUnavailable, err)
		}
	}

	post := models.Post{
		AuthorUID:  principal.UserUID,
		AuthorName: authorName,
		Title:      in.Title,
		Category:   in.Category,
		About:      in.About,
		ImageURL:   imageURL,
	}
	id, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new post", slog.String("id", id))
	return id, nil
}

// Read возвращает публикацию по ID, используя кеш или репозиторий.
func (s *Service) Read(ctx context.Context, id string) (*models.Post, error) {
	var result *models.Post
	cacheKey := fmt.Sprintf("post:%s", id)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// List возвращает публикации с пагинацией.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.repo.ListPosts(ctx, limit, offset)
}

// ListMy возвращает публикации принципала.
func (s *Service) ListMy(ctx context.Context, principal models.Principal) ([]*models.Post, error) {
	return s.repo.ListPostsByAuthor(ctx, principal.UserUID)
}

// Update обновляет публикацию. Разрешено владельцу или администратору,
// иначе возвращается ErrForbidden. Запись сначала читается, чтобы проверка
// прав шла по актуальному author_uid.
func (s *Service) Update(ctx context.Context, principal models.Principal, id string, in UpsertInput) error {
	const op = "services.blog.Update"

	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !policy.CanMutatePost(principal, post) {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	var imageURL string
	if len(in.Image) > 0 {
		imageURL, err = s.mediaSt.Upload(ctx, media.StorageKey("posts"), in.ImageType, in.Image)
		if err != nil {
			return fmt.Errorf("%s: %w: %w", op, ErrMediaUnavailable, err)
		}
	}

	updated := models.Post{
		Title:    in.Title,
		Category: in.Category,
		About:    in.About,
		ImageURL: imageURL,
	}
	if _, err = s.repo.UpdatePost(ctx, updated, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cacheKey := fmt.Sprintf("post:%s", id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return nil
}

// Remove удаляет публикацию. Разрешено владельцу или администратору.
func (s *Service) Remove(ctx context.Context, principal models.Principal, id string) error {
	const op = "services.blog.Remove"

	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !policy.CanMutatePost(principal, post) {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if _, err = s.repo.RemovePost(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cacheKey := fmt.Sprintf("post:%s", id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return nil
}
