// Package media реализует клиент S3-совместимого медиахранилища.
// Хранилищу передаются только байты; вся бизнес-логика остается в сервисах.
// При успешной загрузке возвращается стабильный публичный URL объекта.
package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/blogify/internal/config"
)

// Store — клиент медиахранилища.
type Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	timeout       time.Duration
}

// New создает клиент хранилища по настройкам из конфига.
// Ключи доступа статические (MINIO_ROOT_USER / MINIO_ROOT_PASSWORD).
func New(cfg config.MediaStore) (*Store, error) {
	const op = "media.New"

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.MediaRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.MediaAccessKey,
			cfg.MediaSecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.MediaEndpoint)
		o.UsePathStyle = true
	})

	return &Store{
		client:        client,
		bucket:        cfg.MediaBucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		timeout:       cfg.MediaTimeout,
	}, nil
}

// StorageKey возвращает уникальный ключ объекта внутри бакета,
// сгруппированный по дате загрузки.
func StorageKey(prefix string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%d/%d/%v", prefix, d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload загружает байты в хранилище и возвращает публичный URL объекта.
// Вызов ограничен таймаутом из конфига.
func (s *Store) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	const op = "media.Upload"

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.publicBaseURL + "/" + key, nil
}
