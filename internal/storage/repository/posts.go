package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/blogify/internal/models"
)

// CreatePost сохраняет новую публикацию и возвращает её ID.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) (string, error) {
	const op = "storage.CreatePost"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO posts (author_uid, author_name, title, category, about, image_url)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		post.AuthorUID, post.AuthorName, post.Title, post.Category,
		post.About, post.ImageURL).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPost возвращает публикацию по ID.
func (s *Storage) GetPost(ctx context.Context, id string) (*models.Post, error) {
	const op = "storage.GetPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author_uid, author_name, title, category, about,
			      image_url, created_at
			  FROM posts
			  WHERE id = $1`
	p := &models.Post{}
	row := s.DB.QueryRowContext(ctx, query, id)

	if err := row.Scan(&p.ID, &p.AuthorUID, &p.AuthorName, &p.Title,
		&p.Category, &p.About, &p.ImageURL, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListPosts возвращает публикации с пагинацией, новые первыми.
func (s *Storage) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	const op = "storage.ListPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author_uid, author_name, title, category, about,
			      image_url, created_at
			  FROM posts
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanPosts(rows, op)
}

// ListPostsByAuthor возвращает публикации конкретного автора, новые первыми.
func (s *Storage) ListPostsByAuthor(ctx context.Context, authorUID string) ([]*models.Post, error) {
	const op = "storage.ListPostsByAuthor"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author_uid, author_name, title, category, about,
			      image_url, created_at
			  FROM posts
			  WHERE author_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, authorUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanPosts(rows, op)
}

// UpdatePost обновляет содержимое публикации по ID.
func (s *Storage) UpdatePost(ctx context.Context, post models.Post, id string) (int, error) {
	const op = "storage.UpdatePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE posts
			  SET title = $1, category = $2, about = $3,
			      image_url = CASE WHEN $4 = '' THEN image_url ELSE $4 END
			  WHERE id = $5`
	res, err := s.DB.ExecContext(ctx, query,
		post.Title, post.Category, post.About, post.ImageURL, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

// RemovePost удаляет публикацию по ID и возвращает количество удалённых записей.
func (s *Storage) RemovePost(ctx context.Context, id string) (int, error) {
	const op = "storage.RemovePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM posts WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

func scanPosts(rows *sql.Rows, op string) ([]*models.Post, error) {
	var result []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorUID, &p.AuthorName, &p.Title,
			&p.Category, &p.About, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
