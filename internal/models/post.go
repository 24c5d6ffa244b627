package models

import "time"

// Post представляет публикацию в блоге.
type Post struct {
	ID         string    // Уникальный идентификатор публикации
	AuthorUID  string    // UID автора, владельца записи
	AuthorName string    // Имя автора на момент создания
	Title      string    // Заголовок
	Category   string    // Категория
	About      string    // Текст публикации
	ImageURL   string    // Ссылка на изображение в медиахранилище
	CreatedAt  time.Time // Дата создания
}

// PostInfo — проекция Post для ответов клиенту.
type PostInfo struct {
	ID         string    `json:"id"`
	AuthorUID  string    `json:"author_uid"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	About      string    `json:"about"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Info возвращает проекцию публикации для ответа клиенту.
func (p *Post) Info() PostInfo {
	return PostInfo{
		ID:         p.ID,
		AuthorUID:  p.AuthorUID,
		AuthorName: p.AuthorName,
		Title:      p.Title,
		Category:   p.Category,
		About:      p.About,
		ImageURL:   p.ImageURL,
		CreatedAt:  p.CreatedAt,
	}
}
