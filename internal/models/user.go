// Package models содержит доменные модели приложения: пользователей,
// публикации и принципала запроса. Структуры используются в бизнес-логике
// и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Других ролей в системе нет.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash никогда не сериализуется наружу — клиенту отдается
// только проекция UserInfo.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя
	Email        string    // Электронная почта (уникальна без учета регистра)
	Phone        string    // Телефон
	Education    string    // Образование
	Role         string    // Роль пользователя, admin или user
	PhotoURL     string    // Ссылка на аватар в медиахранилище
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата регистрации
}

// UserInfo — безопасная проекция User для ответов клиенту.
// Не содержит хэша пароля.
type UserInfo struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Education string    `json:"education,omitempty"`
	Role      string    `json:"role"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Info возвращает проекцию пользователя без чувствительных полей.
func (u *User) Info() UserInfo {
	return UserInfo{
		UID:       u.UID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Education: u.Education,
		Role:      u.Role,
		PhotoURL:  u.PhotoURL,
		CreatedAt: u.CreatedAt,
	}
}

// Principal — идентичность и роль, извлеченные из проверенного токена
// на время одного запроса. Роль берется из токена и не перечитывается
// из хранилища до повторной аутентификации.
type Principal struct {
	UserUID string
	Role    string
}
