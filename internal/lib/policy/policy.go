// Package policy содержит правила авторизации доступа к публикациям.
//
// Все функции пакета чистые: решение зависит только от принципала и записи,
// без обращений к хранилищу. По умолчанию доступ запрещен — разрешение
// дает только явное правило.
package policy

import "github.com/magabrotheeeer/blogify/internal/models"

// CanMutatePost сообщает, может ли принципал изменить или удалить публикацию.
// Разрешено владельцу записи и администратору.
func CanMutatePost(p models.Principal, post *models.Post) bool {
	if post == nil || p.UserUID == "" {
		return false
	}
	if p.Role == models.RoleAdmin {
		return true
	}
	return p.UserUID == post.AuthorUID
}

// IsAdmin — грубая проверка только по роли, для закрытых административных
// списков.
func IsAdmin(p models.Principal) bool {
	return p.Role == models.RoleAdmin
}
