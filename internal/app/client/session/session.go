// Package session хранит состояние аутентификации клиента между запусками.
//
// Сессия ровно одна на хранилище: последняя запись побеждает, блокировок
// между параллельными процессами нет. Токены не проверяются и не
// отслеживаются по сроку - они считаются годными, пока сервер их принимает.
package session

import (
	"photoshare/internal/domain/user"
)

// Session - запись о текущем пользователе и кэш его профиля.
type Session struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Username     string        `json:"username"`
	Avatar       string        `json:"avatar"`
	UserData     *user.Profile `json:"user_data,omitempty"`
}

// Authenticated сообщает, есть ли в сессии access-токен.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// Store - подключаемое хранилище сессии.
type Store interface {
	// Load возвращает сохраненную сессию; если сессии нет - пустую.
	Load() (*Session, error)
	// Save целиком заменяет сохраненную сессию.
	Save(*Session) error
	// Clear удаляет сессию полностью.
	Clear() error
}
