package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken - в сессии нет access-токена. Запрос в сеть не уходит.
	ErrNoToken = errors.New("токен не найден, выполните вход: photoshare auth login")
	// ErrUnauthorized - сервер отверг токен и обновить его не удалось.
	// Сессия к этому моменту уже очищена.
	ErrUnauthorized = errors.New("сессия истекла, выполните вход заново")
)

// APIError - ошибка уровня API с кодом и текстом detail из тела ответа.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ошибка сервера: %s (статус %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
}
