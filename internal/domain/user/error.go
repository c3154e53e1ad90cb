package user

import "errors"

var (
	ErrNotFound = errors.New("user not found")
	// ErrConfirmPending - сервер отвечает 401 на request_email, когда письмо
	// уже отправлено или адрес уже подтвержден. Это не ошибка авторизации,
	// статус перегружен на стороне бэкенда.
	ErrConfirmPending = errors.New("email confirmation already pending")
)
