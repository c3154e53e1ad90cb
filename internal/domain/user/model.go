package user

import "time"

// Profile - снимок профиля пользователя, который отдает сервер.
// Неизменяемый: клиент кэширует его в сессии до следующего запроса /users/me.
type Profile struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Avatar        string    `json:"avatar"`
	Role          string    `json:"role,omitempty"`
	CommentsCount int       `json:"comments_count"`
	ImagesCount   int       `json:"images_count"`
	CreatedAt     time.Time `json:"created_at"`
}
