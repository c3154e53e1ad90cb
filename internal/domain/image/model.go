package image

import "time"

// Tag - тег изображения. Порядок тегов в ответе сервера сохраняется.
type Tag struct {
	Name string `json:"name"`
}

// Image - изображение на сервере. Клиент держит только временную
// read-only копию на время работы команды.
type Image struct {
	ID          int       `json:"id"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	UserID      int       `json:"user_id,omitempty"`
	Tags        []Tag     `json:"tags"`
	Rating      *float64  `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Page - страница списка изображений в том виде, как ее отдает сервер.
// Порядок items - порядок сервера, клиент не сортирует.
type Page struct {
	Items []Image `json:"items"`
	Total int     `json:"total,omitempty"`
	Page  int     `json:"page,omitempty"`
	Size  int     `json:"size,omitempty"`
}
