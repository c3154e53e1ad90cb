package comment

import "time"

// Comment - комментарий к изображению. Клиент его не кэширует:
// созданный комментарий просто добавляется к выводу текущей страницы.
type Comment struct {
	ID        int       `json:"id"`
	Comment   string    `json:"comment"`
	UserID    int       `json:"user_id"`
	ImageLink string    `json:"image_link,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AddRequest - тело запроса на создание комментария.
type AddRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}
