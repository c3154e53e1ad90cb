package image

// UpdateRequest - изменение описания изображения.
type UpdateRequest struct {
	Description string `json:"description" validate:"max=50"`
}

// RatingRequest - оценка изображения от 1 до 5.
type RatingRequest struct {
	Rating float64 `json:"rating" validate:"gte=1,lte=5"`
}

// RatingResponse - средняя оценка изображения.
type RatingResponse struct {
	Rating float64 `json:"rating"`
}
