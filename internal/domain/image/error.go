package image

import "errors"

var (
	ErrNotFound  = errors.New("image not found")
	ErrNoResults = errors.New("no images match the tag")
)
