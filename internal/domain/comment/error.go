package comment

import "errors"

var ErrEmpty = errors.New("comment text is empty")
