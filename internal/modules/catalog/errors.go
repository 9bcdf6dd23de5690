package catalog

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrSlugTaken  = errors.New("slug already in use")
	ErrInUse      = errors.New("referenced by existing bookings")
)
