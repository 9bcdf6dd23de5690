package schedule

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("time slot not found")
	ErrSlotExists = errors.New("slot already exists at this start time")
)
