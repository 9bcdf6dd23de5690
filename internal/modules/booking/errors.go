package booking

import "errors"

var (
	// Validation: caller identity not resolvable.
	ErrGuestEmailRequired = errors.New("guest email required")
	ErrGuestEmailInvalid  = errors.New("guest email invalid")

	// Conflicts, in precondition order.
	ErrServiceNotOffered = errors.New("staff member does not offer this service")
	ErrSlotMismatch      = errors.New("time slot does not belong to this staff member")
	ErrSlotUnavailable   = errors.New("time slot unavailable")
	ErrOverlap           = errors.New("overlapping booking exists for this staff member")

	// State errors.
	ErrAlreadyConfirmed = errors.New("booking already confirmed")
	ErrCannotConfirm    = errors.New("booking cannot be confirmed from its current state")
	ErrCannotCancel     = errors.New("booking cannot be canceled from its current state")

	ErrNotFound  = errors.New("booking not found")
	ErrForbidden = errors.New("not allowed for this booking")
)
