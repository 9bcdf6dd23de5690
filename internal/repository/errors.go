package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrSlotUnavailable is returned by the guarded booking insert when the
	// slot is blocked, in the past, or at capacity.
	ErrSlotUnavailable = errors.New("time slot unavailable")

	// ErrOverlappingBooking is returned when another active booking for the
	// same staff member overlaps the requested interval.
	ErrOverlappingBooking = errors.New("overlapping booking exists")

	// ErrInUse is returned when deleting a row still referenced by bookings.
	ErrInUse = errors.New("row referenced by bookings")
)

// IsDuplicateKey reports whether err is a unique-constraint violation on any
// of the supported engines. gorm's TranslateError covers Postgres through the
// gorm driver, raw pgx errors carry SQLSTATE 23505, and the modernc SQLite
// driver reports constraint violations untranslated, so those are matched by
// message.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
