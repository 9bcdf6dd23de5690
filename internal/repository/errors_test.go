package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"translated gorm error", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm error", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other violation", &pgconn.PgError{Code: "23503"}, false},
		// modernc sqlite reports constraint errors untranslated.
		{"sqlite unique violation", errors.New("constraint failed: UNIQUE constraint failed: services.slug (2067)"), true},
		{"sqlite primary key violation", errors.New("constraint failed: UNIQUE constraint failed: bookings.id (1555)"), true},
		{"unrelated error", errors.New("connection reset"), false},
		{"record not found", gorm.ErrRecordNotFound, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKey(tc.err))
		})
	}
}
