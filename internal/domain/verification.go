package domain

import "time"

// PhoneVerification holds a short-lived OTP challenge for a customer's phone.
// Codes are stored hashed; at most three attempts per challenge.
type PhoneVerification struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	CustomerID int64     `json:"customer_id"`
	Phone      string    `json:"phone"`
	CodeHash   string    `json:"-"`
	Attempts   int       `json:"attempts"`
	Verified   bool      `json:"verified"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// EmailVerification is the email counterpart, consumed once.
type EmailVerification struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	CustomerID int64      `json:"customer_id"`
	CodeHash   string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
