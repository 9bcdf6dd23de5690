// Package notify delivers booking emails and SMS through pluggable backends.
// Delivery is best-effort: failures are logged and reported as booleans, never
// returned as errors to the booking lifecycle.
package notify

import "context"

// Mailer sends a templated email to one or more recipients.
type Mailer interface {
	SendEmail(ctx context.Context, to []string, subject, template string, data map[string]string) bool
}

// SMSSender sends a plain text message to one phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) bool
}

// Result reports which channels delivered. Overall success is the OR.
type Result struct {
	EmailSent bool
	SMSSent   bool
}

func (r Result) Delivered() bool {
	return r.EmailSent || r.SMSSent
}

// Recipient is the resolved contact for a booking party: the registered
// customer's stored contact (honoring their preference flags) or the
// guest-supplied fields.
type Recipient struct {
	Email      string
	Name       string
	Phone      string
	AllowEmail bool
	AllowSMS   bool
}
