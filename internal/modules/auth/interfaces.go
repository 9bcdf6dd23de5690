package auth

import (
	"context"

	"salonbooking/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	SetEmailVerified(ctx context.Context, id int64) error
	SetPhoneVerified(ctx context.Context, id int64, phone string) error
}

type VerificationRepository interface {
	CreatePhone(ctx context.Context, v *domain.PhoneVerification) error
	LatestPhone(ctx context.Context, customerID int64) (*domain.PhoneVerification, error)
	UpdatePhone(ctx context.Context, v *domain.PhoneVerification) error
	CreateEmail(ctx context.Context, v *domain.EmailVerification) error
	LatestEmail(ctx context.Context, customerID int64) (*domain.EmailVerification, error)
	UpdateEmail(ctx context.Context, v *domain.EmailVerification) error
}

type Mailer interface {
	SendEmail(ctx context.Context, to []string, subject, template string, data map[string]string) bool
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) bool
}
