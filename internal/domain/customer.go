package domain

import "time"

type CustomerRole string

const (
	RoleCustomer CustomerRole = "customer"
	RoleAdmin    CustomerRole = "admin"
)

type Customer struct {
	ID           int64        `json:"id" gorm:"primaryKey"`
	Email        string       `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash string       `json:"-"`
	Role         CustomerRole `json:"role"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Phone        string       `json:"phone,omitempty"`

	EmailVerified bool `json:"email_verified"`
	PhoneVerified bool `json:"phone_verified"`

	// Notification preferences, both on by default.
	SMSNotifications   bool `json:"sms_notifications"`
	EmailNotifications bool `json:"email_notifications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }

func (c Customer) FullName() string {
	if c.FirstName == "" && c.LastName == "" {
		return ""
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
