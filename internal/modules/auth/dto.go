package auth

// Email format is checked in the service after trimming and lowercasing, so
// a padded address normalizes instead of failing the binding.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`

	SMSNotifications   *bool `json:"sms_notifications"`
	EmailNotifications *bool `json:"email_notifications"`
}

type ConfirmEmailRequest struct {
	Code string `json:"code" binding:"required"`
}

type RequestPhoneOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type VerifyPhoneOTPRequest struct {
	Code string `json:"code" binding:"required"`
}
