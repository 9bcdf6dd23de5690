package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"salonbooking/internal/domain"
	"salonbooking/internal/pkg/utils"
	"salonbooking/internal/pkg/validator"
	"salonbooking/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	verificationCodeDigits = 6
	maxOTPAttempts         = 3
)

type jwtService interface {
	GenerateToken(customerID int64, role string) (string, error)
}

// Service contains all business logic for customer accounts and verification.
type Service struct {
	customers     CustomerRepository
	verifications VerificationRepository
	jwt           jwtService
	mailer        Mailer
	sms           SMSSender
	codePepper    string
	codeTTL       time.Duration
}

func NewService(
	customers CustomerRepository,
	verifications VerificationRepository,
	jwt jwtService,
	mailer Mailer,
	sms SMSSender,
	codePepper string,
	codeTTL time.Duration,
) *Service {
	return &Service{
		customers:     customers,
		verifications: verifications,
		jwt:           jwt,
		mailer:        mailer,
		sms:           sms,
		codePepper:    codePepper,
		codeTTL:       codeTTL,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.Customer, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validator.Var(email, "email") {
		return nil, "", ErrValidation
	}

	if _, err := s.customers.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	customer := &domain.Customer{
		Email:              email,
		PasswordHash:       string(hash),
		Role:               domain.RoleCustomer,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Phone:              strings.TrimSpace(req.Phone),
		SMSNotifications:   true,
		EmailNotifications: true,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", err
	}

	// Kick off email verification; registration still succeeds if the
	// message cannot be delivered.
	if err := s.RequestEmailVerification(ctx, customer.ID); err != nil {
		log.Printf("auth: email verification request failed for customer %d: %v", customer.ID, err)
	}

	token, err := s.jwt.GenerateToken(customer.ID, string(customer.Role))
	if err != nil {
		return nil, "", err
	}

	customer.PasswordHash = ""
	return customer, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Customer, string, error) {
	customer, err := s.customers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(customer.ID, string(customer.Role))
	if err != nil {
		return nil, "", err
	}

	customer.PasswordHash = ""
	return customer, token, nil
}

func (s *Service) GetProfile(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	customer.PasswordHash = ""
	return customer, nil
}

func (s *Service) UpdateProfile(ctx context.Context, customerID int64, req UpdateProfileRequest) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		customer.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		customer.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.SMSNotifications != nil {
		customer.SMSNotifications = *req.SMSNotifications
	}
	if req.EmailNotifications != nil {
		customer.EmailNotifications = *req.EmailNotifications
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}

	customer.PasswordHash = ""
	return customer, nil
}

// RequestEmailVerification issues a fresh code for the customer's address.
// Previously issued codes stay in the table; confirmation always checks the
// most recent unused one.
func (s *Service) RequestEmailVerification(ctx context.Context, customerID int64) error {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if customer.EmailVerified {
		return ErrAlreadyVerified
	}

	code := utils.GenerateOTP(verificationCodeDigits)
	v := &domain.EmailVerification{
		CustomerID: customer.ID,
		CodeHash:   s.hashCode(code),
		ExpiresAt:  time.Now().Add(s.codeTTL),
	}
	if err := s.verifications.CreateEmail(ctx, v); err != nil {
		return err
	}

	s.mailer.SendEmail(ctx, []string{customer.Email}, "Confirm your email", "verify_email", map[string]string{
		"name": customer.FullName(),
		"code": code,
	})
	return nil
}

func (s *Service) ConfirmEmail(ctx context.Context, customerID int64, code string) error {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if customer.EmailVerified {
		return ErrAlreadyVerified
	}

	v, err := s.verifications.LatestEmail(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	now := time.Now()
	if !v.ExpiresAt.After(now) {
		return ErrCodeExpired
	}
	if s.hashCode(code) != v.CodeHash {
		return ErrInvalidCode
	}

	v.UsedAt = &now
	if err := s.verifications.UpdateEmail(ctx, v); err != nil {
		return err
	}
	return s.customers.SetEmailVerified(ctx, customerID)
}

// RequestPhoneOTP sends a one-time code to the given number. The number is
// only stored on the customer once the code is verified.
func (s *Service) RequestPhoneOTP(ctx context.Context, customerID int64, phone string) error {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrValidation
	}

	code := utils.GenerateOTP(verificationCodeDigits)
	v := &domain.PhoneVerification{
		CustomerID: customer.ID,
		Phone:      phone,
		CodeHash:   s.hashCode(code),
		ExpiresAt:  time.Now().Add(s.codeTTL),
	}
	if err := s.verifications.CreatePhone(ctx, v); err != nil {
		return err
	}

	s.sms.SendSMS(ctx, phone, fmt.Sprintf("Your verification code is %s", code))
	return nil
}

func (s *Service) VerifyPhoneOTP(ctx context.Context, customerID int64, code string) error {
	v, err := s.verifications.LatestPhone(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	if v.Verified {
		return ErrAlreadyVerified
	}
	if !v.ExpiresAt.After(time.Now()) {
		return ErrCodeExpired
	}
	if v.Attempts >= maxOTPAttempts {
		return ErrTooManyAttempts
	}

	if s.hashCode(code) != v.CodeHash {
		v.Attempts++
		if err := s.verifications.UpdatePhone(ctx, v); err != nil {
			return err
		}
		if v.Attempts >= maxOTPAttempts {
			return ErrTooManyAttempts
		}
		return ErrInvalidCode
	}

	v.Verified = true
	if err := s.verifications.UpdatePhone(ctx, v); err != nil {
		return err
	}
	return s.customers.SetPhoneVerified(ctx, customerID, v.Phone)
}

func (s *Service) hashCode(code string) string {
	sum := sha256.Sum256([]byte(code + s.codePepper))
	return hex.EncodeToString(sum[:])
}
