package repository

import (
	"context"

	"salonbooking/internal/domain"

	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) CreatePhone(ctx context.Context, v *domain.PhoneVerification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// LatestPhone returns the most recent OTP challenge for the customer.
func (r *VerificationRepository) LatestPhone(ctx context.Context, customerID int64) (*domain.PhoneVerification, error) {
	var v domain.PhoneVerification
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VerificationRepository) UpdatePhone(ctx context.Context, v *domain.PhoneVerification) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VerificationRepository) CreateEmail(ctx context.Context, v *domain.EmailVerification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VerificationRepository) LatestEmail(ctx context.Context, customerID int64) (*domain.EmailVerification, error) {
	var v domain.EmailVerification
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND used_at IS NULL", customerID).
		Order("created_at DESC").
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VerificationRepository) UpdateEmail(ctx context.Context, v *domain.EmailVerification) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// DeleteExpired drops stale unverified challenges, used by cmd/reminders to
// keep the tables small.
func (r *VerificationRepository) DeleteExpired(ctx context.Context) error {
	if err := r.db.WithContext(ctx).
		Where("verified = ? AND expires_at < CURRENT_TIMESTAMP", false).
		Delete(&domain.PhoneVerification{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("used_at IS NULL AND expires_at < CURRENT_TIMESTAMP").
		Delete(&domain.EmailVerification{}).Error
}
