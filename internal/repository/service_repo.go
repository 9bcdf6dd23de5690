package repository

import (
	"context"

	"salonbooking/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) ListActive(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order, name").
		Find(&out).Error
	return out, err
}

// ListActiveForStaff returns the active services a staff member performs.
func (r *ServiceRepository) ListActiveForStaff(ctx context.Context, staffID int64) ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.WithContext(ctx).
		Joins("JOIN staff_services ss ON ss.service_id = services.id").
		Where("ss.staff_id = ? AND services.is_active = ?", staffID, true).
		Order("services.display_order, services.name").
		Find(&out).Error
	return out, err
}

// Delete removes a service unless bookings still reference it.
func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&domain.Booking{}).Where("service_id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrInUse
		}
		return tx.Delete(&domain.Service{}, id).Error
	})
}
