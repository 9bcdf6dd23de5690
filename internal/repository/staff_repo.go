package repository

import (
	"context"

	"salonbooking/internal/domain"

	"gorm.io/gorm"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StaffRepository) Update(ctx context.Context, s *domain.Staff) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(s).Error
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	var s domain.Staff
	if err := r.db.WithContext(ctx).Preload("Services").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) GetBySlug(ctx context.Context, slug string) (*domain.Staff, error) {
	var s domain.Staff
	if err := r.db.WithContext(ctx).Preload("Services").Where("slug = ?", slug).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) ListActive(ctx context.Context) ([]domain.Staff, error) {
	var out []domain.Staff
	err := r.db.WithContext(ctx).
		Preload("Services", "is_active = ?", true).
		Where("is_active = ?", true).
		Order("display_order, first_name, last_name").
		Find(&out).Error
	return out, err
}

// ListActiveForService returns active staff who perform the given service.
func (r *StaffRepository) ListActiveForService(ctx context.Context, serviceID int64) ([]domain.Staff, error) {
	var out []domain.Staff
	err := r.db.WithContext(ctx).
		Preload("Services", "is_active = ?", true).
		Joins("JOIN staff_services ss ON ss.staff_id = staff.id").
		Where("ss.service_id = ? AND staff.is_active = ?", serviceID, true).
		Order("staff.display_order, staff.first_name").
		Find(&out).Error
	return out, err
}

// Offers reports whether the (staff, service) pair exists in the join table.
func (r *StaffRepository) Offers(ctx context.Context, staffID, serviceID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Table("staff_services").
		Where("staff_id = ? AND service_id = ?", staffID, serviceID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&domain.Booking{}).Where("staff_id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrInUse
		}
		return tx.Delete(&domain.Staff{}, id).Error
	})
}
