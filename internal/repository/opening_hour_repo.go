package repository

import (
	"context"

	"salonbooking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OpeningHourRepository struct {
	db *gorm.DB
}

func NewOpeningHourRepository(db *gorm.DB) *OpeningHourRepository {
	return &OpeningHourRepository{db: db}
}

func (r *OpeningHourRepository) List(ctx context.Context) ([]domain.OpeningHour, error) {
	var out []domain.OpeningHour
	err := r.db.WithContext(ctx).Order("weekday").Find(&out).Error
	return out, err
}

// Upsert replaces the schedule for the given weekday.
func (r *OpeningHourRepository) Upsert(ctx context.Context, h *domain.OpeningHour) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "is_closed"}),
		}).
		Create(h).Error
}
