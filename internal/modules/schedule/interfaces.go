package schedule

import (
	"context"
	"time"

	"salonbooking/internal/domain"
	"salonbooking/internal/repository"
)

// SlotRepository is the persistence surface the schedule service needs.
type SlotRepository interface {
	Create(ctx context.Context, s *domain.TimeSlot) error
	CreateBatch(ctx context.Context, slots []domain.TimeSlot) (int, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	ListForStaff(ctx context.Context, staffID int64, from, to time.Time) ([]repository.SlotWithCount, error)
	ListForAllStaff(ctx context.Context, from, to time.Time) ([]repository.SlotWithCount, error)
}

type StaffLister interface {
	ListActive(ctx context.Context) ([]domain.Staff, error)
}

type OpeningHourRepository interface {
	List(ctx context.Context) ([]domain.OpeningHour, error)
}
