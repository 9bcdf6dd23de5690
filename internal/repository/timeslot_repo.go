package repository

import (
	"context"
	"time"

	"salonbooking/internal/domain"

	"gorm.io/gorm"
)

type TimeSlotRepository struct {
	db *gorm.DB
}

func NewTimeSlotRepository(db *gorm.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// SlotWithCount pairs a slot with its active (pending/confirmed) booking count
// so availability can be decided without an extra query per slot.
type SlotWithCount struct {
	Slot        domain.TimeSlot
	ActiveCount int64
}

func (r *TimeSlotRepository) Create(ctx context.Context, s *domain.TimeSlot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// CreateBatch inserts slots one by one, skipping (staff, start_time) duplicates.
// Returns how many rows were actually inserted.
func (r *TimeSlotRepository) CreateBatch(ctx context.Context, slots []domain.TimeSlot) (int, error) {
	created := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range slots {
			err := tx.Create(&slots[i]).Error
			if IsDuplicateKey(err) {
				continue
			}
			if err != nil {
				return err
			}
			created++
		}
		return nil
	})
	return created, err
}

func (r *TimeSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	var s domain.TimeSlot
	if err := r.db.WithContext(ctx).Preload("Staff").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *TimeSlotRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.TimeSlot{}).
		Where("id = ?", id).
		Update("is_blocked", blocked)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForStaff returns unblocked slots for one staff member within [from, to),
// each with its current active booking count, ordered by start time.
func (r *TimeSlotRepository) ListForStaff(ctx context.Context, staffID int64, from, to time.Time) ([]SlotWithCount, error) {
	return r.listWithCounts(ctx, r.db.WithContext(ctx).
		Where("time_slots.staff_id = ?", staffID).
		Where("time_slots.start_time >= ? AND time_slots.start_time < ?", from, to))
}

// ListForAllStaff is the "any available" enumeration across active staff.
func (r *TimeSlotRepository) ListForAllStaff(ctx context.Context, from, to time.Time) ([]SlotWithCount, error) {
	return r.listWithCounts(ctx, r.db.WithContext(ctx).
		Joins("JOIN staff ON staff.id = time_slots.staff_id AND staff.is_active = ?", true).
		Where("time_slots.start_time >= ? AND time_slots.start_time < ?", from, to))
}

func (r *TimeSlotRepository) listWithCounts(ctx context.Context, q *gorm.DB) ([]SlotWithCount, error) {
	var slots []domain.TimeSlot
	if err := q.
		Where("time_slots.is_blocked = ?", false).
		Order("time_slots.start_time").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return []SlotWithCount{}, nil
	}

	ids := make([]int64, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}

	type slotCount struct {
		TimeSlotID int64
		Cnt        int64
	}
	var counts []slotCount
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("time_slot_id, COUNT(1) AS cnt").
		Where("time_slot_id IN ? AND status IN ?", ids,
			[]string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Group("time_slot_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]int64, len(counts))
	for _, c := range counts {
		byID[c.TimeSlotID] = c.Cnt
	}

	out := make([]SlotWithCount, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotWithCount{Slot: s, ActiveCount: byID[s.ID]})
	}
	return out, nil
}

// CountActiveBookings returns the number of pending/confirmed bookings holding
// the slot.
func (r *TimeSlotRepository) CountActiveBookings(ctx context.Context, slotID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("time_slot_id = ? AND status IN ?", slotID,
			[]string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Count(&cnt).Error
	return cnt, err
}
