package repository

import (
	"context"
	"time"

	"salonbooking/internal/domain"
	"salonbooking/internal/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const codeInsertAttempts = 3

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64   `gorm:"column:id;primaryKey"`
	CustomerID *int64  `gorm:"column:customer_id"`
	GuestEmail string  `gorm:"column:guest_email"`
	GuestName  string  `gorm:"column:guest_name"`
	GuestPhone string  `gorm:"column:guest_phone"`
	ServiceID  int64   `gorm:"column:service_id"`
	StaffID    int64   `gorm:"column:staff_id"`
	TimeSlotID int64   `gorm:"column:time_slot_id"`
	StartTime  time.Time `gorm:"column:start_time"`
	EndTime    time.Time `gorm:"column:end_time"`
	Status     string  `gorm:"column:status"`
	Price      float64 `gorm:"column:price"`
	Notes      *string `gorm:"column:notes"`

	ConfirmationCode string     `gorm:"column:confirmation_code"`
	ConfirmedAt      *time.Time `gorm:"column:confirmed_at"`
	ReminderSent     bool       `gorm:"column:reminder_sent"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:               m.ID,
		CustomerID:       m.CustomerID,
		GuestEmail:       m.GuestEmail,
		GuestName:        m.GuestName,
		GuestPhone:       m.GuestPhone,
		ServiceID:        m.ServiceID,
		StaffID:          m.StaffID,
		TimeSlotID:       m.TimeSlotID,
		StartTime:        m.StartTime,
		EndTime:          m.EndTime,
		Status:           domain.BookingStatus(m.Status),
		Price:            m.Price,
		Notes:            notes,
		ConfirmationCode: m.ConfirmationCode,
		ConfirmedAt:      m.ConfirmedAt,
		ReminderSent:     m.ReminderSent,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:               b.ID,
		CustomerID:       b.CustomerID,
		GuestEmail:       b.GuestEmail,
		GuestName:        b.GuestName,
		GuestPhone:       b.GuestPhone,
		ServiceID:        b.ServiceID,
		StaffID:          b.StaffID,
		TimeSlotID:       b.TimeSlotID,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           string(b.Status),
		Price:            b.Price,
		Notes:            notes,
		ConfirmationCode: b.ConfirmationCode,
		ConfirmedAt:      b.ConfirmedAt,
		ReminderSent:     b.ReminderSent,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

var activeStatuses = []string{
	string(domain.BookingPending),
	string(domain.BookingConfirmed),
}

// Create inserts a booking after re-checking slot capacity and staff overlap
// inside a single transaction. The staff row is locked FOR UPDATE so all
// racing requests for that staff member serialize, including ones targeting
// different overlapping slots; on SQLite the transaction itself serializes
// writers. Confirmation-code collisions are retried with a fresh code behind
// a savepoint.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Overlapping bookings can target different slot rows of the same
		// staff member, so the slot lock alone is too narrow. Locking the
		// staff row serializes all creates for that staff member, making the
		// capacity and overlap counts below safe against concurrent inserts.
		var staffRow domain.Staff
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&staffRow, m.StaffID).Error; err != nil {
			return err
		}

		var slot domain.TimeSlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, m.TimeSlotID).Error; err != nil {
			return err
		}

		if slot.IsBlocked || !slot.StartTime.After(time.Now()) {
			return ErrSlotUnavailable
		}

		var held int64
		if err := tx.Model(&domain.Booking{}).
			Where("time_slot_id = ? AND status IN ?", slot.ID, activeStatuses).
			Count(&held).Error; err != nil {
			return err
		}
		if held >= int64(slot.Capacity) {
			return ErrSlotUnavailable
		}

		// Half-open interval overlap: existing.start < new.end AND existing.end > new.start.
		// Bookings sharing this slot are governed by the capacity check above,
		// not the overlap rule, so they are excluded here.
		var overlapping int64
		if err := tx.Model(&domain.Booking{}).
			Where("staff_id = ? AND status IN ?", m.StaffID, activeStatuses).
			Where("time_slot_id <> ?", slot.ID).
			Where("start_time < ? AND end_time > ?", m.EndTime, m.StartTime).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrOverlappingBooking
		}

		var err error
		for attempt := 0; attempt < codeInsertAttempts; attempt++ {
			tx.SavePoint("booking_insert")
			err = tx.Create(&m).Error
			if err == nil {
				return nil
			}
			if !IsDuplicateKey(err) {
				return err
			}
			tx.RollbackTo("booking_insert")
			m.ID = 0
			m.ConfirmationCode = utils.GenerateToken(16)
		}
		return err
	})
	if err != nil {
		return err
	}

	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return r.withAssociations(ctx, toDomainBooking(m))
}

func (r *BookingRepository) GetByConfirmationCode(ctx context.Context, code string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).Where("confirmation_code = ?", code).First(&m).Error; err != nil {
		return nil, err
	}
	return r.withAssociations(ctx, toDomainBooking(m))
}

func (r *BookingRepository) withAssociations(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	var full domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Preload("TimeSlot").
		First(&full, b.ID).Error
	if err != nil {
		return nil, err
	}
	return &full, nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Staff").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// UpdateStatus performs the transition only when the booking is still in one
// of fromStatuses; returns gorm.ErrRecordNotFound when the guard fails.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, confirmedAt *time.Time) error {
	fields := map[string]interface{}{"status": string(to)}
	if confirmedAt != nil {
		fields["confirmed_at"] = *confirmedAt
	}

	fromStrs := make([]string, 0, len(from))
	for _, s := range from {
		fromStrs = append(fromStrs, string(s))
	}

	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, fromStrs).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) MarkReminderSent(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}

// ListDueReminders returns confirmed bookings starting within [from, to) whose
// reminder has not gone out yet.
func (r *BookingRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Where("status = ? AND reminder_sent = ?", string(domain.BookingConfirmed), false).
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time").
		Find(&out).Error
	return out, err
}
