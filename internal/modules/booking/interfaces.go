package booking

import (
	"context"
	"time"

	"salonbooking/internal/domain"
	"salonbooking/internal/notify"
)

// BookingRepository is the persistence surface of the lifecycle service.
// Create must re-check capacity and overlap atomically with the insert.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByConfirmationCode(ctx context.Context, code string) (*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, confirmedAt *time.Time) error
	MarkReminderSent(ctx context.Context, id int64) error
	ListDueReminders(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
}

type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	Offers(ctx context.Context, staffID, serviceID int64) (bool, error)
}

type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	CountActiveBookings(ctx context.Context, slotID int64) (int64, error)
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// NotificationSender is satisfied by notify.Dispatcher. Results are recorded,
// never treated as operation failures.
type NotificationSender interface {
	BookingConfirmed(ctx context.Context, b *domain.Booking) notify.Result
	BookingCanceled(ctx context.Context, b *domain.Booking) notify.Result
	BookingReminder(ctx context.Context, b *domain.Booking) notify.Result
}
