package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"salonbooking/internal/domain"
	"salonbooking/internal/modules/schedule"
	"salonbooking/internal/pkg/utils"
	"salonbooking/internal/pkg/validator"
	"salonbooking/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	bookings  BookingRepository
	services  ServiceRepository
	staff     StaffRepository
	slots     SlotRepository
	customers CustomerRepository
	notifs    NotificationSender
}

func NewService(
	bookings BookingRepository,
	services ServiceRepository,
	staff StaffRepository,
	slots SlotRepository,
	customers CustomerRepository,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings:  bookings,
		services:  services,
		staff:     staff,
		slots:     slots,
		customers: customers,
		notifs:    notifs,
	}
}

// Create runs the precondition chain in order, each failure mapped to its own
// error: identity resolvable, staff offers service, slot belongs to staff,
// slot available, no overlapping active booking. The last two are re-checked
// atomically with the insert inside the repository transaction; the checks
// here exist to reject early with a precise reason.
func (s *Service) Create(ctx context.Context, identity domain.Identity, req CreateBookingRequest) (*domain.Booking, error) {
	b := &domain.Booking{
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		TimeSlotID: req.TimeSlotID,
		Notes:      req.Notes,
		Status:     domain.BookingPending,
	}

	switch {
	case identity.IsRegistered():
		customer, err := s.customers.GetByID(ctx, identity.CustomerID())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrForbidden
			}
			return nil, err
		}
		b.CustomerID = &customer.ID
	case identity.IsGuest():
		g := identity.Guest()
		if g.Email == "" {
			return nil, ErrGuestEmailRequired
		}
		if !validator.Var(g.Email, "email") {
			return nil, ErrGuestEmailInvalid
		}
		b.GuestEmail = g.Email
		b.GuestName = g.Name
		b.GuestPhone = g.Phone
	default:
		return nil, ErrGuestEmailRequired
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	offers, err := s.staff.Offers(ctx, req.StaffID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !offers {
		return nil, ErrServiceNotOffered
	}

	slot, err := s.slots.GetByID(ctx, req.TimeSlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if slot.StaffID != req.StaffID {
		return nil, ErrSlotMismatch
	}

	held, err := s.slots.CountActiveBookings(ctx, slot.ID)
	if err != nil {
		return nil, err
	}
	if !schedule.IsAvailable(*slot, held, time.Now()) {
		return nil, ErrSlotUnavailable
	}

	b.StartTime = slot.StartTime
	b.EndTime = slot.StartTime.Add(svc.Duration())
	b.Price = svc.Price
	b.ConfirmationCode = utils.GenerateToken(16)

	if err := s.bookings.Create(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotUnavailable):
			return nil, ErrSlotUnavailable
		case errors.Is(err, repository.ErrOverlappingBooking):
			return nil, ErrOverlap
		}
		return nil, err
	}

	return s.bookings.GetByID(ctx, b.ID)
}

// Confirm transitions pending -> confirmed and stamps the confirmation time.
// Re-confirming an already-confirmed booking is an explicit error, not a
// silent no-op. Notification is best-effort after the transition commits.
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Booking, error) {
	now := time.Now()
	err := s.bookings.UpdateStatus(ctx, id,
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingConfirmed, &now)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Guard failed: distinguish missing from wrong-state.
		current, getErr := s.bookings.GetByID(ctx, id)
		if getErr != nil {
			if errors.Is(getErr, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, getErr
		}
		if current.Status == domain.BookingConfirmed {
			return nil, ErrAlreadyConfirmed
		}
		return nil, ErrCannotConfirm
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		res := s.notifs.BookingConfirmed(ctx, b)
		if !res.Delivered() {
			log.Printf("booking: confirmation notification undelivered booking=%d", b.ID)
		}
	}
	return b, nil
}

// Cancel transitions pending/confirmed -> canceled. Terminal bookings reject
// with ErrCannotCancel.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	err := s.bookings.UpdateStatus(ctx, id,
		[]domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed},
		domain.BookingCanceled, nil)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if _, getErr := s.bookings.GetByID(ctx, id); getErr != nil {
			if errors.Is(getErr, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, getErr
		}
		return nil, ErrCannotCancel
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		res := s.notifs.BookingCanceled(ctx, b)
		if !res.Delivered() {
			log.Printf("booking: cancellation notification undelivered booking=%d", b.ID)
		}
	}
	return b, nil
}

// SendReminder dispatches the reminder once; returns false when it already
// went out.
func (s *Service) SendReminder(ctx context.Context, b *domain.Booking) (bool, error) {
	if b.ReminderSent {
		return false, nil
	}

	if s.notifs != nil {
		res := s.notifs.BookingReminder(ctx, b)
		if !res.Delivered() {
			log.Printf("booking: reminder undelivered booking=%d", b.ID)
		}
	}

	if err := s.bookings.MarkReminderSent(ctx, b.ID); err != nil {
		return false, err
	}
	return true, nil
}

// SendDueReminders dispatches reminders for confirmed bookings starting within
// the window. Used by the cron binary.
func (s *Service) SendDueReminders(ctx context.Context, window time.Duration) (int, error) {
	now := time.Now()
	due, err := s.bookings.ListDueReminders(ctx, now, now.Add(window))
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		ok, err := s.SendReminder(ctx, &due[i])
		if err != nil {
			return sent, err
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

// GetByConfirmationCode is the guest self-service lookup.
func (s *Service) GetByConfirmationCode(ctx context.Context, code string) (*domain.Booking, error) {
	b, err := s.bookings.GetByConfirmationCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *Service) ListForCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID)
}
