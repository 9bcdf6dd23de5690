package booking

import (
	"context"
	"testing"
	"time"

	"salonbooking/internal/domain"
	"salonbooking/internal/notify"
	"salonbooking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByConfirmationCode(ctx context.Context, code string) (*domain.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, confirmedAt *time.Time) error {
	args := m.Called(ctx, id, from, to, confirmedAt)
	return args.Error(0)
}

func (m *MockBookingRepository) MarkReminderSent(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) Offers(ctx context.Context, staffID, serviceID int64) (bool, error) {
	args := m.Called(ctx, staffID, serviceID)
	return args.Bool(0), args.Error(1)
}

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *MockSlotRepository) CountActiveBookings(ctx context.Context, slotID int64) (int64, error) {
	args := m.Called(ctx, slotID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) BookingConfirmed(ctx context.Context, b *domain.Booking) notify.Result {
	args := m.Called(ctx, b)
	return args.Get(0).(notify.Result)
}

func (m *MockNotificationSender) BookingCanceled(ctx context.Context, b *domain.Booking) notify.Result {
	args := m.Called(ctx, b)
	return args.Get(0).(notify.Result)
}

func (m *MockNotificationSender) BookingReminder(ctx context.Context, b *domain.Booking) notify.Result {
	args := m.Called(ctx, b)
	return args.Get(0).(notify.Result)
}

type fixture struct {
	bookings  *MockBookingRepository
	services  *MockServiceRepository
	staff     *MockStaffRepository
	slots     *MockSlotRepository
	customers *MockCustomerRepository
	notifs    *MockNotificationSender
	service   *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings:  new(MockBookingRepository),
		services:  new(MockServiceRepository),
		staff:     new(MockStaffRepository),
		slots:     new(MockSlotRepository),
		customers: new(MockCustomerRepository),
		notifs:    new(MockNotificationSender),
	}
	f.service = NewService(f.bookings, f.services, f.staff, f.slots, f.customers, f.notifs)
	return f
}

func futureSlot(staffID int64) *domain.TimeSlot {
	start := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	return &domain.TimeSlot{
		ID:        20,
		StaffID:   staffID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Capacity:  1,
	}
}

func haircut() *domain.Service {
	return &domain.Service{ID: 1, Name: "Haircut", Slug: "haircut", DurationMinutes: 45, Price: 50, IsActive: true}
}

func TestService_Create_RegisteredCustomer(t *testing.T) {
	f := newFixture()

	customer := &domain.Customer{ID: 7, Email: "anna@example.com"}
	slot := futureSlot(3)

	f.customers.On("GetByID", mock.Anything, int64(7)).Return(customer, nil)
	f.services.On("GetByID", mock.Anything, int64(1)).Return(haircut(), nil)
	f.staff.On("Offers", mock.Anything, int64(3), int64(1)).Return(true, nil)
	f.slots.On("GetByID", mock.Anything, int64(20)).Return(slot, nil)
	f.slots.On("CountActiveBookings", mock.Anything, int64(20)).Return(int64(0), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{
		ID:         999,
		CustomerID: &customer.ID,
		Status:     domain.BookingPending,
		StartTime:  slot.StartTime,
		EndTime:    slot.StartTime.Add(45 * time.Minute),
		Price:      50,
	}, nil)

	b, err := f.service.Create(context.Background(), domain.RegisteredIdentity(7),
		CreateBookingRequest{ServiceID: 1, StaffID: 3, TimeSlotID: 20})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, slot.StartTime.Add(45*time.Minute), b.EndTime)
	assert.Equal(t, 50.0, b.Price)

	created := f.bookings.Calls[0].Arguments.Get(1).(*domain.Booking)
	assert.NotEmpty(t, created.ConfirmationCode)
	assert.Len(t, created.ConfirmationCode, 32)
}

func TestService_Create_GuestWithEmailOnly(t *testing.T) {
	f := newFixture()

	slot := futureSlot(3)
	f.services.On("GetByID", mock.Anything, int64(1)).Return(haircut(), nil)
	f.staff.On("Offers", mock.Anything, int64(3), int64(1)).Return(true, nil)
	f.slots.On("GetByID", mock.Anything, int64(20)).Return(slot, nil)
	f.slots.On("CountActiveBookings", mock.Anything, int64(20)).Return(int64(0), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(999)).Return(&domain.Booking{
		ID: 999, GuestEmail: "guest@example.com", Status: domain.BookingPending,
	}, nil)

	b, err := f.service.Create(context.Background(),
		domain.GuestIdentity("guest@example.com", "", ""),
		CreateBookingRequest{ServiceID: 1, StaffID: 3, TimeSlotID: 20})

	assert.NoError(t, err)
	assert.Nil(t, b.CustomerID)
	assert.Equal(t, "guest@example.com", b.GuestEmail)
}

func TestService_Create_GuestEmailMissing(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(),
		domain.GuestIdentity("", "Guest", ""),
		CreateBookingRequest{ServiceID: 1, StaffID: 3, TimeSlotID: 20})

	assert.ErrorIs(t, err, ErrGuestEmailRequired)
}

func TestService_Create_GuestEmailInvalid(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(),
		domain.GuestIdentity("not-an-email", "", ""),
		CreateBookingRequest{ServiceID: 1, StaffID: 3, TimeSlotID: 20})

	assert.ErrorIs(t, err, ErrGuestEmailInvalid)
}

func TestService_Create_ServiceNotOffered(t *testing.T) {
	f := newFixture()

	f.services.On("GetByID", mock.Anything, int64(1)).Return(haircut(), nil)
	f.staff.On("Offers", mock.Anything, int64(3), int64(1)).Return(false, nil)

	_, err := f.service.Create(context.Background(),
		domain.GuestIdentity("guest@example.com", "", ""),
		CreateBookingRequest{ServiceID: 1, StaffID: 3, TimeSlotID: 20})

	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestService_Create_SlotBelongsToOtherStaff(t *testing.T) {
	f := newFixture()

	slot := futureSlot(4) // different staff member
	f.services.On("GetByID", mock.Anything, int64(1)).Return(haircut(), nil)
	f.staff.On("Offers", mock.Anything, int64(3), int64(1)).Return(true, nil)
	f.slots.On("GetByID", mock.Anything, int64(20)).Return(slot, nil)

	_, err := f.service.Create(context.Background(),
		domain.GuestIdentity("guest@example.com", "", ""),
		CreateBookingRequest{ServiceID: 1, StaffID: 3, TimeSlotID: 20})

	assert.ErrorIs(t, err, ErrSlotMismatch)
}

func TestService_Create_SlotBlocked(t *testing.T) {
	f := newFixture()

	slot := futureSlot(3)
	slot.IsBlocked = true
	f.services.On("GetByID", mock.Anything, int64(1)).Return(haircut(), nil)
	f.staff.On("Offers", mock.Anything, int64(3), int64(1)).Return(true, nil)
	f.slots.On("GetByID", mock.Anything, int64(20)).Return(slot, nil)
	f.slots.On("CountActiveBookings", mock.Anything, int64(20)).Return(int64(0), nil)

	_, err := f.service.Create(context.Background(),
		domain.GuestIdentity("guest@example.com", "", ""),
		CreateBookingRequest{ServiceID: 1, StaffID: 3, TimeSlotID: 20})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestService_Create_SlotAtCapacity(t *testing.T) {
	f := newFixture()

	slot := futureSlot(3)
	f.services.On("GetByID", mock.Anything, int64(1)).Return(haircut(), nil)
	f.staff.On("Offers", mock.Anything, int64(3), int64(1)).Return(true, nil)
	f.slots.On("GetByID", mock.Anything, int64(20)).Return(slot, nil)
	f.slots.On("CountActiveBookings", mock.Anything, int64(20)).Return(int64(1), nil)

	_, err := f.service.Create(context.Background(),
		domain.GuestIdentity("guest@example.com", "", ""),
		CreateBookingRequest{ServiceID: 1, StaffID: 3, TimeSlotID: 20})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestService_Create_PastSlot(t *testing.T) {
	f := newFixture()

	slot := futureSlot(3)
	slot.StartTime = time.Now().Add(-time.Hour)
	slot.EndTime = slot.StartTime.Add(time.Hour)
	f.services.On("GetByID", mock.Anything, int64(1)).Return(haircut(), nil)
	f.staff.On("Offers", mock.Anything, int64(3), int64(1)).Return(true, nil)
	f.slots.On("GetByID", mock.Anything, int64(20)).Return(slot, nil)
	f.slots.On("CountActiveBookings", mock.Anything, int64(20)).Return(int64(0), nil)

	_, err := f.service.Create(context.Background(),
		domain.GuestIdentity("guest@example.com", "", ""),
		CreateBookingRequest{ServiceID: 1, StaffID: 3, TimeSlotID: 20})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

// The repository re-checks availability under lock; a conflict there surfaces
// as the same errors the pre-checks produce.
func TestService_Create_RepositoryConflicts(t *testing.T) {
	cases := []struct {
		name    string
		repoErr error
		want    error
	}{
		{"capacity lost in race", repository.ErrSlotUnavailable, ErrSlotUnavailable},
		{"overlapping active booking", repository.ErrOverlappingBooking, ErrOverlap},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()

			slot := futureSlot(3)
			f.services.On("GetByID", mock.Anything, int64(1)).Return(haircut(), nil)
			f.staff.On("Offers", mock.Anything, int64(3), int64(1)).Return(true, nil)
			f.slots.On("GetByID", mock.Anything, int64(20)).Return(slot, nil)
			f.slots.On("CountActiveBookings", mock.Anything, int64(20)).Return(int64(0), nil)
			f.bookings.On("Create", mock.Anything, mock.Anything).Return(tc.repoErr)

			_, err := f.service.Create(context.Background(),
				domain.GuestIdentity("guest@example.com", "", ""),
				CreateBookingRequest{ServiceID: 1, StaffID: 3, TimeSlotID: 20})

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_Confirm_Pending(t *testing.T) {
	f := newFixture()

	f.bookings.On("UpdateStatus", mock.Anything, int64(5),
		[]domain.BookingStatus{domain.BookingPending}, domain.BookingConfirmed, mock.Anything).Return(nil)
	now := time.Now()
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, Status: domain.BookingConfirmed, ConfirmedAt: &now, GuestEmail: "guest@example.com",
	}, nil)
	f.notifs.On("BookingConfirmed", mock.Anything, mock.Anything).Return(notify.Result{EmailSent: true})

	b, err := f.service.Confirm(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.NotNil(t, b.ConfirmedAt)
	f.notifs.AssertCalled(t, "BookingConfirmed", mock.Anything, mock.Anything)
}

func TestService_Confirm_AlreadyConfirmed(t *testing.T) {
	f := newFixture()

	f.bookings.On("UpdateStatus", mock.Anything, int64(5),
		mock.Anything, domain.BookingConfirmed, mock.Anything).Return(gorm.ErrRecordNotFound)
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, Status: domain.BookingConfirmed,
	}, nil)

	_, err := f.service.Confirm(context.Background(), 5)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}

func TestService_Confirm_Canceled(t *testing.T) {
	f := newFixture()

	f.bookings.On("UpdateStatus", mock.Anything, int64(5),
		mock.Anything, domain.BookingConfirmed, mock.Anything).Return(gorm.ErrRecordNotFound)
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, Status: domain.BookingCanceled,
	}, nil)

	_, err := f.service.Confirm(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestService_Confirm_NotFound(t *testing.T) {
	f := newFixture()

	f.bookings.On("UpdateStatus", mock.Anything, int64(5),
		mock.Anything, domain.BookingConfirmed, mock.Anything).Return(gorm.ErrRecordNotFound)
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.Confirm(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Cancel_Confirmed(t *testing.T) {
	f := newFixture()

	f.bookings.On("UpdateStatus", mock.Anything, int64(5),
		[]domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed},
		domain.BookingCanceled, (*time.Time)(nil)).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, Status: domain.BookingCanceled, GuestEmail: "guest@example.com",
	}, nil)
	f.notifs.On("BookingCanceled", mock.Anything, mock.Anything).Return(notify.Result{EmailSent: true})

	b, err := f.service.Cancel(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCanceled, b.Status)
}

func TestService_Cancel_Terminal(t *testing.T) {
	f := newFixture()

	f.bookings.On("UpdateStatus", mock.Anything, int64(5),
		mock.Anything, domain.BookingCanceled, (*time.Time)(nil)).Return(gorm.ErrRecordNotFound)
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, Status: domain.BookingCompleted,
	}, nil)

	_, err := f.service.Cancel(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

// Notification failure never fails the lifecycle operation.
func TestService_Cancel_NotificationUndelivered(t *testing.T) {
	f := newFixture()

	f.bookings.On("UpdateStatus", mock.Anything, int64(5),
		mock.Anything, domain.BookingCanceled, (*time.Time)(nil)).Return(nil)
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID: 5, Status: domain.BookingCanceled,
	}, nil)
	f.notifs.On("BookingCanceled", mock.Anything, mock.Anything).Return(notify.Result{})

	_, err := f.service.Cancel(context.Background(), 5)
	assert.NoError(t, err)
}

func TestService_SendReminder_OnlyOnce(t *testing.T) {
	f := newFixture()

	f.notifs.On("BookingReminder", mock.Anything, mock.Anything).Return(notify.Result{EmailSent: true})
	f.bookings.On("MarkReminderSent", mock.Anything, int64(5)).Return(nil)

	sent, err := f.service.SendReminder(context.Background(), &domain.Booking{ID: 5})
	assert.NoError(t, err)
	assert.True(t, sent)

	sent, err = f.service.SendReminder(context.Background(), &domain.Booking{ID: 5, ReminderSent: true})
	assert.NoError(t, err)
	assert.False(t, sent)
	f.notifs.AssertNumberOfCalls(t, "BookingReminder", 1)
}

func TestService_SendDueReminders(t *testing.T) {
	f := newFixture()

	due := []domain.Booking{
		{ID: 1, Status: domain.BookingConfirmed},
		{ID: 2, Status: domain.BookingConfirmed, ReminderSent: true},
		{ID: 3, Status: domain.BookingConfirmed},
	}
	f.bookings.On("ListDueReminders", mock.Anything, mock.Anything, mock.Anything).Return(due, nil)
	f.notifs.On("BookingReminder", mock.Anything, mock.Anything).Return(notify.Result{SMSSent: true})
	f.bookings.On("MarkReminderSent", mock.Anything, mock.Anything).Return(nil)

	sent, err := f.service.SendDueReminders(context.Background(), 24*time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, 2, sent)
}

func TestService_GetByConfirmationCode_NotFound(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByConfirmationCode", mock.Anything, "deadbeef").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.GetByConfirmationCode(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrNotFound)
}
