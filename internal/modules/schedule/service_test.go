package schedule

import (
	"context"
	"testing"
	"time"

	"salonbooking/internal/domain"
	"salonbooking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Create(ctx context.Context, s *domain.TimeSlot) error {
	args := m.Called(ctx, s)
	if s != nil && args.Error(0) == nil {
		s.ID = 100
	}
	return args.Error(0)
}

func (m *MockSlotRepository) CreateBatch(ctx context.Context, slots []domain.TimeSlot) (int, error) {
	args := m.Called(ctx, slots)
	return args.Int(0), args.Error(1)
}

func (m *MockSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *MockSlotRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	args := m.Called(ctx, id, blocked)
	return args.Error(0)
}

func (m *MockSlotRepository) ListForStaff(ctx context.Context, staffID int64, from, to time.Time) ([]repository.SlotWithCount, error) {
	args := m.Called(ctx, staffID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SlotWithCount), args.Error(1)
}

func (m *MockSlotRepository) ListForAllStaff(ctx context.Context, from, to time.Time) ([]repository.SlotWithCount, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SlotWithCount), args.Error(1)
}

type MockStaffLister struct {
	mock.Mock
}

func (m *MockStaffLister) ListActive(ctx context.Context) ([]domain.Staff, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Staff), args.Error(1)
}

type MockOpeningHourRepository struct {
	mock.Mock
}

func (m *MockOpeningHourRepository) List(ctx context.Context) ([]domain.OpeningHour, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.OpeningHour), args.Error(1)
}

func TestIsAvailable(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Hour)
	past := now.Add(-2 * time.Hour)

	cases := []struct {
		name  string
		slot  domain.TimeSlot
		count int64
		want  bool
	}{
		{"open future slot", domain.TimeSlot{StartTime: future, Capacity: 1}, 0, true},
		{"blocked", domain.TimeSlot{StartTime: future, Capacity: 1, IsBlocked: true}, 0, false},
		{"at capacity", domain.TimeSlot{StartTime: future, Capacity: 1}, 1, false},
		{"over capacity", domain.TimeSlot{StartTime: future, Capacity: 2}, 3, false},
		{"below larger capacity", domain.TimeSlot{StartTime: future, Capacity: 3}, 2, true},
		{"past slot", domain.TimeSlot{StartTime: past, Capacity: 1}, 0, false},
		{"starting exactly now", domain.TimeSlot{StartTime: now, Capacity: 1}, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAvailable(tc.slot, tc.count, now))
		})
	}
}

func TestService_StaffAvailability_GroupsByDate(t *testing.T) {
	slots := new(MockSlotRepository)
	service := NewService(slots, new(MockStaffLister), new(MockOpeningHourRepository))

	day1 := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	day2 := day1.Add(24 * time.Hour)

	rows := []repository.SlotWithCount{
		{Slot: domain.TimeSlot{ID: 1, StaffID: 3, StartTime: day1, EndTime: day1.Add(time.Hour), Capacity: 1}, ActiveCount: 0},
		{Slot: domain.TimeSlot{ID: 2, StaffID: 3, StartTime: day1.Add(time.Hour), EndTime: day1.Add(2 * time.Hour), Capacity: 1}, ActiveCount: 1}, // full
		{Slot: domain.TimeSlot{ID: 3, StaffID: 3, StartTime: day2, EndTime: day2.Add(time.Hour), Capacity: 1}, ActiveCount: 0},
	}
	slots.On("ListForStaff", mock.Anything, int64(3), mock.Anything, mock.Anything).Return(rows, nil)

	days, err := service.StaffAvailability(context.Background(), 3, time.Now(), 7)

	assert.NoError(t, err)
	assert.Len(t, days, 2)
	assert.Equal(t, day1.Format("2006-01-02"), days[0].Date)
	assert.Len(t, days[0].Slots, 1) // the full slot is filtered out
	assert.Equal(t, int64(1), days[0].Slots[0].ID)
	assert.Len(t, days[1].Slots, 1)
}

func TestService_AnyStaffAvailability_DedupesStartTimes(t *testing.T) {
	slots := new(MockSlotRepository)
	service := NewService(slots, new(MockStaffLister), new(MockOpeningHourRepository))

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	// Two staff members free at the same instant: one offering shown.
	rows := []repository.SlotWithCount{
		{Slot: domain.TimeSlot{ID: 1, StaffID: 3, StartTime: start, EndTime: start.Add(time.Hour), Capacity: 1}},
		{Slot: domain.TimeSlot{ID: 2, StaffID: 4, StartTime: start, EndTime: start.Add(time.Hour), Capacity: 1}},
		{Slot: domain.TimeSlot{ID: 3, StaffID: 4, StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour), Capacity: 1}},
	}
	slots.On("ListForAllStaff", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)

	days, err := service.AnyStaffAvailability(context.Background(), time.Now(), 7)

	assert.NoError(t, err)
	assert.Len(t, days, 1)
	assert.Len(t, days[0].Slots, 2)
	assert.Equal(t, int64(1), days[0].Slots[0].ID)
	assert.Equal(t, int64(3), days[0].Slots[1].ID)
}

func TestService_AnyStaffAvailability_DedupSkipsFullSlot(t *testing.T) {
	slots := new(MockSlotRepository)
	service := NewService(slots, new(MockStaffLister), new(MockOpeningHourRepository))

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	// The first staff member at this start time is fully booked; the second
	// must still surface as the offering.
	rows := []repository.SlotWithCount{
		{Slot: domain.TimeSlot{ID: 1, StaffID: 3, StartTime: start, EndTime: start.Add(time.Hour), Capacity: 1}, ActiveCount: 1},
		{Slot: domain.TimeSlot{ID: 2, StaffID: 4, StartTime: start, EndTime: start.Add(time.Hour), Capacity: 1}, ActiveCount: 0},
	}
	slots.On("ListForAllStaff", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)

	days, err := service.AnyStaffAvailability(context.Background(), time.Now(), 7)

	assert.NoError(t, err)
	assert.Len(t, days, 1)
	assert.Len(t, days[0].Slots, 1)
	assert.Equal(t, int64(2), days[0].Slots[0].ID)
}

func TestService_CreateSlot_Validation(t *testing.T) {
	service := NewService(new(MockSlotRepository), new(MockStaffLister), new(MockOpeningHourRepository))

	start := time.Now().Add(24 * time.Hour)
	_, err := service.CreateSlot(context.Background(), CreateSlotRequest{
		StaffID:   3,
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateSlot_DuplicateStart(t *testing.T) {
	slots := new(MockSlotRepository)
	service := NewService(slots, new(MockStaffLister), new(MockOpeningHourRepository))

	slots.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	start := time.Now().Add(24 * time.Hour)
	_, err := service.CreateSlot(context.Background(), CreateSlotRequest{
		StaffID:   3,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotExists)
}

func TestService_GenerateSlots_WalksOpeningHours(t *testing.T) {
	slots := new(MockSlotRepository)
	staff := new(MockStaffLister)
	hours := new(MockOpeningHourRepository)
	service := NewService(slots, staff, hours)

	staff.On("ListActive", mock.Anything).Return([]domain.Staff{{ID: 3}}, nil)
	hours.On("List", mock.Anything).Return([]domain.OpeningHour{
		{Weekday: 0, StartTime: "09:00", EndTime: "11:00"},
		{Weekday: 1, StartTime: "09:00", EndTime: "11:00"},
		{Weekday: 2, StartTime: "09:00", EndTime: "11:00"},
		{Weekday: 3, StartTime: "09:00", EndTime: "11:00"},
		{Weekday: 4, StartTime: "09:00", EndTime: "11:00"},
		{Weekday: 5, IsClosed: true},
		{Weekday: 6, IsClosed: true},
	}, nil)

	var captured []domain.TimeSlot
	slots.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]domain.TimeSlot)
	}).Return(4, nil)

	// Pick the next Monday and Tuesday so the weekend filter is exercised.
	day := time.Now().AddDate(0, 0, 7)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}

	created, err := service.GenerateSlots(context.Background(), GenerateSlotsRequest{
		FromDate:    day.Format("2006-01-02"),
		ToDate:      day.AddDate(0, 0, 1).Format("2006-01-02"),
		SlotMinutes: 60,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, created)
	// Two days x two hour-long slots inside 09:00-11:00.
	assert.Len(t, captured, 4)
	for _, s := range captured {
		assert.Equal(t, int64(3), s.StaffID)
		assert.Equal(t, 1, s.Capacity)
		assert.Equal(t, time.Hour, s.EndTime.Sub(s.StartTime))
	}
}

func TestService_GenerateSlots_ClosedWindowYieldsNothing(t *testing.T) {
	slots := new(MockSlotRepository)
	staff := new(MockStaffLister)
	hours := new(MockOpeningHourRepository)
	service := NewService(slots, staff, hours)

	staff.On("ListActive", mock.Anything).Return([]domain.Staff{{ID: 3}}, nil)
	hours.On("List", mock.Anything).Return([]domain.OpeningHour{
		{Weekday: 5, IsClosed: true},
		{Weekday: 6, IsClosed: true},
	}, nil)

	day := time.Now().AddDate(0, 0, 7)
	for day.Weekday() != time.Saturday {
		day = day.AddDate(0, 0, 1)
	}

	created, err := service.GenerateSlots(context.Background(), GenerateSlotsRequest{
		FromDate:    day.Format("2006-01-02"),
		ToDate:      day.AddDate(0, 0, 1).Format("2006-01-02"),
		SlotMinutes: 60,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
	slots.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestService_GenerateSlots_InvalidWindow(t *testing.T) {
	service := NewService(new(MockSlotRepository), new(MockStaffLister), new(MockOpeningHourRepository))

	_, err := service.GenerateSlots(context.Background(), GenerateSlotsRequest{
		FromDate:    "2026-09-10",
		ToDate:      "2026-09-01",
		SlotMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrValidation)
}
