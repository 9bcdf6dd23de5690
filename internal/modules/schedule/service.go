package schedule

import (
	"context"
	"errors"
	"sort"
	"time"

	"salonbooking/internal/domain"
	"salonbooking/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	slots SlotRepository
	staff StaffLister
	hours OpeningHourRepository
}

func NewService(slots SlotRepository, staff StaffLister, hours OpeningHourRepository) *Service {
	return &Service{slots: slots, staff: staff, hours: hours}
}

// IsAvailable is the availability predicate: a slot can take a booking iff it
// is not blocked, starts in the future, and has active bookings below
// capacity. Pure over its inputs; the booking transaction re-evaluates it
// under lock.
func IsAvailable(slot domain.TimeSlot, activeCount int64, now time.Time) bool {
	if slot.IsBlocked {
		return false
	}
	if !slot.StartTime.After(now) {
		return false
	}
	return activeCount < int64(slot.Capacity)
}

// StaffAvailability lists a staff member's open slots over [from, from+days),
// grouped by calendar date and ordered by start time.
func (s *Service) StaffAvailability(ctx context.Context, staffID int64, from time.Time, days int) ([]DayAvailability, error) {
	if days <= 0 {
		return nil, ErrValidation
	}
	rows, err := s.slots.ListForStaff(ctx, staffID, from, from.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	return groupByDate(filterAvailable(rows, time.Now())), nil
}

// AnyStaffAvailability is the unpinned-staff enumeration: one offering per
// start time even when several staff could serve it. The concrete staff
// assignment happens at booking time through the slot id the caller submits.
func (s *Service) AnyStaffAvailability(ctx context.Context, from time.Time, days int) ([]DayAvailability, error) {
	if days <= 0 {
		return nil, ErrValidation
	}
	rows, err := s.slots.ListForAllStaff(ctx, from, from.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}

	avail := filterAvailable(rows, time.Now())

	seen := make(map[int64]bool, len(avail))
	deduped := avail[:0]
	for _, v := range avail {
		key := v.StartTime.UnixNano()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, v)
	}
	return groupByDate(deduped), nil
}

func (s *Service) GetSlot(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return slot, err
}

func (s *Service) CreateSlot(ctx context.Context, req CreateSlotRequest) (*domain.TimeSlot, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrValidation
	}
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}
	if capacity < 1 {
		return nil, ErrValidation
	}

	slot := &domain.TimeSlot{
		StaffID:   req.StaffID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Capacity:  capacity,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrSlotExists
		}
		return nil, err
	}
	return slot, nil
}

func (s *Service) BlockSlot(ctx context.Context, id int64, blocked bool) error {
	err := s.slots.SetBlocked(ctx, id, blocked)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// GenerateSlots walks the opening-hour grid over a date range and inserts a
// slot every SlotMinutes for each requested staff member. Existing
// (staff, start) pairs and closed days are skipped. Returns inserted count.
func (s *Service) GenerateSlots(ctx context.Context, req GenerateSlotsRequest) (int, error) {
	fromDay, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return 0, ErrValidation
	}
	toDay, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return 0, ErrValidation
	}
	if toDay.Before(fromDay) || req.SlotMinutes <= 0 {
		return 0, ErrValidation
	}
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	staffIDs := req.StaffIDs
	if len(staffIDs) == 0 {
		all, err := s.staff.ListActive(ctx)
		if err != nil {
			return 0, err
		}
		for _, st := range all {
			staffIDs = append(staffIDs, st.ID)
		}
	}

	hours, err := s.hours.List(ctx)
	if err != nil {
		return 0, err
	}
	byWeekday := make(map[int]domain.OpeningHour, len(hours))
	for _, h := range hours {
		byWeekday[h.Weekday] = h
	}

	step := time.Duration(req.SlotMinutes) * time.Minute
	now := time.Now()

	var batch []domain.TimeSlot
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		h, ok := byWeekday[domain.WeekdayIndex(day.Weekday())]
		if !ok || h.IsClosed {
			continue
		}
		open, err1 := time.Parse("15:04", h.StartTime)
		close, err2 := time.Parse("15:04", h.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}

		dayOpen := time.Date(day.Year(), day.Month(), day.Day(), open.Hour(), open.Minute(), 0, 0, day.Location())
		dayClose := time.Date(day.Year(), day.Month(), day.Day(), close.Hour(), close.Minute(), 0, 0, day.Location())

		for start := dayOpen; !start.Add(step).After(dayClose); start = start.Add(step) {
			if !start.After(now) {
				continue
			}
			for _, staffID := range staffIDs {
				batch = append(batch, domain.TimeSlot{
					StaffID:   staffID,
					StartTime: start,
					EndTime:   start.Add(step),
					Capacity:  capacity,
				})
			}
		}
	}

	if len(batch) == 0 {
		return 0, nil
	}
	return s.slots.CreateBatch(ctx, batch)
}

func filterAvailable(rows []repository.SlotWithCount, now time.Time) []SlotView {
	out := make([]SlotView, 0, len(rows))
	for _, r := range rows {
		if !IsAvailable(r.Slot, r.ActiveCount, now) {
			continue
		}
		out = append(out, SlotView{
			ID:        r.Slot.ID,
			StaffID:   r.Slot.StaffID,
			StartTime: r.Slot.StartTime,
			EndTime:   r.Slot.EndTime,
			Capacity:  r.Slot.Capacity,
			Remaining: r.Slot.Capacity - int(r.ActiveCount),
		})
	}
	return out
}

func groupByDate(slots []SlotView) []DayAvailability {
	byDate := make(map[string][]SlotView)
	for _, v := range slots {
		key := v.StartTime.Format("2006-01-02")
		byDate[key] = append(byDate[key], v)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DayAvailability, 0, len(dates))
	for _, d := range dates {
		day := byDate[d]
		sort.Slice(day, func(i, j int) bool { return day[i].StartTime.Before(day[j].StartTime) })
		out = append(out, DayAvailability{Date: d, Slots: day})
	}
	return out
}
