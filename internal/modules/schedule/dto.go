package schedule

import "time"

type CreateSlotRequest struct {
	StaffID   int64     `json:"staff_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Capacity  int       `json:"capacity"`
}

// GenerateSlotsRequest builds a slot grid from the salon opening hours.
type GenerateSlotsRequest struct {
	StaffIDs     []int64 `json:"staff_ids"` // empty = all active staff
	FromDate     string  `json:"from_date" binding:"required"` // "2006-01-02"
	ToDate       string  `json:"to_date" binding:"required"`
	SlotMinutes  int     `json:"slot_minutes" binding:"required,gt=0"`
	Capacity     int     `json:"capacity"`
}

type SlotView struct {
	ID        int64     `json:"id"`
	StaffID   int64     `json:"staff_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Capacity  int       `json:"capacity"`
	Remaining int       `json:"remaining"`
}

// DayAvailability groups available slots by calendar date for presentation.
type DayAvailability struct {
	Date  string     `json:"date"`
	Slots []SlotView `json:"slots"`
}
