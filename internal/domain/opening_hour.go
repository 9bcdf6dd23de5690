package domain

import "time"

// OpeningHour is the salon schedule for one weekday (0 = Monday). Slot
// generation walks this grid; closed days produce no slots.
type OpeningHour struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	Weekday   int    `json:"weekday" gorm:"uniqueIndex" validate:"gte=0,lte=6"`
	StartTime string `json:"start_time"` // "15:04"
	EndTime   string `json:"end_time"`
	IsClosed  bool   `json:"is_closed"`
}

// WeekdayIndex maps time.Weekday to the Monday-based index stored here.
func WeekdayIndex(w time.Weekday) int {
	if w == time.Sunday {
		return 6
	}
	return int(w) - 1
}
