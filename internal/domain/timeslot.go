package domain

import "time"

// TimeSlot is a staff-scoped bookable window with finite capacity.
// A staff member cannot have two slots starting at the same instant.
type TimeSlot struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	StaffID   int64     `json:"staff_id" gorm:"uniqueIndex:idx_staff_start" validate:"required"`
	StartTime time.Time `json:"start_time" gorm:"uniqueIndex:idx_staff_start" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Capacity  int       `json:"capacity" validate:"gte=1"`
	IsBlocked bool      `json:"is_blocked"`
	CreatedAt time.Time `json:"created_at"`

	Staff *Staff `json:"staff,omitempty" gorm:"foreignKey:StaffID"`
}

func (TimeSlot) TableName() string { return "time_slots" }
