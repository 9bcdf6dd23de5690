package domain

import "time"

// Service is a bookable salon offering (haircut, facial, manicure).
type Service struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" validate:"required"`
	Slug             string    `json:"slug" gorm:"uniqueIndex;size:200"`
	Description      string    `json:"description,omitempty" gorm:"type:text"`
	ShortDescription string    `json:"short_description,omitempty" gorm:"size:300"`
	DurationMinutes  int       `json:"duration_minutes" validate:"required,gt=0"`
	Price            float64   `json:"price" validate:"gte=0"`
	IsActive         bool      `json:"is_active"`
	DisplayOrder     int       `json:"display_order"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Service) TableName() string { return "services" }

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
