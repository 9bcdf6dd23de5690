package domain

import "time"

// Staff is a salon employee who performs a subset of the catalog services.
type Staff struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" validate:"required"`
	LastName     string    `json:"last_name" validate:"required"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;size:200"`
	Bio          string    `json:"bio,omitempty" gorm:"type:text"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Services []Service `json:"services,omitempty" gorm:"many2many:staff_services"`
}

func (Staff) TableName() string { return "staff" }

func (s Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Offers reports whether the staff member performs the given service.
func (s Staff) Offers(serviceID int64) bool {
	for _, svc := range s.Services {
		if svc.ID == serviceID {
			return true
		}
	}
	return false
}
