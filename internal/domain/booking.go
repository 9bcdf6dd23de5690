package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCanceled  BookingStatus = "canceled"
	BookingNoShow    BookingStatus = "no_show"
)

// Active reports whether the status still holds the slot (counts against
// capacity and participates in overlap checks).
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Terminal reports whether no further transitions are allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCanceled || s == BookingNoShow
}

// Booking links a customer (or guest), a service, a staff member and a time
// slot. Exactly one of CustomerID / GuestEmail is set.
type Booking struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	CustomerID *int64 `json:"customer_id,omitempty"`
	GuestEmail string `json:"guest_email,omitempty"`
	GuestName  string `json:"guest_name,omitempty"`
	GuestPhone string `json:"guest_phone,omitempty"`

	ServiceID  int64 `json:"service_id" validate:"required"`
	StaffID    int64 `json:"staff_id" validate:"required"`
	TimeSlotID int64 `json:"time_slot_id" validate:"required"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Status    BookingStatus `json:"status"`
	Price     float64       `json:"price"`
	Notes     string        `json:"notes,omitempty" gorm:"type:text"`

	ConfirmationCode string     `json:"confirmation_code" gorm:"uniqueIndex:idx_bookings_confirmation_code;size:32"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	ReminderSent     bool       `json:"reminder_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Service  *Service  `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Staff    *Staff    `json:"staff,omitempty" gorm:"foreignKey:StaffID"`
	TimeSlot *TimeSlot `json:"time_slot,omitempty" gorm:"foreignKey:TimeSlotID"`
}

func (Booking) TableName() string { return "bookings" }

// ContactEmail returns the customer's email, falling back to the guest field.
func (b Booking) ContactEmail() string {
	if b.Customer != nil {
		return b.Customer.Email
	}
	return b.GuestEmail
}

// ContactName returns the customer's name, falling back to the guest fields.
func (b Booking) ContactName() string {
	if b.Customer != nil {
		if n := b.Customer.FullName(); n != "" {
			return n
		}
		return b.Customer.Email
	}
	if b.GuestName != "" {
		return b.GuestName
	}
	return b.GuestEmail
}
