package booking

type CreateBookingRequest struct {
	ServiceID  int64  `json:"service_id" binding:"required"`
	StaffID    int64  `json:"staff_id" binding:"required"`
	TimeSlotID int64  `json:"time_slot_id" binding:"required"`
	Notes      string `json:"notes"`

	// Guest contact, used only when the request carries no authentication.
	GuestEmail string `json:"guest_email"`
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`
}
