package notify

import (
	"context"
	"fmt"
	"log"

	"salonbooking/internal/domain"
)

// Dispatcher routes booking notifications to the configured email and SMS
// backends. All the "prefer customer contact, fall back to guest, honor
// preference flags" branching lives here so the lifecycle operations share it.
type Dispatcher struct {
	mailer Mailer
	sms    SMSSender
}

func NewDispatcher(mailer Mailer, sms SMSSender) *Dispatcher {
	return &Dispatcher{mailer: mailer, sms: sms}
}

// RecipientFor resolves the contact for a booking.
func RecipientFor(b *domain.Booking) Recipient {
	if b.Customer != nil {
		return Recipient{
			Email:      b.Customer.Email,
			Name:       b.ContactName(),
			Phone:      b.Customer.Phone,
			AllowEmail: b.Customer.EmailNotifications,
			AllowSMS:   b.Customer.SMSNotifications && b.Customer.Phone != "",
		}
	}
	return Recipient{
		Email:      b.GuestEmail,
		Name:       b.ContactName(),
		Phone:      b.GuestPhone,
		AllowEmail: b.GuestEmail != "",
		AllowSMS:   b.GuestPhone != "",
	}
}

// BookingConfirmed sends the confirmation message on both channels.
func (d *Dispatcher) BookingConfirmed(ctx context.Context, b *domain.Booking) Result {
	sms := fmt.Sprintf(
		"Booking confirmed! %s with %s on %s. Confirmation: %s",
		serviceName(b), staffName(b), b.StartTime.Format("Jan 2 at 3:04 PM"), b.ConfirmationCode,
	)
	return d.dispatch(ctx, b, "Booking Confirmation", "booking_confirmation", sms)
}

// BookingCanceled sends the cancellation message on both channels.
func (d *Dispatcher) BookingCanceled(ctx context.Context, b *domain.Booking) Result {
	sms := fmt.Sprintf(
		"Your booking for %s on %s has been canceled.",
		serviceName(b), b.StartTime.Format("Jan 2 at 3:04 PM"),
	)
	return d.dispatch(ctx, b, "Booking Canceled", "booking_cancellation", sms)
}

// BookingReminder sends the day-before reminder on both channels.
func (d *Dispatcher) BookingReminder(ctx context.Context, b *domain.Booking) Result {
	sms := fmt.Sprintf(
		"Reminder: %s appointment at %s with %s.",
		serviceName(b), b.StartTime.Format("3:04 PM"), staffName(b),
	)
	return d.dispatch(ctx, b, "Appointment Reminder", "booking_reminder", sms)
}

func (d *Dispatcher) dispatch(ctx context.Context, b *domain.Booking, subject, template, smsText string) Result {
	rcpt := RecipientFor(b)

	data := map[string]string{
		"customer_name":     rcpt.Name,
		"service":           serviceName(b),
		"staff":             staffName(b),
		"start_time":        b.StartTime.Format("Jan 2, 2006 3:04 PM"),
		"confirmation_code": b.ConfirmationCode,
	}

	var res Result
	if rcpt.AllowEmail && rcpt.Email != "" {
		res.EmailSent = d.mailer.SendEmail(ctx, []string{rcpt.Email}, subject, template, data)
	}
	if rcpt.AllowSMS && rcpt.Phone != "" {
		res.SMSSent = d.sms.SendSMS(ctx, rcpt.Phone, smsText)
	}

	if !res.Delivered() {
		log.Printf("notify: no channel delivered booking=%d template=%s email=%q phone=%q",
			b.ID, template, rcpt.Email, rcpt.Phone)
	}
	return res
}

func serviceName(b *domain.Booking) string {
	if b.Service != nil {
		return b.Service.Name
	}
	return "your appointment"
}

func staffName(b *domain.Booking) string {
	if b.Staff != nil {
		return b.Staff.FullName()
	}
	return "our staff"
}
