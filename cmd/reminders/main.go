package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"salonbooking/internal/config"
	"salonbooking/internal/database"
	"salonbooking/internal/modules/booking"
	"salonbooking/internal/notify"
	"salonbooking/internal/repository"
)

// One-shot maintenance binary, run from cron: sends reminders for confirmed
// bookings starting within the window and prunes expired verification codes.
func main() {
	window := flag.Duration("window", 24*time.Hour, "send reminders for bookings starting within this window")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var mailer notify.Mailer = notify.NewConsoleMailer()
	if cfg.EmailBackend == "api" {
		mailer = notify.NewAPIMailer(cfg.EmailAPIKey, cfg.EmailAPIURL, cfg.EmailFrom, cfg.EmailFromName)
	}
	var sms notify.SMSSender = notify.NewConsoleSMS()
	if cfg.SMSBackend == "api" {
		sms = notify.NewAPISMS(cfg.SMSAPIKey, cfg.SMSAPIURL, cfg.SMSFromNumber)
	}
	dispatcher := notify.NewDispatcher(mailer, sms)

	bookingRepo := repository.NewBookingRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	bookingService := booking.NewService(bookingRepo, serviceRepo, staffRepo, slotRepo, customerRepo, dispatcher)

	sent, err := bookingService.SendDueReminders(ctx, *window)
	if err != nil {
		log.Fatal("reminders:", err)
	}
	log.Printf("reminders sent: %d", sent)

	verificationRepo := repository.NewVerificationRepository(db)
	if err := verificationRepo.DeleteExpired(ctx); err != nil {
		log.Fatal("verification cleanup:", err)
	}
	log.Println("expired verification codes pruned")
}
