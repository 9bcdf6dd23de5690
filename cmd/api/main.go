package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"salonbooking/internal/config"
	"salonbooking/internal/database"
	"salonbooking/internal/domain"
	"salonbooking/internal/middleware"
	"salonbooking/internal/modules/auth"
	"salonbooking/internal/modules/booking"
	"salonbooking/internal/modules/catalog"
	"salonbooking/internal/modules/schedule"
	"salonbooking/internal/notify"
	jwtsvc "salonbooking/internal/pkg/jwt"
	"salonbooking/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.Customer{},
		&domain.Service{},
		&domain.Staff{},
		&domain.TimeSlot{},
		&domain.Booking{},
		&domain.PhoneVerification{},
		&domain.EmailVerification{},
		&domain.OpeningHour{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	customerRepo := repository.NewCustomerRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	hourRepo := repository.NewOpeningHourRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	mailer, sms := notificationBackends(cfg)
	dispatcher := notify.NewDispatcher(mailer, sms)

	authService := auth.NewService(customerRepo, verificationRepo, j, mailer, sms,
		cfg.VerificationCodePepper, cfg.VerifyCodeTTL)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(serviceRepo, staffRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	scheduleService := schedule.NewService(slotRepo, staffRepo, hourRepo)
	scheduleHandler := schedule.NewHandler(scheduleService, cfg.BookingWindowDays)

	bookingService := booking.NewService(bookingRepo, serviceRepo, staffRepo, slotRepo, customerRepo, dispatcher)
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public, with optional identity for guest-or-customer booking
		public := v1.Group("/")
		public.Use(middleware.OptionalAuth(j))
		{
			authHandler.RegisterPublicRoutes(public)
			catalogHandler.RegisterRoutes(public)
			scheduleHandler.RegisterRoutes(public)
			bookingHandler.RegisterRoutes(public)
		}

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterCustomerRoutes(protected)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAuth(j), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(admin)
			scheduleHandler.RegisterAdminRoutes(admin)
			bookingHandler.RegisterAdminRoutes(admin)
		}
	}

	log.Println("Listening on", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func notificationBackends(cfg *config.Config) (notify.Mailer, notify.SMSSender) {
	var mailer notify.Mailer = notify.NewConsoleMailer()
	if cfg.EmailBackend == "api" {
		mailer = notify.NewAPIMailer(cfg.EmailAPIKey, cfg.EmailAPIURL, cfg.EmailFrom, cfg.EmailFromName)
	}

	var sms notify.SMSSender = notify.NewConsoleSMS()
	if cfg.SMSBackend == "api" {
		sms = notify.NewAPISMS(cfg.SMSAPIKey, cfg.SMSAPIURL, cfg.SMSFromNumber)
	}
	return mailer, sms
}
