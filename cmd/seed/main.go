package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"salonbooking/internal/config"
	"salonbooking/internal/database"
	"salonbooking/internal/domain"
	"salonbooking/internal/modules/schedule"
	"salonbooking/internal/repository"
)

// Seeds a demo salon: an admin account, a small catalog, opening hours and
// two weeks of generated slots. Safe to re-run; existing rows are updated.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
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

	ctx := context.Background()

	// Admin account.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	admin := domain.Customer{
		Email:              "admin@salon.local",
		PasswordHash:       string(hash),
		Role:               domain.RoleAdmin,
		FirstName:          "Salon",
		LastName:           "Admin",
		EmailVerified:      true,
		EmailNotifications: true,
		SMSNotifications:   true,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "password_hash"}),
	}).Create(&admin).Error; err != nil {
		log.Fatal("seed admin:", err)
	}

	// Catalog.
	services := []domain.Service{
		{Name: "Haircut", Slug: "haircut", ShortDescription: "Wash, cut and style", DurationMinutes: 45, Price: 50, IsActive: true, DisplayOrder: 1},
		{Name: "Hair Coloring", Slug: "hair-coloring", ShortDescription: "Full color treatment", DurationMinutes: 90, Price: 120, IsActive: true, DisplayOrder: 2},
		{Name: "Manicure", Slug: "manicure", ShortDescription: "Classic manicure", DurationMinutes: 30, Price: 35, IsActive: true, DisplayOrder: 3},
		{Name: "Facial", Slug: "facial", ShortDescription: "Deep cleansing facial", DurationMinutes: 60, Price: 80, IsActive: true, DisplayOrder: 4},
	}
	for i := range services {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "duration_minutes", "price", "is_active", "display_order"}),
		}).Create(&services[i]).Error; err != nil {
			log.Fatal("seed services:", err)
		}
	}

	staff := []domain.Staff{
		{FirstName: "John", LastName: "Doe", Slug: "john-doe", Bio: "Senior stylist, 10 years of cutting and coloring.", IsActive: true, DisplayOrder: 1},
		{FirstName: "Maria", LastName: "Lopez", Slug: "maria-lopez", Bio: "Nail and skincare specialist.", IsActive: true, DisplayOrder: 2},
	}
	for i := range staff {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "is_active", "display_order"}),
		}).Create(&staff[i]).Error; err != nil {
			log.Fatal("seed staff:", err)
		}
	}

	// John cuts and colors, Maria does nails and facials.
	assignments := map[string][]string{
		"john-doe":    {"haircut", "hair-coloring"},
		"maria-lopez": {"manicure", "facial"},
	}
	for staffSlug, serviceSlugs := range assignments {
		var st domain.Staff
		if err := db.Where("slug = ?", staffSlug).First(&st).Error; err != nil {
			log.Fatal(err)
		}
		var svcs []domain.Service
		if err := db.Where("slug IN ?", serviceSlugs).Find(&svcs).Error; err != nil {
			log.Fatal(err)
		}
		if err := db.Model(&st).Association("Services").Replace(svcs); err != nil {
			log.Fatal("seed staff services:", err)
		}
	}

	// Opening hours: Mon-Fri 09:00-18:00, Sat 10:00-16:00, Sun closed.
	hourRepo := repository.NewOpeningHourRepository(db)
	for weekday := 0; weekday <= 6; weekday++ {
		h := domain.OpeningHour{Weekday: weekday, StartTime: "09:00", EndTime: "18:00"}
		switch weekday {
		case 5:
			h.StartTime, h.EndTime = "10:00", "16:00"
		case 6:
			h.IsClosed = true
		}
		if err := hourRepo.Upsert(ctx, &h); err != nil {
			log.Fatal("seed opening hours:", err)
		}
	}

	// Two weeks of hour-long slots for every active staff member.
	slotRepo := repository.NewTimeSlotRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	scheduleService := schedule.NewService(slotRepo, staffRepo, hourRepo)

	created, err := scheduleService.GenerateSlots(ctx, schedule.GenerateSlotsRequest{
		FromDate:    time.Now().Format("2006-01-02"),
		ToDate:      time.Now().AddDate(0, 0, 13).Format("2006-01-02"),
		SlotMinutes: 60,
		Capacity:    1,
	})
	if err != nil {
		log.Fatal("seed slots:", err)
	}

	log.Printf("Seed complete: %d services, %d staff, %d new slots", len(services), len(staff), created)
}
