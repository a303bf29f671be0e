package main

import (
	"log"
	"time"

	"tickethub/internal/config"
	"tickethub/internal/database"
	"tickethub/internal/models"
	"tickethub/internal/repositories"
	"tickethub/internal/services"
)

// Seeds a demo organizer plus a handful of events for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repositories.NewUserRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	authService := services.NewAuthService(userRepo)

	organizer, err := authService.Signup(&models.SignupRequest{
		Email:    "organizer@example.com",
		Password: "organizer-password",
		Role:     models.RoleOrganizer,
	})
	if err != nil {
		// Reuse the account if seeding ran before
		organizer, err = userRepo.GetByEmail("organizer@example.com")
		if err != nil {
			log.Fatal("Failed to create or load organizer:", err)
		}
	}

	events := []*models.EventCreateRequest{
		{
			Title:            "Tech Conference 2026",
			Description:      "A full day of talks from industry practitioners.",
			Location:         "Bangkok",
			Category:         "conference",
			Price:            250000,
			AvailableTickets: 500,
			StartsAt:         time.Now().AddDate(0, 1, 0),
		},
		{
			Title:            "Indie Music Night",
			Description:      "Local bands, open air, bring a blanket.",
			Location:         "Chiang Mai",
			Category:         "music",
			Price:            45000,
			AvailableTickets: 200,
			StartsAt:         time.Now().AddDate(0, 0, 14),
		},
		{
			Title:            "Weekend Food Market",
			Description:      "Street food from forty vendors.",
			Location:         "Bangkok",
			Category:         "food",
			Price:            0,
			AvailableTickets: 1000,
			StartsAt:         time.Now().AddDate(0, 0, 7),
		},
	}

	for _, req := range events {
		event, err := eventRepo.Create(organizer.ID, req)
		if err != nil {
			log.Printf("Failed to seed event %q: %v", req.Title, err)
			continue
		}
		log.Printf("Seeded event %d: %s", event.ID, event.Title)
	}
}
