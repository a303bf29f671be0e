package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"tickethub/internal/config"
	"tickethub/internal/database"
	"tickethub/internal/handlers"
	"tickethub/internal/middleware"
	"tickethub/internal/repositories"
	"tickethub/internal/services"
	"tickethub/internal/utils"
)

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
	log.Println("Database connection established")

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if cfg.Session.Secret == "" {
		secret, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatal("Failed to generate session key:", err)
		}
		cfg.Session.Secret = secret
		log.Println("SESSION_SECRET not set; using an ephemeral session key, existing sessions will not survive a restart")
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	cartRepo := repositories.NewCartRepository(db.DB)
	ticketRepo := repositories.NewTicketRepository(db.DB)
	checkoutRepo := repositories.NewCheckoutRepository(db.DB)

	// Services
	authService := services.NewAuthService(userRepo)
	eventService := services.NewEventService(eventRepo)
	cartService := services.NewCartService(cartRepo, eventRepo)
	checkoutService := services.NewCheckoutService(checkoutRepo)
	ticketService := services.NewTicketService(ticketRepo, cfg.App.ScanBaseURL)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, sessionStore)
	publicHandler := handlers.NewPublicHandler(eventService)
	cartHandler := handlers.NewCartHandler(cartService, checkoutService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	organizerHandler := handlers.NewOrganizerHandler(eventService, ticketService)

	authMiddleware := middleware.NewAuthMiddleware(authService, sessionStore)

	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(authMiddleware.LoadUser)

	// Public routes
	r.Get("/", publicHandler.ListEvents)
	r.Get("/events/{id}", publicHandler.EventDetail)
	r.Post("/signup", authHandler.Signup)
	r.Post("/signin", authHandler.Signin)
	r.Post("/signout", authHandler.Signout)
	r.Get("/scan/{code}", ticketHandler.Scan)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Post("/events/{id}/cart", cartHandler.AddToCart)
		r.Get("/cart", cartHandler.ViewCart)
		r.Delete("/cart/{lineID}", cartHandler.RemoveFromCart)
		r.Post("/cart/checkout", cartHandler.Checkout)

		r.Get("/my-tickets", ticketHandler.MyTickets)
		r.Get("/tickets/history", ticketHandler.History)

		r.Get("/profile", authHandler.Profile)
		r.Post("/profile/password", authHandler.UpdatePassword)
	})

	// Organizer routes
	r.Route("/organizer", func(r chi.Router) {
		r.Use(authMiddleware.RequireOrganizer)

		r.Get("/dashboard", organizerHandler.Dashboard)
		r.Get("/events", organizerHandler.ListMyEvents)
		r.Post("/events", organizerHandler.CreateEvent)
		r.Get("/events/{id}", organizerHandler.GetEvent)
		r.Get("/events/{id}/tickets", organizerHandler.EventTickets)
		r.Put("/events/{id}", organizerHandler.UpdateEvent)
		r.Delete("/events/{id}", organizerHandler.DeleteEvent)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
