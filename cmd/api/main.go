package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/SamSantos7/irland-casa-estudantes/internal/http/handlers"
	"github.com/SamSantos7/irland-casa-estudantes/internal/notify"
	"github.com/SamSantos7/irland-casa-estudantes/internal/platform/cache"
	"github.com/SamSantos7/irland-casa-estudantes/internal/platform/mailer"
	"github.com/SamSantos7/irland-casa-estudantes/internal/platform/payments"
	"github.com/SamSantos7/irland-casa-estudantes/internal/platform/storage"
	"github.com/SamSantos7/irland-casa-estudantes/internal/repo/postgres"
	"github.com/SamSantos7/irland-casa-estudantes/internal/service"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/config"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/database"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/events"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
	mw "github.com/SamSantos7/irland-casa-estudantes/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Connect to Redis. The API still serves without it: idempotency
	// replay, catalog caching and rate limiting just switch off.
	redisClient, err := cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn("Redis unavailable, caching and idempotency disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// File storage for uploaded documents
	store, err := storage.NewFSStore(cfg.Storage.Root, cfg.Storage.BaseURL)
	if err != nil {
		logger.Error("Failed to initialize file storage", "error", err)
		os.Exit(1)
	}

	// Outbound email
	var mailSvc mailer.Service
	if cfg.Email.DevMode || cfg.Email.MailerSendKey == "" {
		logger.Info("Email dev mode enabled, messages will be logged")
		mailSvc = mailer.NewDevMailer()
	} else {
		mailSvc = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	stripeClient := payments.NewStripeClient(cfg.Stripe.SecretKey)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewSetupTokenRepository(pool)
	accommodationRepo := postgres.NewAccommodationRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)

	// Initialize services
	identitySvc := service.NewIdentityService(userRepo, tokenRepo, eventBus, cfg)
	reservationSvc := service.NewReservationService(reservationRepo, accommodationRepo, identitySvc, eventBus)
	catalogSvc := service.NewCatalogService(accommodationRepo, redisClient)
	documentSvc := service.NewDocumentService(documentRepo, eventBus)
	paymentSvc := service.NewPaymentService(paymentRepo, reservationRepo, userRepo, stripeClient, eventBus)
	contactSvc := service.NewContactService(contactRepo, eventBus)

	// Email worker consumes events off the bus
	worker := notify.NewWorker(eventBus, mailSvc, cfg)
	if err := worker.Start(); err != nil {
		logger.Error("Failed to start notify worker", "error", err)
		os.Exit(1)
	}

	var rateLimiter *cache.RateLimiter
	if redisClient != nil {
		rateLimiter = cache.NewRateLimiter(redisClient, 10, time.Minute)
	}

	// Initialize handlers
	h := handlers.New(reservationSvc, identitySvc, catalogSvc, documentSvc, paymentSvc, contactSvc, store, rateLimiter, cfg)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.CORS([]string{cfg.App.SiteURL}))
	r.Use(mw.Health)

	// Routes
	r.Route("/", func(r chi.Router) {
		// Public catalog and contact
		r.Get("/accommodations", h.ListAccommodations)
		r.Get("/accommodations/{id}", h.GetAccommodation)
		r.With(h.RateLimit).Post("/contact", h.SubmitContact)

		// Reservation wizard
		r.Post("/uploads", h.Upload)
		r.Post("/reservations/validate", h.ValidateDraft)
		if redisClient != nil {
			r.With(mw.Idempotency(cache.NewIdempotencyStore(redisClient))).Post("/reservations", h.SubmitReservation)
		} else {
			r.Post("/reservations", h.SubmitReservation)
		}

		// Auth
		r.Post("/auth/login", h.Login)
		r.Post("/auth/password", h.SetPassword)
		r.With(h.RequireJWT("")).Get("/auth/session", h.Session)

		// Client dashboard (require client JWT)
		r.Route("/client", func(r chi.Router) {
			r.Use(h.RequireJWT("client"))
			r.Get("/reservations", h.ListMyReservations)
			r.Get("/documents", h.ListMyDocuments)
		})

		// Admin routes (require admin JWT)
		r.Route("/admin", func(r chi.Router) {
			r.Use(h.RequireJWT("admin"))

			r.Get("/accommodations", h.AdminListAccommodations)
			r.Post("/accommodations", h.AdminCreateAccommodation)
			r.Patch("/accommodations/{id}", h.AdminUpdateAccommodation)
			r.Delete("/accommodations/{id}", h.AdminDeleteAccommodation)

			r.Get("/reservations", h.AdminListReservations)
			r.Get("/reservations/{id}", h.AdminGetReservation)
			r.Patch("/reservations/{id}", h.AdminUpdateReservation)
			r.Post("/reservations/{id}/cancel", h.AdminCancelReservation)
			r.Post("/reservations/{id}/payment-intent", h.AdminCreatePaymentIntent)

			r.Get("/documents", h.AdminListDocuments)
			r.Get("/documents/{id}", h.AdminGetDocument)
			r.Patch("/documents/{id}", h.AdminReviewDocument)

			r.Get("/payments", h.AdminListPayments)
			r.Get("/payments/{id}", h.AdminGetPayment)
			r.Patch("/payments/{id}", h.AdminUpdatePaymentStatus)

			r.Get("/users", h.AdminListUsers)
			r.Get("/users/{id}", h.AdminGetUser)
			r.Patch("/users/{id}", h.AdminUpdateUser)
			r.Delete("/users/{id}", h.AdminDeleteUser)

			r.Get("/contacts", h.AdminListContacts)
		})

		// Uploaded files
		fileServer := http.StripPrefix("/files/", http.FileServer(http.Dir(store.Root())))
		r.Get("/files/*", fileServer.ServeHTTP)
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("API shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}
