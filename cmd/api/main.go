package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/kalobtand/table-reservations/internal/captcha"
	"github.com/kalobtand/table-reservations/internal/http/handlers"
	httpmw "github.com/kalobtand/table-reservations/internal/http/middleware"
	"github.com/kalobtand/table-reservations/internal/repo/postgres"
	"github.com/kalobtand/table-reservations/internal/repo/redisrepo"
	"github.com/kalobtand/table-reservations/internal/service"
	"github.com/kalobtand/table-reservations/internal/throttle"
	"github.com/kalobtand/table-reservations/internal/validate"
	"github.com/kalobtand/table-reservations/internal/whatsapp"
	"github.com/kalobtand/table-reservations/pkg/config"
	"github.com/kalobtand/table-reservations/pkg/database"
	"github.com/kalobtand/table-reservations/pkg/events"
	"github.com/kalobtand/table-reservations/pkg/logger"
	mw "github.com/kalobtand/table-reservations/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Redis is optional: without it the throttle runs in-process and
	// idempotency replay detection is disabled.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Error("Invalid Redis URL", "error", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	var bus events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		nb, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer nb.Close()
		bus = nb
	}

	var throttleStore throttle.Store = throttle.NewMemoryStore()
	var idemStore service.IdempotencyStore
	if redisClient != nil {
		throttleStore = throttle.NewRedisStore(redisClient, cfg.Throttle.Cooldown)
		idemStore = redisrepo.NewIdempotencyStore(redisClient, 24*time.Hour)
	}
	limiter := throttle.NewLimiter(throttleStore, cfg.Throttle.Cooldown)

	var gate captcha.Gate = captcha.PresenceGate{}
	if cfg.Captcha.Secret != "" {
		gate = captcha.NewTurnstileGate(cfg.Captcha.Secret, cfg.Captcha.VerifyURL)
	} else {
		logger.Warn("Turnstile secret not configured, captcha tokens are presence-checked only")
	}

	repo := postgres.NewBookingRepo(pool)
	bookingSvc := service.NewBookingService(repo, gate, limiter, validate.New(), idemStore, bus)
	adminSvc := service.NewAdminService(repo, bus, cfg.Auth.LoginPath)
	links := whatsapp.NewLinkBuilder(cfg.Restaurant.WhatsAppNumber, cfg.Restaurant.Name)

	bh := handlers.NewBookingsHandler(bookingSvc, links)
	ah := handlers.NewAdminHandler(adminSvc)
	lh := handlers.NewAuthHandler(cfg.Auth)
	ph := handlers.NewPublicHandler()

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Client-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/menu", ph.Menu)
	r.Get("/slots", ph.Slots)
	r.Post("/bookings", bh.Create)
	r.Post("/auth/login", lh.Login)

	r.Route("/admin/bookings", func(r chi.Router) {
		r.Use(httpmw.RequireAdmin(cfg.Auth.JWTSecret, cfg.Auth.LoginPath))
		r.Get("/", ah.List)
		r.Get("/stats", ah.Stats)
		r.Patch("/{id}/status", ah.UpdateStatus)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down reservations service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Reservations service shutdown error", "error", err)
		}
	}()

	logger.Info("Starting reservations service", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Reservations service error", "error", err)
		os.Exit(1)
	}
}
