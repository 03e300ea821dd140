package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petmatch-backend/internal/config"
	"petmatch-backend/internal/handlers"
	"petmatch-backend/internal/middleware"
	"petmatch-backend/internal/repository"
	"petmatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	// Initialize services
	tokenTTL := time.Duration(cfg.JWT.TTLHours) * time.Hour
	userService := services.NewUserService(userRepo, cfg.JWT.Secret, tokenTTL)
	petService := services.NewPetService(petRepo, userRepo)
	matchService := services.NewMatchService(matchRepo, petRepo, userRepo)
	bookingService := services.NewBookingService(bookingRepo, petRepo, userRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, petRepo, userRepo)
	wsHub := services.NewWSHub()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(userService, tokenTTL)
	petHandler := handlers.NewPetHandler(petService, userService)
	matchHandler := handlers.NewMatchHandler(matchService, wsHub)
	bookingHandler := handlers.NewBookingHandler(bookingService, wsHub)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, wsHub)
	wsHandler := handlers.NewWebSocketHandler(wsHub, userService, matchService)

	// Setup router
	r := newRouter(cfg.CORS.AllowedOrigin, userService,
		userHandler, authHandler, petHandler, matchHandler,
		bookingHandler, appointmentHandler, wsHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newRouter builds the route tree. Paths are served unprefixed; the
// frontend calls them directly.
func newRouter(
	allowedOrigin string,
	userService *services.UserService,
	userHandler *handlers.UserHandler,
	authHandler *handlers.AuthHandler,
	petHandler *handlers.PetHandler,
	matchHandler *handlers.MatchHandler,
	bookingHandler *handlers.BookingHandler,
	appointmentHandler *handlers.AppointmentHandler,
	wsHandler *handlers.WebSocketHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware(allowedOrigin))

	// Public routes
	r.Post("/users", userHandler.CreateUser)
	r.Get("/users/exists", userHandler.CheckExists)
	r.Get("/users/{userID}", userHandler.GetUser)
	r.Get("/users/username/{username}", userHandler.GetUserByUsername)
	r.Post("/auth/verify", authHandler.Verify)
	r.Post("/auth/validate-token", authHandler.ValidateToken)
	r.Post("/auth/logout", authHandler.Logout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(userService))

		r.Get("/auth/session", authHandler.Session)
		r.Patch("/users/{userID}", userHandler.UpdateUser)

		r.Post("/pets", petHandler.CreatePet)
		r.Patch("/pets/{petID}", petHandler.UpdatePet)
		r.Get("/pets/match", petHandler.MatchFeed)
		r.Get("/pets/owner/{username}", petHandler.ListPetsByOwnerUsername)
		r.Get("/users/{userID}/pets", petHandler.ListUserPets)

		r.Post("/matches/request", matchHandler.Create)
		r.Get("/matches/received/{username}", matchHandler.Received)
		r.Post("/matches/{matchID}/respond/by-username", matchHandler.Respond)
		r.Get("/matches/options/{petID}", matchHandler.Options)

		r.Post("/sittings/request", bookingHandler.Create)
		r.Post("/sittings/{bookingID}/respond/by-username", bookingHandler.Respond)
		r.Post("/sittings/{bookingID}/cancel", bookingHandler.Cancel)
		r.Get("/sittings/received/{username}", bookingHandler.Received)
		r.Get("/sittings/owner/{username}", bookingHandler.Owned)

		r.Post("/appointments", appointmentHandler.Create)
		r.Post("/appointments/{appointmentID}/respond/by-username", appointmentHandler.Respond)
		r.Post("/appointments/{appointmentID}/cancel", appointmentHandler.Cancel)
		r.Get("/appointments/vet/{username}", appointmentHandler.ForVet)
		r.Get("/appointments/owner/{username}", appointmentHandler.ForOwner)
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	return r
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS. The frontend sends cookies, so the
// allowed origin must be exact and credentials enabled.
func corsMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
