package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking_booking/internal/api"
	"parking_booking/internal/api/handler"
	"parking_booking/internal/api/middleware"
	"parking_booking/internal/config"
	"parking_booking/internal/repository/postgresql"
	"parking_booking/internal/service"

	"github.com/pressly/goose/v3"
	"github.com/robfig/cron/v3"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Setup Database Connection
	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established.")

	// 3. Run Migrations
	if err := goose.Up(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Could not apply migrations: %v", err)
	}
	log.Println("Migrations applied.")

	// 4. Initialize Repositories
	userRepo := postgresql.NewPgUserRepository(db)
	areaRepo := postgresql.NewPgParkingAreaRepository(db)
	slotRepo := postgresql.NewPgSlotRepository(db)
	bookingRepo := postgresql.NewPgBookingRepository(db)
	reservationStore := postgresql.NewPgReservationStore(db)
	auditRepo := postgresql.NewPgInventoryAuditRepository(db)

	// 5. Start WebSocket Manager
	webSocketManager := handler.NewWebSocketManager()
	go webSocketManager.Start()
	log.Println("WebSocket manager started.")

	// 6. Initialize SMS Notifier
	var notifier service.BookingNotifier
	if cfg.TwilioAccountSid != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		notifier = service.NewTwilioNotifier(cfg.TwilioAccountSid, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
		log.Println("Twilio SMS notifier enabled.")
	} else {
		log.Println("WARNING: Twilio credentials not configured. SMS notifications disabled.")
	}

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration)
	reservationService := service.NewReservationService(areaRepo, slotRepo, bookingRepo,
		reservationStore, notifier, webSocketManager)
	reconcileService := service.NewReconcileService(auditRepo)

	// 8. Initialize Auth Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// 9. Schedule Inventory Reconciliation
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReconcileSchedule, reconcileService.RunScheduled); err != nil {
		log.Fatalf("Could not schedule inventory reconciliation: %v", err)
	}
	scheduler.Start()
	log.Printf("Inventory reconciliation scheduled: %s", cfg.ReconcileSchedule)

	// 10. Setup HTTP Router
	router := api.SetupRouter(authService, reservationService, reconcileService, authMiddleware, webSocketManager)

	// 11. Start HTTP Server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe() error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cronCtx := scheduler.Stop()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shut down: %v", err)
	}

	select {
	case <-cronCtx.Done():
	case <-time.After(5 * time.Second):
		log.Println("Reconciliation job did not stop within timeout.")
	}

	log.Println("Server stopped.")
}
