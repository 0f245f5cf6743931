package postgresql

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"parking_booking/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewDB opens the connection pool and verifies it with a bounded
// retry/backoff loop. Retrying happens at startup only; per-request store
// failures surface to the caller immediately, since retrying a reservation
// could double-allocate if the first attempt actually landed.
func NewDB(cfg *config.Config) (*sql.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode)

	db, err := sql.Open("pgx", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	delay := cfg.DBConnectDelay
	for attempt := 1; ; attempt++ {
		err = db.Ping()
		if err == nil {
			return db, nil
		}
		if attempt >= cfg.DBConnectAttempts {
			db.Close()
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempt, err)
		}
		log.Printf("Database ping failed (attempt %d/%d), retrying in %s: %v",
			attempt, cfg.DBConnectAttempts, delay, err)
		time.Sleep(delay)
		delay *= 2
	}
}
