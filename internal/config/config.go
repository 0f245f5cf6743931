package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost            string
	DBPort            int
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DBConnectAttempts int
	DBConnectDelay    time.Duration

	MigrationsDir string

	JWTSecret     string
	JWTExpiration time.Duration

	TwilioAccountSid string
	TwilioAuthToken  string
	TwilioFromNumber string

	ReconcileSchedule string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	connectAttempts, _ := strconv.Atoi(getEnv("DB_CONNECT_ATTEMPTS", "5"))
	connectDelaySec, _ := strconv.Atoi(getEnv("DB_CONNECT_DELAY_SECONDS", "1"))
	jwtExpHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            dbPort,
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "parking_booking"),
		DBSslMode:         getEnv("DB_SSLMODE", "disable"),
		DBConnectAttempts: connectAttempts,
		DBConnectDelay:    time.Duration(connectDelaySec) * time.Second,

		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiration: time.Duration(jwtExpHours) * time.Hour,

		TwilioAccountSid: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_FROM_NUMBER", ""),

		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", "@every 5m"),
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
