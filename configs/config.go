package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// SMTP for claim lifecycle emails; empty host = log-only mode
	SMTPHost string
	SMTPPort string
	SMTPFrom string

	// Claim workflow knobs
	CodeTTL       time.Duration // verification code lifetime
	ClaimReapply  bool          // may a user re-claim after rejection
	RewardsTarget int           // points needed to redeem a free drink
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:      getEnv("DB_SOURCE", "teafinder.db"),
		Port:          getEnv("PORT", "8000"),
		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		JWTTTL:        time.Duration(24) * time.Hour,
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPFrom:      getEnv("SMTP_FROM", "no-reply@loadedteafinder.com"),
		CodeTTL:       time.Duration(getEnvInt("CODE_TTL_HOURS", 24)) * time.Hour,
		ClaimReapply:  getEnvBool("CLAIM_REAPPLY", true),
		RewardsTarget: getEnvInt("REWARDS_TARGET", 10),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// Helper for code that cannot run without a value (e.g. seed).
func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
