package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the application.
type Config struct {
	DatabaseURL  string
	ServerPort   int
	JWTSecretKey string

	// Coach access: fixed e-mail allow-list plus one bcrypt hash of the
	// shared dashboard access code.
	CoachEmails         []string
	CoachAccessCodeHash string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3BucketName       string
	UploadURLExpiry    time.Duration
	DownloadURLExpiry  time.Duration

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables, with an optional .env
// file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	coachEmails := splitList(os.Getenv("COACH_EMAILS"))
	if len(coachEmails) == 0 {
		return nil, fmt.Errorf("COACH_EMAILS environment variable is not set")
	}

	accessCodeHash := os.Getenv("COACH_ACCESS_CODE_HASH")
	if accessCodeHash == "" {
		return nil, fmt.Errorf("COACH_ACCESS_CODE_HASH environment variable is not set")
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	uploadExpiry, err := intEnv("UPLOAD_URL_EXPIRATION", 900)
	if err != nil {
		return nil, err
	}
	downloadExpiry, err := intEnv("DOWNLOAD_URL_EXPIRATION", 300)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:         dbURL,
		ServerPort:          port,
		JWTSecretKey:        jwtKey,
		CoachEmails:         coachEmails,
		CoachAccessCodeHash: accessCodeHash,
		AWSRegion:           os.Getenv("AWS_REGION"),
		AWSAccessKeyID:      os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:  os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3BucketName:        os.Getenv("AWS_S3_BUCKET_NAME"),
		UploadURLExpiry:     time.Duration(uploadExpiry) * time.Second,
		DownloadURLExpiry:   time.Duration(downloadExpiry) * time.Second,
		CORSAllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	return cfg, nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
