package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the application.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	// Allowed origins for the React client. Comma-separated in CORS_ORIGINS.
	CORSOrigins []string

	// S3-compatible media storage (team crests, venue photos).
	// Optional: uploads are disabled when the bucket is not configured.
	MediaAccountID       string
	MediaAccessKeyID     string
	MediaSecretAccessKey string
	MediaBucketName      string
	MediaPublicBaseURL   string
}

// Load reads configuration from environment variables.
// A .env file is loaded first if present; its absence is not an error.
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

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := &Config{
		DatabaseURL:          dbURL,
		JWTSecretKey:         jwtKey,
		ServerPort:           port,
		CORSOrigins:          origins,
		MediaAccountID:       os.Getenv("MEDIA_ACCOUNT_ID"),
		MediaAccessKeyID:     os.Getenv("MEDIA_ACCESS_KEY_ID"),
		MediaSecretAccessKey: os.Getenv("MEDIA_SECRET_ACCESS_KEY"),
		MediaBucketName:      os.Getenv("MEDIA_BUCKET_NAME"),
		MediaPublicBaseURL:   os.Getenv("MEDIA_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

// MediaEnabled reports whether the media storage credentials are configured.
func (c *Config) MediaEnabled() bool {
	return c.MediaBucketName != "" && c.MediaAccessKeyID != "" && c.MediaSecretAccessKey != ""
}
