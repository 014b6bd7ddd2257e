package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// Connect opens a pooled database handle and verifies connectivity once.
func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Warn("failed to close database handle after ping error", slog.Any("error", closeErr))
		}
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

// ConnectWithRetry retries the connectivity check with exponential backoff,
// up to maxAttempts. Only the outer ping is retried; business operations are
// never re-run by this layer.
func ConnectWithRetry(dsn string, timeout time.Duration, maxAttempts int, logger *slog.Logger) (*sql.DB, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	backoff := time.Second
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := Connect(dsn, timeout)
		if err == nil {
			return db, nil
		}
		lastErr = err

		if attempt < maxAttempts {
			logger.Warn("database connection failed, retrying",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", maxAttempts),
				slog.Duration("backoff", backoff),
				slog.Any("error", err),
			)
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("database unreachable after %d attempts: %w", maxAttempts, lastErr)
}
