package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// setupTestDB connects to TEST_DATABASE_URL (or DATABASE_URL). Tests that
// need Postgres skip when neither is set so the suite stays runnable offline.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL not set, skipping database test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	return pool
}

// testUserID returns a unique owner id so parallel runs don't collide, and
// registers cleanup of everything that owner created.
func testUserID(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	userID := fmt.Sprintf("user_test_%s", time.Now().Format("20060102150405.000000000"))

	t.Cleanup(func() {
		ctx := context.Background()
		if err := NewHabitService(pool).PurgeUserData(ctx, userID); err != nil {
			t.Logf("Warning: failed to cleanup test data: %v", err)
		}
		pool.Close()
	})

	return userID
}
