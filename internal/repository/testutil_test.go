package repository_test

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pastime-app/backend/internal/db"
)

// setupTestDB opens an isolated in-memory SQLite DB with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	sqlDB, err := database.DB()
	if err == nil {
		t.Cleanup(func() { sqlDB.Close() })
	}
	return database
}

// seedUsers inserts n bare users with ids 1..n.
func seedUsers(t *testing.T, gdb *gorm.DB, n int) {
	t.Helper()
	users := make([]db.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, db.User{
			ID:       uint64(i),
			Email:    userEmail(i),
			Password: "x",
			Name:     userName(i),
		})
	}
	if err := gdb.Create(&users).Error; err != nil {
		t.Fatalf("failed to seed users: %v", err)
	}
}

func userEmail(i int) string { return fmt.Sprintf("user%d@test.com", i) }
func userName(i int) string  { return fmt.Sprintf("User %d", i) }
