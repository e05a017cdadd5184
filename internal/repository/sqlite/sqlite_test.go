package sqlite

import (
	"context"
	"testing"

	"github.com/mlaurent/pantry-planner/internal/model"
)

// newTestDB returns a *DB backed by an in-memory SQLite database.
// Each call gets a fresh database — tests never see each other's data.
// t.Cleanup closes it when the test (and its subtests) finish.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(\":memory:\") error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	return db
}

// createTestUser seeds a user row. Articles, recipes, and week plans all
// carry a foreign key to users, so most tests need one.
func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$fakehashforrepositorytests",
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %q: %v", username, err)
	}
	return user
}
