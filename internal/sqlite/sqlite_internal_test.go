package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/testhelpers"
)

func newTestDatabase(t *testing.T, url string) *Database {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	db, err := NewDatabase(ctx, url, testhelpers.NewLogger(testhelpers.NewWriter(t)))
	if err != nil {
		cancel()
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		if err = db.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return db
}

func TestNewDatabase_InMemory(t *testing.T) {
	db := newTestDatabase(t, ":memory:")
	ctx := t.Context()

	var version int
	if err := db.ReadOnly.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("query user_version: %v", err)
	}
	if version != schemaVersion {
		t.Errorf("user_version = %d, want %d", version, schemaVersion)
	}

	if _, err := db.ReadWrite.ExecContext(ctx,
		`INSERT INTO user_profiles (id, goal, equipment) VALUES ('65a1b2c3d4e5f60718293a4b', 'strength', '[]')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var goal string
	if err := db.ReadOnly.QueryRowContext(ctx,
		`SELECT goal FROM user_profiles WHERE id = '65a1b2c3d4e5f60718293a4b'`).Scan(&goal); err != nil {
		t.Fatalf("read back through the read-only pool: %v", err)
	}
	if goal != "strength" {
		t.Errorf("goal = %q, want strength", goal)
	}

	if _, err := db.ReadOnly.ExecContext(ctx, `DELETE FROM user_profiles`); err == nil {
		t.Errorf("read-only pool accepted a write")
	}
}

func TestNewDatabase_Constraints(t *testing.T) {
	db := newTestDatabase(t, ":memory:")
	tests := []struct {
		name  string
		query string
	}{
		{name: "short id", query: `INSERT INTO user_profiles (id) VALUES ('abc')`},
		{name: "invalid equipment json", query: `INSERT INTO user_profiles (id, equipment) VALUES ('65a1b2c3d4e5f60718293a4b', 'barbell')`},
		{name: "invalid plan json", query: `INSERT INTO user_profiles (id, workout_plan) VALUES ('65a1b2c3d4e5f60718293a4b', '{')`},
		{name: "strict typing", query: `INSERT INTO user_profiles (id, available_days) VALUES ('65a1b2c3d4e5f60718293a4b', 'three')`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.ReadWrite.ExecContext(t.Context(), tt.query); err == nil {
				t.Errorf("expected constraint violation")
			}
		})
	}
}

func TestNewDatabase_ReopenFile(t *testing.T) {
	url := filepath.Join(t.TempDir(), "workoutdb.sqlite3")

	first := newTestDatabase(t, url)
	if _, err := first.ReadWrite.ExecContext(t.Context(),
		`INSERT INTO user_profiles (id) VALUES ('65a1b2c3d4e5f60718293a4b')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// A second open must not re-apply the schema or lose data.
	second := newTestDatabase(t, url)
	var count int
	if err := second.ReadOnly.QueryRowContext(t.Context(), `SELECT count(*) FROM user_profiles`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d profiles, want 1", count)
	}
}
