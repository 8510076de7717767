package shared

import (
	"database/sql"
	"testing"
)

func openMigratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("failed to load migrations: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected at least one migration")
	}

	for i, m := range migrations {
		if i > 0 && m.Version <= migrations[i-1].Version {
			t.Errorf("migrations not sorted at index %d: %d after %d", i, m.Version, migrations[i-1].Version)
		}
		if m.Up == "" || m.Down == "" {
			t.Errorf("migration %d is missing up or down SQL", m.Version)
		}
	}
}

func TestRunMigrations(t *testing.T) {
	db := openMigratedDB(t)

	// The run-history schema must be usable, not just present.
	_, err := db.Exec(
		"INSERT INTO runs (id, source_file, playlist_id, playlist_name, started_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)",
		"run-1", "songs.csv", "PL1", "Mix")
	if err != nil {
		t.Errorf("expected runs table to accept inserts: %v", err)
	}
	_, err = db.Exec(
		"INSERT INTO run_outcomes (run_id, input_title, status) VALUES (?, ?, ?)",
		"run-1", "Imagine", "added")
	if err != nil {
		t.Errorf("expected run_outcomes table to accept inserts: %v", err)
	}

	// Running again must be a no-op.
	if err := RunMigrations(db); err != nil {
		t.Fatalf("expected rerun to be idempotent: %v", err)
	}

	migrations, _ := loadMigrations()
	var applied int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("failed to query schema_migrations: %v", err)
	}
	if applied != len(migrations) {
		t.Errorf("expected %d applied migrations, got %d", len(migrations), applied)
	}
}

func TestRollbackMigration(t *testing.T) {
	db := openMigratedDB(t)

	var before int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&before); err != nil {
		t.Fatalf("failed to query schema_migrations: %v", err)
	}

	if err := RollbackMigration(db); err != nil {
		t.Fatalf("failed to rollback: %v", err)
	}

	var after int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&after); err != nil {
		t.Fatalf("failed to query schema_migrations after rollback: %v", err)
	}
	if after != before-1 {
		t.Errorf("expected %d applied migrations after rollback, got %d", before-1, after)
	}

	if _, err := db.Exec("SELECT 1 FROM runs LIMIT 1"); err == nil {
		t.Error("expected runs table to be dropped by rollback")
	}
}
