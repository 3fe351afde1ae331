package database

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"postgres://u:p@localhost:5432/commons?sslmode=disable", "pgx5://u:p@localhost:5432/commons?sslmode=disable"},
		{"postgresql://localhost/commons", "pgx5://localhost/commons"},
		{"pgx5://localhost/commons", "pgx5://localhost/commons"},
	}

	for _, tc := range tests {
		if got := migrationURL(tc.in); got != tc.expected {
			t.Errorf("migrationURL(%q): expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}

	if ups == 0 {
		t.Fatalf("expected at least one up migration")
	}
	if ups != downs {
		t.Fatalf("expected every up migration to have a down migration: %d up, %d down", ups, downs)
	}
}
