package database

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"ledgerly/internal/config"
)

func TestPostgresURL(t *testing.T) {
	cfg := &config.Config{
		DBUser:     "ledger",
		DBPassword: "p@ss word",
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "ledgerly",
		DBSSLMode:  "disable",
	}
	got := PostgresURL(cfg)
	want := "postgres://ledger:p%40ss%20word@db:5432/ledgerly?sslmode=disable"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}
	if len(ups) == 0 {
		t.Fatal("expected at least one migration")
	}
	for name := range ups {
		if !downs[name] {
			t.Errorf("migration %s has no down file", name)
		}
	}
}

func TestSQLiteManager(t *testing.T) {
	cfg := &config.Config{DBDriver: DriverSQLite, DBPath: filepath.Join(t.TempDir(), "ledger.db")}
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("failed to open sqlite manager: %v", err)
	}
	defer m.Close()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, table := range []string{"users", "categories", "transactions", "savings_funds", "savings_transactions", "audit_logs"} {
		if !m.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %s", table)
		}
	}
}

func TestUnsupportedDriver(t *testing.T) {
	if _, err := NewManager(&config.Config{DBDriver: "mysql"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
