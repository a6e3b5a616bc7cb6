package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerPort != "8080" || cfg.DBDriver != DriverPgx || cfg.DBLockTimeout != 5*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !strings.Contains(cfg.DSN(), "dbname=parking_db") {
		t.Fatalf("dsn = %q", cfg.DSN())
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("err = %v, want parse env error", err)
	}
}

func TestSQLiteDSN(t *testing.T) {
	cfg := &Config{DBDriver: DriverSQLite, SQLitePath: "/tmp/p.db"}
	dsn := cfg.DSN()
	if !strings.HasPrefix(dsn, "file:/tmp/p.db?") || !strings.Contains(dsn, "foreign_keys%281%29") {
		t.Fatalf("dsn = %q", dsn)
	}
}

func TestDevJWTSecretOnlyWithSQLite(t *testing.T) {
	tests := []struct {
		driver  string
		wantErr bool
	}{
		{DriverPgx, true},
		{DriverPostgres, true},
		{DriverSQLite, false},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			t.Setenv("DB_DRIVER", tt.driver)
			t.Setenv("JWT_SECRET", DevJWTSecret)
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	cfg := &Config{DBDriver: DriverPgx, JWTSecret: "rotated-secret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate with custom secret: %v", err)
	}
}
