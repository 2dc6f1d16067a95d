package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.DatabaseDriver != DriverPostgres {
		t.Fatalf("expected postgres driver by default, got %q", cfg.DatabaseDriver)
	}
	if cfg.MaxOpenConns != 10 {
		t.Fatalf("expected 10 max open conns, got %d", cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime != time.Hour {
		t.Fatalf("expected 1h conn lifetime, got %s", cfg.ConnMaxLifetime)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected info level, got %s", cfg.LogLevel)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file:perf.db")
	t.Setenv("BOOTSTRAP_SCHEMA", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()
	if cfg.DatabaseDriver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.DatabaseDriver)
	}
	if !cfg.BootstrapSchema {
		t.Fatal("expected schema bootstrap enabled")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %s", cfg.LogLevel)
	}
	if cfg.MaxOpenConns != 10 {
		t.Fatalf("expected fallback for invalid int, got %d", cfg.MaxOpenConns)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Addr:           ":8080",
		DatabaseDriver: DriverSQLite,
		DatabaseURL:    "file:perf.db",
		MaxOpenConns:   1,
		MaxBodyBytes:   4096,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(c *Config){
		"missing url":    func(c *Config) { c.DatabaseURL = "" },
		"unknown driver": func(c *Config) { c.DatabaseDriver = "mysql" },
		"small body":     func(c *Config) { c.MaxBodyBytes = 10 },
		"zero conns":     func(c *Config) { c.MaxOpenConns = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
