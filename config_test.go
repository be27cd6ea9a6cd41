package main

import (
	"reflect"
	"testing"

	gormLogger "gorm.io/gorm/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "SEED_PATH", "SECURE_COOKIES", "CORS_ORIGINS", "LOG_SQL", "RANDOM_SEED"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	if cfg.Port != "8080" || cfg.DBDriver != "sqlite" || cfg.DBDSN != "exam.db" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SecureCookies || cfg.RandomSeed != nil || len(cfg.CORSOrigins) != 0 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RANDOM_SEED", "42")

	cfg := LoadConfig()
	if cfg.Port != "9000" || cfg.DBDriver != "postgres" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.DBDSN != "postgres://localhost:5432/exam?sslmode=disable" {
		t.Fatalf("dsn = %q", cfg.DBDSN)
	}
	if !cfg.SecureCookies {
		t.Fatal("SecureCookies not set")
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("origins = %v", cfg.CORSOrigins)
	}
	if cfg.RandomSeed == nil || *cfg.RandomSeed != 42 {
		t.Fatalf("seed = %v", cfg.RandomSeed)
	}
}

func TestLoadConfigBadSeedIgnored(t *testing.T) {
	t.Setenv("RANDOM_SEED", "abc")
	if cfg := LoadConfig(); cfg.RandomSeed != nil {
		t.Fatalf("seed = %v, want nil", *cfg.RandomSeed)
	}
}

func TestParseSQLLogLevel(t *testing.T) {
	tests := map[string]gormLogger.LogLevel{
		"silent": gormLogger.Silent,
		"ERROR":  gormLogger.Error,
		"info":   gormLogger.Info,
		"":       gormLogger.Warn,
		"bogus":  gormLogger.Warn,
	}
	for in, want := range tests {
		if got := parseSQLLogLevel(in); got != want {
			t.Errorf("parseSQLLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
