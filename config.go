package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDriver      string // sqlite|postgres
	DBDSN         string
	SeedPath      string
	SecureCookies bool
	CORSOrigins   []string
	SQLLogLevel   string // silent|error|warn|info
	RandomSeed    *int64 // fixed seed for reproducible draws
}

// LoadConfig reads the process environment, after loading .env when present.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	driver := envOr("DB_DRIVER", "sqlite")
	defDSN := "exam.db"
	if driver == "postgres" {
		defDSN = "postgres://localhost:5432/exam?sslmode=disable"
	}

	cfg := Config{
		Port:          envOr("PORT", "8080"),
		DBDriver:      driver,
		DBDSN:         envOr("DB_DSN", defDSN),
		SeedPath:      envOr("SEED_PATH", "data/questions.json"),
		SecureCookies: envBool("SECURE_COOKIES", false),
		CORSOrigins:   csvOr("CORS_ORIGINS", ""),
		SQLLogLevel:   envOr("LOG_SQL", "warn"),
	}
	if v := os.Getenv("RANDOM_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.RandomSeed = &seed
		} else {
			log.Printf("ignoring RANDOM_SEED=%q: %v", v, err)
		}
	}
	return cfg
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
