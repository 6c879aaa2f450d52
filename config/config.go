package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Database struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type Server struct {
	Port           string
	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
}

type Config struct {
	Database  Database
	Server    Server
	LogLevel  string
	LogFormat string
}

// Load reads .env files (if present) and then the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(errors.Cause(err)) {
		log.WithError(err).Warn("could not read .env file")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can supply their
// own environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Database: Database{
			Driver:          strOr(getenv("DB_DRIVER"), "postgres"),
			URL:             getenv("DATABASE_URL"),
			MaxOpenConns:    intOr(getenv, "DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    intOr(getenv, "DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: durationOr(getenv, "DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Server: Server{
			Port:           strOr(getenv("PORT"), "8000"),
			RateLimitRPS:   floatOr(getenv, "RATE_LIMIT_RPS", 0),
			RateLimitBurst: intOr(getenv, "RATE_LIMIT_BURST", 20),
			CORSOrigins:    splitList(strOr(getenv("CORS_ORIGINS"), "*")),
		},
		LogLevel:  strOr(getenv("LOG_LEVEL"), "info"),
		LogFormat: strOr(getenv("LOG_FORMAT"), "text"),
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}
	switch cfg.Database.Driver {
	case "postgres", "pgx":
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}

// SetupLogging applies level and format to the standard logrus logger.
func (c *Config) SetupLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("value", c.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func strOr(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func intOr(getenv func(string) string, key string, def int) int {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.WithField(key, raw).Warn("not an integer, using default")
		return def
	}
	return n
}

func floatOr(getenv func(string) string, key string, def float64) float64 {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.WithField(key, raw).Warn("not a number, using default")
		return def
	}
	return f
}

func durationOr(getenv func(string) string, key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.WithField(key, raw).Warn("not a duration, using default")
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
