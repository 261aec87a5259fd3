// Package config loads and validates the runtime configuration of the
// warehouse loader from environment variables, optionally seeded from a
// dotenv file.
//
// The configuration is split into three blocks: the MongoDB source, the
// warehouse sink, and runtime tuning. Connection strings are never taken
// whole from the environment; they are assembled from individual parts so
// credentials stay out of process listings and logs.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Mongo holds connection parameters for the operational source database.
type Mongo struct {
	User       string
	Password   string
	Host       string
	Port       string
	Database   string
	AuthSource string
}

// Warehouse holds connection parameters for the dimensional sink.
type Warehouse struct {
	// Kind selects the storage backend: "postgres" (default) or "sqlite".
	Kind string

	User     string
	Password string
	Host     string
	Port     string
	Database string
	SSLMode  string

	// SQLitePath is the database file used when Kind is "sqlite".
	SQLitePath string
}

// Runtime holds tuning knobs for the load phase.
type Runtime struct {
	// BatchSize bounds the number of rows per bulk append statement.
	BatchSize int
}

// Config is the full runtime configuration.
type Config struct {
	Mongo     Mongo
	Warehouse Warehouse
	Runtime   Runtime
}

// DefaultBatchSize is used when ETL_BATCH_SIZE is unset.
const DefaultBatchSize = 1000

// Load reads configuration from the environment. When envFile is non-empty,
// it is loaded first via godotenv; values already present in the environment
// win over file values.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Mongo: Mongo{
			User:       os.Getenv("MONGO_USER"),
			Password:   os.Getenv("MONGO_PASSWORD"),
			Host:       getenv("MONGO_HOST", "localhost"),
			Port:       getenv("MONGO_PORT", "27017"),
			Database:   os.Getenv("MONGO_DB"),
			AuthSource: getenv("MONGO_AUTH_SOURCE", "admin"),
		},
		Warehouse: Warehouse{
			Kind:       getenv("DW_KIND", "postgres"),
			User:       os.Getenv("PG_USER"),
			Password:   os.Getenv("PG_PASSWORD"),
			Host:       getenv("PG_HOST", "localhost"),
			Port:       getenv("PG_PORT", "5432"),
			Database:   os.Getenv("PG_DB"),
			SSLMode:    getenv("DW_SSLMODE", "disable"),
			SQLitePath: os.Getenv("DW_SQLITE_PATH"),
		},
		Runtime: Runtime{
			BatchSize: DefaultBatchSize,
		},
	}

	if raw := os.Getenv("ETL_BATCH_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: ETL_BATCH_SIZE: %w", err)
		}
		cfg.Runtime.BatchSize = n
	}

	return cfg, nil
}

// URI assembles a MongoDB connection string with the credentials URL-escaped.
func (m Mongo) URI() string {
	var b strings.Builder
	b.WriteString("mongodb://")
	if m.User != "" {
		b.WriteString(url.UserPassword(m.User, m.Password).String())
		b.WriteString("@")
	}
	b.WriteString(m.Host)
	b.WriteString(":")
	b.WriteString(m.Port)
	b.WriteString("/")
	b.WriteString(m.Database)
	if m.AuthSource != "" {
		b.WriteString("?authSource=")
		b.WriteString(url.QueryEscape(m.AuthSource))
	}
	return b.String()
}

// DSN assembles the connection string for the configured backend kind.
func (w Warehouse) DSN() string {
	if w.Kind == "sqlite" {
		return w.SQLitePath
	}
	var b strings.Builder
	b.WriteString("postgres://")
	if w.User != "" {
		b.WriteString(url.UserPassword(w.User, w.Password).String())
		b.WriteString("@")
	}
	b.WriteString(w.Host)
	b.WriteString(":")
	b.WriteString(w.Port)
	b.WriteString("/")
	b.WriteString(w.Database)
	b.WriteString("?sslmode=")
	b.WriteString(url.QueryEscape(w.SSLMode))
	return b.String()
}

// getenv returns the environment value for key, or def when unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
