// Package config loads the service configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries need to run.
type Config struct {
	Port       string
	DBUser     string
	DBPwd      string
	DBHost     string
	GinLogging bool

	LogDir string

	// SchedulerTick is how often the message worker checks for due messages.
	SchedulerTick time.Duration
}

// Load reads the configuration. A .env file in the working directory is
// honored when present but never required.
//
// Usage example on the command line:
// > PORT=8080 DBUSER=astra DBPWD=secret DBHOST=localhost:3306 go run ./cmd/service
func Load() Config {
	_ = godotenv.Load()

	tickSeconds, err := strconv.Atoi(getenv("SCHEDULER_TICK_SECONDS", "5"))
	if err != nil || tickSeconds < 1 {
		tickSeconds = 5
	}

	return Config{
		Port:          getenv("PORT", "8080"),
		DBUser:        mustGetenv("DBUSER"),
		DBPwd:         mustGetenv("DBPWD"),
		DBHost:        getenv("DBHOST", "localhost:3306"),
		GinLogging:    !strings.EqualFold(getenv("GIN_LOGGING", "on"), "off"),
		LogDir:        getenv("LOG_DIR", "logs"),
		SchedulerTick: time.Duration(tickSeconds) * time.Second,
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
