// Package config reads service settings from the environment.
// Binaries load an optional .env file with godotenv before calling Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string
	DatabaseURL string

	LookupTimeout     time.Duration
	DistanceSourceURL string
	StatusSourceURL   string
	FlightSourceURL   string

	// Offline swaps the HTTP page sources for canned in-memory ones.
	Offline bool
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: %s must not be negative", key)
	}
	return d, nil
}

func GetBool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func Load() (Config, error) {
	timeout, err := GetDuration("LOOKUP_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	offline, err := GetBool("OFFLINE", false)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:              Get("PORT", "8080"),
		LogLevel:          Get("LOG_LEVEL", "info"),
		LogFormat:         Get("LOG_FORMAT", "json"),
		DatabaseURL:       Get("DATABASE_URL", ""),
		LookupTimeout:     timeout,
		DistanceSourceURL: Get("DISTANCE_SOURCE_URL", ""),
		StatusSourceURL:   Get("STATUS_SOURCE_URL", ""),
		FlightSourceURL:   Get("FLIGHT_SOURCE_URL", ""),
		Offline:           offline,
	}, nil
}
