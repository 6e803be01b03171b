// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration loaded from environment
// variables. CLI flags override individual fields after Load.
type Config struct {
	GitHubToken  string
	DBPath       string
	PollInterval time.Duration
	Extensions   []string // Target-language file suffixes, e.g. ".go".
	Workers      int      // Per-repo PR review concurrency.
}

// Load reads configuration from environment variables and returns a
// validated Config. The GitHub token (REVIEWBOT_GITHUB_TOKEN) is optional
// here; commands that talk to the hosting platform validate its presence
// themselves. Optional variables with defaults: REVIEWBOT_DB_PATH
// (reviewbot.db), REVIEWBOT_POLL_INTERVAL (5m), REVIEWBOT_EXTENSIONS (.go),
// REVIEWBOT_WORKERS (4).
func Load() (*Config, error) {
	token := os.Getenv("REVIEWBOT_GITHUB_TOKEN")
	if token == "" {
		// The original token variable many setups already export.
		token = os.Getenv("GITHUB_TOKEN")
	}

	dbPath := "reviewbot.db"
	if v, ok := os.LookupEnv("REVIEWBOT_DB_PATH"); ok {
		dbPath = v
	}

	pollInterval := 5 * time.Minute
	if v, ok := os.LookupEnv("REVIEWBOT_POLL_INTERVAL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("REVIEWBOT_POLL_INTERVAL has invalid duration %q: %w", v, err)
		}
		// time.NewTicker panics on non-positive intervals.
		if parsed <= 0 {
			return nil, fmt.Errorf("REVIEWBOT_POLL_INTERVAL must be positive, got %q", v)
		}
		pollInterval = parsed
	}

	extensions := []string{".go"}
	if v, ok := os.LookupEnv("REVIEWBOT_EXTENSIONS"); ok && v != "" {
		extensions = nil
		for _, ext := range strings.Split(v, ",") {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			extensions = append(extensions, ext)
		}
		if len(extensions) == 0 {
			return nil, fmt.Errorf("REVIEWBOT_EXTENSIONS %q contains no usable suffixes", v)
		}
	}

	workers := 4
	if v, ok := os.LookupEnv("REVIEWBOT_WORKERS"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("REVIEWBOT_WORKERS has invalid value %q", v)
		}
		workers = parsed
	}

	return &Config{
		GitHubToken:  token,
		DBPath:       dbPath,
		PollInterval: pollInterval,
		Extensions:   extensions,
		Workers:      workers,
	}, nil
}
