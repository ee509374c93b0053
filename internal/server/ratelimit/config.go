package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	Trusted       map[string]bool
	Rules         []Rule
}

// DefaultRules limits the generation endpoints; PDF printing is the expensive path.
func DefaultRules(exportLimit int) []Rule {
	return []Rule{
		{Method: "POST", Prefix: "/export/", Limit: exportLimit, Window: time.Minute, Burst: 5},
		{Method: "GET", Prefix: "/resumes/", Limit: exportLimit, Window: time.Minute, Burst: 5},
		{Method: "POST", Prefix: "/resumes", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return Config{}
	}
	return Config{
		Enabled:       true,
		DefaultLimit:  envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow: envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		Trusted:       parseList(os.Getenv("RATE_LIMIT_TRUSTED")),
		Rules:         DefaultRules(envInt("RATE_LIMIT_EXPORT_LIMIT", 30)),
	}
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func parseList(list string) map[string]bool {
	out := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out[item] = true
		}
	}
	return out
}
