package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Tier names what makes an endpoint expensive to serve.
type Tier string

const (
	// TierAggregation covers full aggregation runs: every request fans out
	// to external sources and a series of AI calls.
	TierAggregation Tier = "aggregation"
	// TierVision covers single vision-model calls.
	TierVision Tier = "vision"
	// TierUnmetered marks endpoints that must never be throttled.
	TierUnmetered Tier = "unmetered"
)

// Quota is a steady request allowance over a window, with a burst ceiling
// that may be spent immediately. Burst defaults to Limit when zero.
type Quota struct {
	Limit  int
	Window time.Duration
	Burst  int
}

// Rule binds one endpoint to a tier's quota. A Path ending in "/" meters
// the whole subtree. A zero Quota means the endpoint is unmetered.
type Rule struct {
	Tier   Tier
	Path   string
	Method string
	Quota  Quota
}

// Config holds the limiter configuration. Endpoints without a matching
// rule fall back to the default quota.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	SweepInterval time.Duration
	Whitelist     map[string]bool
	Blacklist     map[string]bool
	Rules         []Rule
}

// DefaultRules returns the per-endpoint quotas for this API. Aggregation
// runs are the most expensive operation the server has, vision calls come
// second, and reads ride on the default quota.
func DefaultRules() []Rule {
	aggregation := Quota{Limit: 10, Window: time.Hour, Burst: 2}
	vision := Quota{Limit: 60, Window: time.Minute, Burst: 10}

	return []Rule{
		{Tier: TierAggregation, Path: "/import-profile", Method: "POST", Quota: aggregation},
		{Tier: TierAggregation, Path: "/import-profile/stream", Method: "POST", Quota: aggregation},
		{Tier: TierVision, Path: "/analyze-image", Method: "POST", Quota: vision},
		{Tier: TierUnmetered, Path: "/health", Method: "GET"},
	}
}

// LoadConfig builds the limiter configuration from RATE_LIMIT_* environment
// variables, with the endpoint rules fixed by DefaultRules.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:       true,
		DefaultLimit:  envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow: envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		SweepInterval: envDuration("RATE_LIMIT_SWEEP_INTERVAL", 5*time.Minute),
		Whitelist:     envIPSet("RATE_LIMIT_WHITELIST"),
		Blacklist:     envIPSet("RATE_LIMIT_BLACKLIST"),
		Rules:         DefaultRules(),
	}
}

func envBool(key string, fallback bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}

// envIPSet parses a comma-separated address list into a membership set.
func envIPSet(key string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(os.Getenv(key), ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
