package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-rewriter/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (prefix match when it ends in "/")
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromSettings builds the limiter configuration from the server's rate limit settings.
// Default limits apply to highlight extraction; calls that reach the generation service
// get the endpoint-specific budgets from EndpointConfigs.
func FromSettings(rl config.RateLimit) *Config {
	if !rl.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    rl.Limit,
		DefaultWindow:   rl.Window,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       ipSet(rl.Allowlist),
		Blacklist:       ipSet(rl.Denylist),
		EndpointConfigs: EndpointConfigs(rl),
	}
}

// EndpointConfigs returns the per-endpoint budgets derived from the configured limit.
// Batch requests fan out to several generation calls and get a quarter of the budget.
func EndpointConfigs(rl config.RateLimit) []EndpointConfig {
	batch := max(rl.Limit/4, 1)
	batchBurst := max(rl.Burst/4, 1)

	return []EndpointConfig{
		{Path: "/v1/rewrite/", Method: http.MethodPost, Limit: rl.Limit, Window: rl.Window, Burst: rl.Burst},
		{Path: "/v1/rewrite-structured", Method: http.MethodPost, Limit: rl.Limit, Window: rl.Window, Burst: rl.Burst},
		{Path: "/v1/rewrite-batch", Method: http.MethodPost, Limit: batch, Window: rl.Window, Burst: batchBurst},
	}
}

func ipSet(ips []string) map[string]bool {
	result := make(map[string]bool, len(ips))
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
