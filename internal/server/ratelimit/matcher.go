package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for the health check.
var unlimited = EndpointConfig{Path: "/health", Method: http.MethodGet}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Paths ending in "/" match by prefix, so "/v1/rewrite/" covers every content type.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == unlimited.Path && method == unlimited.Method {
		match := unlimited
		return &match
	}

	for i := range configs {
		c := &configs[i]
		if c.Path == path && c.Method == method {
			return c
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
