package ratelimit

import (
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultEndpoints returns the per-endpoint overrides used by the server. Printing to PDF
// launches a browser and is limited more strictly.
func DefaultEndpoints() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/export/pdf", Method: "GET", Rate: rate.Every(5 * time.Second), Burst: 2},
		{Path: "/export/doc", Method: "GET", Rate: 2, Burst: 5},
	}
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/groups/" matches "/groups/{group}").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Special case: health check endpoint is unlimited
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method, Rate: 0}
	}

	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	// No match found
	return nil
}
