package httpx

import "time"

// ParseTimeout parses a timeout string with a fallback chain: configured
// value first, then the default. Negative durations are rejected (they
// would panic in http.Client.Timeout).
func ParseTimeout(configured string, defaultVal time.Duration) time.Duration {
	if configured != "" {
		if d, err := time.ParseDuration(configured); err == nil && d >= 0 {
			return d
		}
	}
	if defaultVal < 0 {
		return 60 * time.Second
	}
	return defaultVal
}
