// Package env holds the small environment lookups that run before the
// typed config is loaded, such as picking the log format at logger
// construction time.
package env

import "os"

// Get returns the variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
