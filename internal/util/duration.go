package util

import (
	"fmt"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

// ParseDuration parses a single free-form duration into time.Duration.
// Supports standard Go duration units (h, m, s, ms, us, ns) plus days (d) and weeks (w).
// Examples: "1h", "1h30m", "2d", "1w2d3h", "300s"
func ParseDuration(s string) (time.Duration, error) {
	return str2duration.ParseDuration(s)
}

// ParseLimit parses a duration used as an upper bound. An empty string or
// "0" means no limit and returns 0.
func ParseLimit(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("limit must be non-negative, got %s", s)
	}
	return d, nil
}
