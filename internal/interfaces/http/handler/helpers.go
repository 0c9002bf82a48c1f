package handler

import "time"

// timestamp layouts accepted on request fields, tried in order
var acceptedTimeLayouts = []string{time.RFC3339, "2006-01-02"}

// parseTimestamp parses an RFC 3339 timestamp or a bare calendar date
func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range acceptedTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
