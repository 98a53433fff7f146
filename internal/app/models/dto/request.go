package dto

import "time"

// dateOnly is the wire format for calendar dates in request payloads.
const dateOnly = "2006-01-02"

// parseDate parses a YYYY-MM-DD request field into a UTC midnight time.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
