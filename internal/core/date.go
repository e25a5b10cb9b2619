package core

import "time"

// dateLayouts are the accepted client date formats: full RFC3339
// timestamps and bare calendar dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ParseDate parses a client-supplied date string. Bare dates are
// interpreted in the server's local time zone, consistent with the
// midnight cutoff used by cost ingestion.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
