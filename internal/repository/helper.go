package repository

import (
	"fmt"
	"time"
)

// DateFormat is the storage format of holding dates.
const DateFormat = "2006-01-02"

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// The SQLite driver hands DATE/DATETIME columns back as RFC3339 text when it
// recognizes them, and as stored text otherwise.
func ParseTime(str string) (time.Time, error) {
	layouts := []string{DateFormat, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}
