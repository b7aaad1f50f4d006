package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayHours is the open interval for one weekday, in minutes from midnight.
type DayHours struct {
	Open   int  `json:"open"`
	Close  int  `json:"close"`
	Closed bool `json:"closed"`
}

// OperatingHours is the salon's weekly schedule plus the slot granularity
// the day is divided into. Supplied by configuration, read-only to the
// scheduling engine.
type OperatingHours struct {
	Days        [7]DayHours `json:"days"` // indexed by time.Weekday (Sunday = 0)
	Granularity int         `json:"granularity"` // minutes
}

// ForDate returns the open interval for the weekday of a "2006-01-02" date.
func (h OperatingHours) ForDate(date string) (DayHours, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return DayHours{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return h.Days[d.Weekday()], nil
}

// ParseDayHours parses a schedule entry such as "09:00-19:00" or "closed".
func ParseDayHours(spec string) (DayHours, error) {
	spec = strings.TrimSpace(strings.ToLower(spec))
	if spec == "" || spec == "closed" {
		return DayHours{Closed: true}, nil
	}
	parts := strings.Split(spec, "-")
	if len(parts) != 2 {
		return DayHours{}, fmt.Errorf("invalid hours spec %q", spec)
	}
	open, err := ParseClock(parts[0])
	if err != nil {
		return DayHours{}, fmt.Errorf("invalid hours spec %q: %w", spec, err)
	}
	close, err := ParseClock(parts[1])
	if err != nil {
		return DayHours{}, fmt.Errorf("invalid hours spec %q: %w", spec, err)
	}
	if close <= open {
		return DayHours{}, fmt.Errorf("invalid hours spec %q: close before open", spec)
	}
	return DayHours{Open: open, Close: close}, nil
}

// ParseClock parses "HH:MM" into minutes from midnight.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hh*60 + mm, nil
}
