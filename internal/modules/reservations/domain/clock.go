package domain

import (
	"strconv"
	"strings"
	"time"
)

// MinutesOfDay parses an "HH:MM" slot into minutes since midnight.
// Reservation times are day-relative; date filtering happens upstream.
func MinutesOfDay(slot string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(slot), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// ClockMinutes returns the wall-clock minutes since midnight for the given time.
func ClockMinutes(now time.Time) int {
	return now.Hour()*60 + now.Minute()
}
