package teesheet

import (
	"fmt"
	"time"
)

// ValidateTeeTime checks that s is a 24h "HH:MM" time.
func ValidateTeeTime(s string) error {
	if len(s) != 5 {
		return ErrInvalidTeeTime
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTeeTime
	}
	return nil
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if ValidateTeeTime(t) != nil {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// TeeTimes returns the tee times from first to last (inclusive) spaced
// interval minutes apart. Invalid bounds or a non-positive interval yield nil.
func TeeTimes(first, last string, interval int) []string {
	if interval <= 0 || ValidateTeeTime(first) != nil || ValidateTeeTime(last) != nil {
		return nil
	}
	start, end := TimeToMinutes(first), TimeToMinutes(last)
	if end < start {
		return nil
	}

	result := make([]string, 0, (end-start)/interval+1)
	for m := start; m <= end; m += interval {
		result = append(result, MinutesToTime(m))
	}
	return result
}
