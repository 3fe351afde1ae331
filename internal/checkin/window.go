// Package checkin computes the activity window of check-ins and decides which
// of them a viewer may see. Everything here is pure: callers pass the clock in,
// and nothing reads time.Now or writes back to storage.
package checkin

import (
	"fmt"
	"time"

	"commons-backend/internal/models"
)

// ExpiresAt is the instant the window opened at start closes.
func ExpiresAt(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// TimeRemainingMinutes returns the whole minutes left before expiry, floored,
// and never negative.
func TimeRemainingMinutes(start time.Time, durationMinutes int, now time.Time) int {
	left := ExpiresAt(start, durationMinutes).Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left / time.Minute)
}

// IsExpired reports whether no whole minute is left. A window with less than a
// minute remaining counts as expired.
func IsExpired(start time.Time, durationMinutes int, now time.Time) bool {
	return TimeRemainingMinutes(start, durationMinutes, now) == 0
}

// FormatRemaining renders a minute count as "1h 30m", "2h", "45m" or "Expired".
func FormatRemaining(minutes int) string {
	if minutes <= 0 {
		return "Expired"
	}

	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

type State string

const (
	StateActive    State = "active"
	StateExpired   State = "expired"
	StateCancelled State = "cancelled"
)

// StateAt is the observable state of c at now. Cancellation wins over expiry,
// and a lapsed window is expired whatever the stored status says.
func StateAt(c *models.CheckIn, now time.Time) State {
	switch {
	case c.Status == models.CheckInStatusCancelled:
		return StateCancelled
	case c.Status != models.CheckInStatusActive:
		return StateExpired
	case IsExpired(c.StartTime, c.DurationMinutes, now):
		return StateExpired
	default:
		return StateActive
	}
}
