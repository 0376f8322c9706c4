package arrivalboard

import (
	"time"
)

// minutesUntil returns whole minutes from now until when, clamped at zero.
func minutesUntil(when, now time.Time) int {
	mins := int(when.Sub(now) / time.Minute)
	if mins < 0 {
		mins = 0
	}
	return mins
}

// clockHHMM formats an arrival as local wall-clock HH:MM.
func clockHHMM(t time.Time) string {
	return t.Local().Format("15:04")
}
