package board

import (
	"fmt"
	"math"
	"time"
)

// DefaultSoonThreshold is how close a pass must be for IsSoon.
const DefaultSoonThreshold = 30 * time.Second

// RelativeTime renders t as a countdown from now: "Arriving" within a
// minute (or already past), then whole minutes rounded half up, then hours.
func RelativeTime(now, t time.Time) string {
	secs := t.Sub(now).Seconds()
	if secs <= 60 {
		return "Arriving"
	}

	minutes := int(math.Floor(secs/60 + 0.5))
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	hours, extra := minutes/60, minutes%60
	if extra == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dmin", hours, extra)
}

// IsSoon reports whether t is less than threshold away from now.
func IsSoon(now, t time.Time, threshold time.Duration) bool {
	return t.Sub(now) < threshold
}
