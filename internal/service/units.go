package service

import (
	"fmt"
	"math"
)

const metersPerMile = 1609.34

// MilesCeil converts meters to whole miles, always rounding up. Wear is
// never under-reported.
func MilesCeil(meters float64) int {
	return int(math.Ceil(meters / metersPerMile))
}

// MinutesCeil converts seconds to whole minutes, rounding up.
func MinutesCeil(seconds int64) int {
	return int((seconds + 59) / 60)
}

// FormatHoursMinutes renders seconds as H:MM, minutes rounded up.
func FormatHoursMinutes(seconds int64) string {
	total := MinutesCeil(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatMiles(meters float64) string {
	return fmt.Sprintf("%.2f", meters/metersPerMile)
}

func formatHours(seconds int64) string {
	return fmt.Sprintf("%.2f", float64(seconds)/3600)
}
