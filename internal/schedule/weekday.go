package schedule

import (
	"strings"
	"time"
)

// The app's display vocabulary is Spanish; comparisons happen on lowercase
// English tokens. Input outside either vocabulary is lower-cased and passed
// through unchanged rather than treated as an error.
var spanishDays = map[string]string{
	"lunes":     "monday",
	"martes":    "tuesday",
	"miércoles": "wednesday",
	"jueves":    "thursday",
	"viernes":   "friday",
	"sábado":    "saturday",
	"domingo":   "sunday",
}

var weekdayTokens = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// Canonical normalizes a weekday name from either vocabulary to its
// canonical token.
func Canonical(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if token, ok := spanishDays[lower]; ok {
		return token
	}
	return lower
}

// WeekdayToken returns the canonical token for a date's weekday.
func WeekdayToken(d time.Weekday) string {
	return weekdayTokens[d]
}
