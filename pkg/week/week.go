// Package week resolves the first day of the current week for a configured start day.
package week

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/grove-weekly/pkg/models"
)

// ErrInvalidWeekday is returned for names outside Monday..Sunday
var ErrInvalidWeekday = errors.New("invalid weekday")

// ParseWeekday accepts a day name in any case ("friday", "FRIDAY", "Friday")
func ParseWeekday(s string) (models.Weekday, error) {
	day := models.Weekday(cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s))))
	if _, ok := day.Index(); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
	return day, nil
}

// StartOfDay truncates t to 00:00:00 in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ResolveWeekStart returns the start of the day that begins the week containing today.
// The result's weekday is always startDay and lies within the 7 days ending at today.
// An unknown startDay is treated as Monday.
func ResolveWeekStart(today time.Time, startDay models.Weekday) time.Time {
	startIndex, ok := startDay.Index()
	if !ok {
		startDay = models.Monday
		startIndex, _ = startDay.Index()
	}

	todayIndex := int(today.Weekday())
	daysToSubtract := (todayIndex - startIndex + 7) % 7

	// AddDate keeps wall-clock days across DST transitions.
	start := StartOfDay(today.AddDate(0, 0, -daysToSubtract))

	return correctWeekday(start, startDay)
}

// correctWeekday applies the single one-day adjustment when the computed day name
// disagrees with the configured one. It is a no-op when they already match.
func correctWeekday(start time.Time, startDay models.Weekday) time.Time {
	if models.WeekdayOf(start) == startDay {
		return start
	}
	return StartOfDay(start.AddDate(0, 0, 1))
}

// ResolveWeekEnd returns the start of the last day of the week beginning at start
func ResolveWeekEnd(start time.Time) time.Time {
	return StartOfDay(start.AddDate(0, 0, 6))
}
