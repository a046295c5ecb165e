package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-weekly/pkg/models"
)

func TestResolveWeekStartAllCombinations(t *testing.T) {
	// 2024-03-11 is a Monday; walk a full week of "today" values.
	monday := time.Date(2024, 3, 11, 15, 42, 7, 0, time.Local)

	for offset := 0; offset < 7; offset++ {
		today := monday.AddDate(0, 0, offset)
		for _, startDay := range models.Weekdays {
			t.Run(today.Weekday().String()+"/"+string(startDay), func(t *testing.T) {
				got := ResolveWeekStart(today, startDay)

				assert.Equal(t, startDay, models.WeekdayOf(got))
				assert.Equal(t, 0, got.Hour())
				assert.Equal(t, 0, got.Minute())
				assert.Equal(t, 0, got.Second())

				todayStart := StartOfDay(today)
				assert.False(t, got.After(todayStart), "week start %s is after today %s", got, today)
				assert.True(t, got.After(todayStart.AddDate(0, 0, -7)), "week start %s is more than 6 days before %s", got, today)
			})
		}
	}
}

func TestResolveWeekStartWednesdayMonday(t *testing.T) {
	wednesday := time.Date(2024, 3, 13, 9, 30, 0, 0, time.UTC)

	got := ResolveWeekStart(wednesday, models.Monday)

	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestResolveWeekStartOnStartDay(t *testing.T) {
	sunday := time.Date(2024, 3, 17, 23, 59, 0, 0, time.UTC)

	got := ResolveWeekStart(sunday, models.Sunday)

	assert.Equal(t, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), got)
}

func TestResolveWeekStartAcrossYearBoundary(t *testing.T) {
	// 2025-01-01 is a Wednesday
	newYear := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	got := ResolveWeekStart(newYear, models.Thursday)

	assert.Equal(t, time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC), got)
}

func TestResolveWeekStartAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("timezone database not available")
	}
	// DST starts on 2024-03-10 in New York
	tuesday := time.Date(2024, 3, 12, 0, 30, 0, 0, loc)

	got := ResolveWeekStart(tuesday, models.Saturday)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, loc), got)
}

func TestResolveWeekStartUnknownDayFallsBackToMonday(t *testing.T) {
	friday := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	got := ResolveWeekStart(friday, models.Weekday("Caturday"))

	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestCorrectWeekday(t *testing.T) {
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	// Already correct: no adjustment.
	assert.Equal(t, monday, correctWeekday(monday, models.Monday))

	// Off by one day: exactly one day is added.
	sunday := monday.AddDate(0, 0, -1)
	assert.Equal(t, monday, correctWeekday(sunday, models.Monday))

	// Idempotent once corrected.
	fixed := correctWeekday(sunday, models.Monday)
	assert.Equal(t, fixed, correctWeekday(fixed, models.Monday))
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    models.Weekday
		wantErr bool
	}{
		{"Monday", models.Monday, false},
		{"friday", models.Friday, false},
		{"  SUNDAY ", models.Sunday, false},
		{"wEdNeSdAy", models.Wednesday, false},
		{"mon", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidWeekday)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveWeekEnd(t *testing.T) {
	start := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), ResolveWeekEnd(start))
}
