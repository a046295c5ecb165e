// Package dateformat renders times using moment.js display tokens, the format language
// vault templates and title settings are written in.
//
// Layouts accept every moment token (YYYY, MMMM, Do, dddd, GGGG, WW, gggg, ww, HH, h, A,
// X, the localized L, LL, LLL, LLLL, LT, LTS forms and so on) in the English locale,
// where locale weeks start on Sunday and week 1 contains January 1st. Text inside
// square brackets is emitted literally.
package dateformat

import (
	"time"

	"github.com/nleeper/goment"
)

// Format renders t according to a moment-style layout. An empty layout renders as an
// empty string.
func Format(t time.Time, layout string) string {
	if layout == "" {
		return ""
	}
	g, err := goment.New(t)
	if err != nil {
		return t.Format(time.RFC3339)
	}
	return g.Format(layout)
}
