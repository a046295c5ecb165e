// Package template expands the {{title}}, {{date}} and {{time}} variables of note
// templates, including the one-off {{date:FORMAT}} and {{time:FORMAT}} forms.
package template

import (
	"regexp"
	"strings"
	"time"

	"github.com/mattsolo1/grove-weekly/pkg/dateformat"
	"github.com/mattsolo1/grove-weekly/pkg/models"
)

const (
	// DefaultDateFormat renders {{date}} when no format is configured
	DefaultDateFormat = "YYYY-MM-DD"
	// DefaultTimeFormat renders {{time}} when no format is configured
	DefaultTimeFormat = "HH:mm"
)

// Matches {{date:YYYY-[W]WW}} or {{time:HH}}; lazy so two tokens on one line stay apart.
var formattedVariable = regexp.MustCompile(`\{\{(date|time):(.*?)\}\}`)

// Expand substitutes template variables in content. Passes run in a fixed order:
// formatted date/time variables, then {{date}}, then {{time}}, then {{title}}, so that
// a title containing braces is inserted verbatim and never expanded.
func Expand(content, title, dateFormat, timeFormat string, now time.Time) string {
	if content == "" {
		return content
	}
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}

	content = formattedVariable.ReplaceAllStringFunc(content, func(match string) string {
		m := formattedVariable.FindStringSubmatch(match)
		layout := m[2]
		if layout == "" {
			// {{date:}} and {{time:}} render like their bare forms.
			layout = dateFormat
			if m[1] == "time" {
				layout = timeFormat
			}
		}
		return dateformat.Format(now, layout)
	})

	content = strings.ReplaceAll(content, "{{date}}", dateformat.Format(now, dateFormat))
	content = strings.ReplaceAll(content, "{{time}}", dateformat.Format(now, timeFormat))
	content = strings.ReplaceAll(content, "{{title}}", title)

	return content
}

// ResolveFormats picks the {{date}} and {{time}} formats from the companion config.
// Each field falls back to its default on its own.
func ResolveFormats(cfg *models.TemplatesConfig) (dateFormat, timeFormat string) {
	dateFormat, timeFormat = DefaultDateFormat, DefaultTimeFormat
	if cfg == nil {
		return dateFormat, timeFormat
	}
	if cfg.DateFormat != "" {
		dateFormat = cfg.DateFormat
	}
	if cfg.TimeFormat != "" {
		timeFormat = cfg.TimeFormat
	}
	return dateFormat, timeFormat
}
