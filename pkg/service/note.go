package service

import (
	"path"
	"strings"
	"time"

	"github.com/mattsolo1/grove-weekly/pkg/dateformat"
	"github.com/mattsolo1/grove-weekly/pkg/models"
	"github.com/mattsolo1/grove-weekly/pkg/vault"
)

// FormatTitle renders the note title for the week starting at weekStart
func FormatTitle(weekStart time.Time, titleFormat string) string {
	if titleFormat == "" {
		titleFormat = models.DefaultTitleFormat
	}
	return sanitizeTitle(dateformat.Format(weekStart, titleFormat))
}

// NotePath returns the normalized vault path of the note titled title inside folder
func NotePath(folder, title string) string {
	return vault.NormalizePath(path.Join(folder, title+".md"))
}

// sanitizeTitle removes characters that are not allowed in note file names.
// Slashes are kept: they place the note in sub folders.
func sanitizeTitle(s string) string {
	invalidChars := []string{":", "*", "?", `"`, "<", ">", "|"}
	for _, char := range invalidChars {
		s = strings.ReplaceAll(s, char, "")
	}
	return strings.TrimSpace(s)
}
