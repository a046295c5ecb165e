package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-weekly/pkg/models"
	"github.com/mattsolo1/grove-weekly/pkg/service"
	"github.com/mattsolo1/grove-weekly/pkg/template"
	"github.com/mattsolo1/grove-weekly/pkg/vault"
	"github.com/mattsolo1/grove-weekly/pkg/week"
)

// FormatReferenceURL documents the tokens accepted by title and template formats
const FormatReferenceURL = "https://momentjs.com/docs/#/displaying/format/"

// ErrUnknownSetting is returned by OnChange for keys it does not manage
var ErrUnknownSetting = errors.New("unknown setting")

// Keys lists the settings OnChange accepts
var Keys = []string{"start-day", "title-format", "template-path", "folder", "open-with", "editor", "vault"}

// Tab renders the settings and applies edits, persisting after every change.
type Tab struct {
	store    *Store
	settings *models.Settings
	vault    *vault.Vault
	now      func() time.Time
}

// NewTab creates a settings tab. v may be nil when no vault could be resolved; the
// template list and template validation are skipped then.
func NewTab(store *Store, settings *models.Settings, v *vault.Vault) *Tab {
	return &Tab{store: store, settings: settings, vault: v, now: time.Now}
}

// Display writes the current settings with descriptions and available choices
func (t *Tab) Display(w io.Writer) error {
	s := t.settings
	sample := service.FormatTitle(week.ResolveWeekStart(t.now(), s.StartDay), s.TitleFormat)

	var b strings.Builder
	b.WriteString(theme.DefaultTheme.Header.Render("Weekly note settings"))
	fmt.Fprintf(&b, "\n\nSettings file: %s\n", t.store.Path())

	fmt.Fprintf(&b, "\nDate format (title-format): %s\n", s.TitleFormat)
	fmt.Fprintf(&b, "  For a list of all available tokens, see the format reference: %s\n", FormatReferenceURL)
	fmt.Fprintf(&b, "  Your current syntax looks like this: %s\n", theme.DefaultTheme.Info.Render(sample))

	templateLabel := s.TemplatePath
	if templateLabel == "" {
		templateLabel = "No template selected"
	}
	fmt.Fprintf(&b, "\nTemplate file (template-path): %s\n", templateLabel)
	b.WriteString("  Select the template file to use.\n")
	if t.vault != nil {
		cfg, cfgErr := template.LoadConfig(t.vault, t.vault.ConfigPath(template.ConfigFile))
		files, notices, err := template.Candidates(t.vault, cfg, cfgErr)
		for _, notice := range notices {
			fmt.Fprintf(&b, "  %s\n", theme.DefaultTheme.Muted.Render(notice))
		}
		if err != nil {
			return fmt.Errorf("list templates: %w", err)
		}
		b.WriteString("    - No template selected\n")
		for _, f := range files {
			fmt.Fprintf(&b, "    - %s\n", f)
		}
	}

	fmt.Fprintf(&b, "\nStart day (start-day): %s\n", s.StartDay)
	days := make([]string, len(models.Weekdays))
	for i, d := range models.Weekdays {
		days[i] = string(d)
	}
	fmt.Fprintf(&b, "  Day of the week to start on: %s\n", strings.Join(days, ", "))

	folder := s.Folder
	if folder == "" {
		folder = "/"
	}
	fmt.Fprintf(&b, "\nFolder (folder): %s\n", folder)
	fmt.Fprintf(&b, "Open with (open-with): %s\n", s.OpenWith)
	if s.Editor != "" {
		fmt.Fprintf(&b, "Editor (editor): %s\n", s.Editor)
	}
	if s.Vault != "" {
		fmt.Fprintf(&b, "Vault (vault): %s\n", s.Vault)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// OnChange validates and applies one setting, then saves all settings
func (t *Tab) OnChange(key, value string) error {
	key = strings.ToLower(strings.ReplaceAll(key, "_", "-"))
	s := t.settings

	switch key {
	case "start-day":
		day, err := week.ParseWeekday(value)
		if err != nil {
			return err
		}
		s.StartDay = day

	case "title-format":
		if value == "" {
			value = models.DefaultTitleFormat
		}
		s.TitleFormat = value

	case "template-path":
		if value != "" {
			value = vault.NormalizePath(value)
			if t.vault != nil {
				exists, err := t.vault.Exists(value)
				if err != nil {
					return err
				}
				if !exists {
					return fmt.Errorf("template %s: %w", value, vault.ErrNotFound)
				}
			}
		}
		s.TemplatePath = value

	case "folder":
		value = vault.NormalizePath(value)
		if value == "/" {
			value = ""
		}
		s.Folder = value

	case "open-with":
		mode := models.OpenMode(strings.ToLower(value))
		if !models.IsValidOpenMode(mode) {
			return fmt.Errorf("invalid open-with %q (use editor, obsidian or none)", value)
		}
		s.OpenWith = mode

	case "editor":
		s.Editor = value

	case "vault":
		if value != "" {
			abs, err := expandHome(value)
			if err != nil {
				return err
			}
			value = abs
		}
		s.Vault = value

	default:
		return fmt.Errorf("%w: %q (known: %s)", ErrUnknownSetting, key, strings.Join(Keys, ", "))
	}

	return t.store.Save(*s, strings.ReplaceAll(key, "-", "_"))
}

func expandHome(p string) (string, error) {
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}
