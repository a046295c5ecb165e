package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-weekly/pkg/models"
	"github.com/mattsolo1/grove-weekly/pkg/vault"
)

func newTestStore(t *testing.T) (*Store, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	store, err := NewStore(filepath.Join(t.TempDir(), "weekly", "config.yaml"), logger)
	require.NoError(t, err)
	return store, hook
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	store, _ := newTestStore(t)

	s, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, models.Monday, s.StartDay)
	assert.Equal(t, "YYYY-MM-DD", s.TitleFormat)
	assert.Equal(t, "", s.TemplatePath)
	assert.Equal(t, models.OpenModeEditor, s.OpenWith)
	assert.NotEmpty(t, s.DataDir)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("start_day: friday\ntemplate_path: Templates/Weekly.md\n"), 0644))

	s, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, models.Friday, s.StartDay)
	assert.Equal(t, "Templates/Weekly.md", s.TemplatePath)
	assert.Equal(t, "YYYY-MM-DD", s.TitleFormat)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	store, _ := newTestStore(t)
	t.Setenv("WEEKLY_TITLE_FORMAT", "GGGG-[W]WW")

	s, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, "GGGG-[W]WW", s.TitleFormat)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	store, hook := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("start_day: someday\nopen_with: browser\n"), 0644))

	s, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, models.Monday, s.StartDay)
	assert.Equal(t, models.OpenModeEditor, s.OpenWith)
	assert.Len(t, hook.Entries, 2)
}

func TestLoadMalformedFile(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("start_day: [unterminated\n"), 0644))

	_, err := store.Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	s := models.DefaultSettings()
	s.StartDay = models.Sunday
	s.Folder = "Journal/Weekly"
	require.NoError(t, store.Save(s, "start_day", "folder"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, models.Sunday, loaded.StartDay)
	assert.Equal(t, "Journal/Weekly", loaded.Folder)
}

func TestSaveKeepsEnvironmentAndDefaultsOutOfFile(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("title_format: GGGG-[W]WW\n"), 0644))
	t.Setenv("WEEKLY_START_DAY", "Sunday")
	t.Setenv("EDITOR", "nano")

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, models.Sunday, s.StartDay)
	assert.Equal(t, "nano", s.Editor)

	tab := NewTab(store, &s, nil)
	require.NoError(t, tab.OnChange("folder", "Journal"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	saved := string(data)
	assert.Contains(t, saved, "folder: Journal")
	assert.Contains(t, saved, "GGGG-[W]WW")
	assert.NotContains(t, saved, "start_day")
	assert.NotContains(t, saved, "Sunday")
	assert.NotContains(t, saved, "nano")
	assert.NotContains(t, saved, "data_dir")
	assert.NotContains(t, saved, "open_with")
}

func TestSaveKeepsFileValueUnderEnvironmentOverride(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("start_day: friday\n"), 0644))
	t.Setenv("WEEKLY_START_DAY", "Sunday")

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, models.Sunday, s.StartDay)

	require.NoError(t, NewTab(store, &s, nil).OnChange("open-with", "none"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "start_day: friday")
	assert.Contains(t, string(data), "open_with: none")

	// An explicit change to an overridden key is saved
	require.NoError(t, NewTab(store, &s, nil).OnChange("start-day", "tuesday"))
	data, err = os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "start_day: Tuesday")
}

func newTestTab(t *testing.T) (*Tab, *models.Settings, *vault.Vault) {
	t.Helper()
	store, _ := newTestStore(t)

	v, err := vault.New(t.TempDir())
	require.NoError(t, err)

	s := models.DefaultSettings()
	tab := NewTab(store, &s, v)
	tab.now = func() time.Time { return time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC) }
	return tab, &s, v
}

func TestOnChangePersists(t *testing.T) {
	tab, s, _ := newTestTab(t)

	require.NoError(t, tab.OnChange("start-day", "sunday"))
	assert.Equal(t, models.Sunday, s.StartDay)

	loaded, err := tab.store.Load()
	require.NoError(t, err)
	assert.Equal(t, models.Sunday, loaded.StartDay)
}

func TestOnChangeValidation(t *testing.T) {
	tab, s, v := newTestTab(t)

	require.Error(t, tab.OnChange("start-day", "someday"))
	assert.Equal(t, models.Monday, s.StartDay)

	require.ErrorIs(t, tab.OnChange("template-path", "Templates/Missing.md"), vault.ErrNotFound)

	require.NoError(t, v.Create("Templates/Weekly.md", "# {{title}}"))
	require.NoError(t, tab.OnChange("template_path", "/Templates//Weekly.md"))
	assert.Equal(t, "Templates/Weekly.md", s.TemplatePath)

	require.NoError(t, tab.OnChange("template-path", ""))
	assert.Equal(t, "", s.TemplatePath)

	require.NoError(t, tab.OnChange("title-format", ""))
	assert.Equal(t, "YYYY-MM-DD", s.TitleFormat)

	require.NoError(t, tab.OnChange("folder", "/Journal/"))
	assert.Equal(t, "Journal", s.Folder)
	require.NoError(t, tab.OnChange("folder", "/"))
	assert.Equal(t, "", s.Folder)

	require.Error(t, tab.OnChange("open-with", "browser"))
	require.NoError(t, tab.OnChange("open-with", "Obsidian"))
	assert.Equal(t, models.OpenModeObsidian, s.OpenWith)

	require.ErrorIs(t, tab.OnChange("colour", "blue"), ErrUnknownSetting)
}

func TestDisplay(t *testing.T) {
	tab, s, v := newTestTab(t)
	s.TitleFormat = "GGGG-[W]WW"
	require.NoError(t, v.Create("Templates/Weekly.md", ""))
	require.NoError(t, v.Create(".obsidian/templates.json", `{"folder":"Templates"}`))

	var buf bytes.Buffer
	require.NoError(t, tab.Display(&buf))
	out := buf.String()

	assert.Contains(t, out, "Date format (title-format): GGGG-[W]WW")
	assert.Contains(t, out, "2024-W11")
	assert.Contains(t, out, FormatReferenceURL)
	assert.Contains(t, out, "No template selected")
	assert.Contains(t, out, "- Templates/Weekly.md")
	assert.Contains(t, out, "Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday")
}

func TestDisplaySampleMatchesNoteTitle(t *testing.T) {
	tab, s, _ := newTestTab(t)
	s.TitleFormat = "YYYY: [Week] W?"

	var buf bytes.Buffer
	require.NoError(t, tab.Display(&buf))
	out := buf.String()

	assert.Contains(t, out, "2024 Week 11")
	assert.NotContains(t, out, "2024: Week")
	assert.NotContains(t, out, "Week 11?")
}

func TestDisplayFallsBackToAllMarkdownFiles(t *testing.T) {
	tab, _, v := newTestTab(t)
	require.NoError(t, v.Create("inbox.md", ""))

	var buf bytes.Buffer
	require.NoError(t, tab.Display(&buf))
	out := buf.String()

	assert.Contains(t, out, "Core Templates plugin configuration was not found.")
	assert.Contains(t, out, "- inbox.md")
}
