package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-weekly/pkg/models"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "2024-03-11.md", "2024-03-11.md"},
		{"leading and trailing slashes", "/journal/2024-03-11.md/", "journal/2024-03-11.md"},
		{"repeated separators", "journal//weekly\\\\2024.md", "journal/weekly/2024.md"},
		{"backslashes", `journal\weekly\2024.md`, "journal/weekly/2024.md"},
		{"non-breaking spaces", "Week\u00a0of\u202fMarch.md", "Week of March.md"},
		{"nfc", "Cafe\u0301.md", "Caf\u00e9.md"},
		{"empty", "", "/"},
		{"only slashes", "///", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestNewRequiresDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, ErrNotFound)

	file := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = New(file)
	require.Error(t, err)
}

func TestCreateReadExists(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)

	exists, err := v.Exists("journal/2024-03-11.md")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, v.Create("journal/2024-03-11.md", "# Week\n"))

	exists, err = v.Exists("journal/2024-03-11.md")
	require.NoError(t, err)
	assert.True(t, exists)

	content, err := v.Read("/journal//2024-03-11.md")
	require.NoError(t, err)
	assert.Equal(t, "# Week\n", content)

	// Create never overwrites
	err = v.Create("journal/2024-03-11.md", "other")
	require.ErrorIs(t, err, ErrExists)
	content, err = v.Read("journal/2024-03-11.md")
	require.NoError(t, err)
	assert.Equal(t, "# Week\n", content)

	// Folders are not files
	exists, err = v.Exists("journal")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.True(t, v.FolderExists("journal"))
}

func TestReadMissing(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = v.Read("nope.md")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAbsRejectsParentSegments(t *testing.T) {
	v, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = v.Abs("../outside.md")
	require.ErrorIs(t, err, ErrOutsideVault)

	err = v.Create("notes/../../outside.md", "x")
	require.ErrorIs(t, err, ErrOutsideVault)
}

func TestMarkdownFiles(t *testing.T) {
	root := t.TempDir()
	v, err := New(root)
	require.NoError(t, err)

	for _, p := range []string{
		"Templates/Weekly.md",
		"Templates/nested/Retro.md",
		"inbox.md",
		"notes/readme.txt",
		".obsidian/snippets/hidden.md",
	} {
		require.NoError(t, v.Create(p, ""))
	}

	all, err := v.MarkdownFiles("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Templates/Weekly.md", "Templates/nested/Retro.md", "inbox.md"}, all)

	templates, err := v.MarkdownFiles("Templates")
	require.NoError(t, err)
	assert.Equal(t, []string{"Templates/Weekly.md", "Templates/nested/Retro.md"}, templates)
}

func TestConfigPath(t *testing.T) {
	v := &Vault{Root: "/tmp/vault", ConfigDir: DefaultConfigDir}
	assert.Equal(t, ".obsidian/templates.json", v.ConfigPath("templates.json"))
}

func TestObsidianURI(t *testing.T) {
	got := ObsidianURI("My Vault", "journal/2024 W11.md")
	assert.Equal(t, "obsidian://open?vault=My%20Vault&file=journal%2F2024%20W11.md", got)
}

func TestNewOpener(t *testing.T) {
	v := &Vault{Root: "/tmp/vault", ConfigDir: DefaultConfigDir}

	o, err := NewOpener(models.OpenModeEditor, v, "nano")
	require.NoError(t, err)
	assert.IsType(t, &EditorOpener{}, o)

	o, err = NewOpener(models.OpenModeObsidian, v, "")
	require.NoError(t, err)
	assert.IsType(t, &ObsidianOpener{}, o)

	o, err = NewOpener(models.OpenModeNone, v, "")
	require.NoError(t, err)
	assert.NoError(t, o.Open(context.Background(), "anything.md"))

	_, err = NewOpener("browser", v, "")
	require.Error(t, err)
}
