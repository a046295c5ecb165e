package template

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mattsolo1/grove-weekly/pkg/models"
	"github.com/mattsolo1/grove-weekly/pkg/vault"
)

// ConfigFile is the companion Templates plugin configuration inside the config folder
const ConfigFile = "templates.json"

// Reader reads vault files
type Reader interface {
	Read(p string) (string, error)
}

// Lister enumerates vault markdown files and folders
type Lister interface {
	MarkdownFiles(folder string) ([]string, error)
	FolderExists(p string) bool
}

// LoadConfig reads the companion Templates plugin configuration at configPath.
// A missing file yields (nil, nil). Read and parse failures are returned so the caller
// can warn; they never prevent expansion, which then uses the default formats.
func LoadConfig(r Reader, configPath string) (*models.TemplatesConfig, error) {
	raw, err := r.Read(configPath)
	if err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read templates config %s: %w", configPath, err)
	}

	var cfg models.TemplatesConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("parse templates config %s: %w", configPath, err)
	}
	return &cfg, nil
}

// Candidates lists the files that can be chosen as the weekly note template: the
// markdown files of the companion templates folder, or every markdown file in the
// vault when that folder is unknown. notices explains any fallback to the user.
func Candidates(l Lister, cfg *models.TemplatesConfig, cfgErr error) (files []string, notices []string, err error) {
	switch {
	case cfgErr != nil:
		notices = append(notices, "Error while finding core Templates plugin configuration.")
	case cfg == nil:
		notices = append(notices, "Core Templates plugin configuration was not found.")
	case !l.FolderExists(cfg.Folder):
		notices = append(notices, fmt.Sprintf("Templates directory %q was not found.", cfg.Folder))
	default:
		files, err = l.MarkdownFiles(cfg.Folder)
		return files, notices, err
	}

	files, err = l.MarkdownFiles("")
	return files, notices, err
}
