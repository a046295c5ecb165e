// Package settings loads, persists and edits the weekly note settings.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-weekly/pkg/models"
	"github.com/mattsolo1/grove-weekly/pkg/week"
)

// EnvPrefix prefixes environment overrides, e.g. WEEKLY_START_DAY=Sunday
const EnvPrefix = "WEEKLY"

// DefaultPath returns $HOME/.config/weekly/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "weekly", "config.yaml"), nil
}

// DefaultDataDir returns $HOME/.local/share/weekly
func DefaultDataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "weekly")
}

// Store reads and writes the settings file. It remembers what the file itself holds so
// that saving never writes defaults or environment overrides back.
type Store struct {
	path string
	log  logrus.FieldLogger
	file map[string]interface{}
}

// NewStore creates a store for the file at path, or the default path when empty
func NewStore(path string, log logrus.FieldLogger) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{path: path, log: log}, nil
}

// Path is the settings file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file and environment merged over the defaults. A missing
// file is not an error. Invalid values are replaced by their defaults with a warning.
func (s *Store) Load() (models.Settings, error) {
	defaults := models.DefaultSettings()

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("start_day", string(defaults.StartDay))
	v.SetDefault("title_format", defaults.TitleFormat)
	v.SetDefault("template_path", defaults.TemplatePath)
	v.SetDefault("folder", "")
	v.SetDefault("open_with", string(defaults.OpenWith))
	v.SetDefault("editor", os.Getenv("EDITOR"))
	v.SetDefault("vault", "")
	v.SetDefault("data_dir", DefaultDataDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return defaults, fmt.Errorf("read settings %s: %w", s.path, err)
		}
	}

	file, err := readFileValues(s.path)
	if err != nil {
		return defaults, err
	}
	s.file = file

	var loaded models.Settings
	if err := v.Unmarshal(&loaded); err != nil {
		return defaults, fmt.Errorf("decode settings: %w", err)
	}

	day, err := week.ParseWeekday(string(loaded.StartDay))
	if err != nil {
		s.log.WithError(err).Warnf("Invalid start_day in %s, using %s", s.path, defaults.StartDay)
		day = defaults.StartDay
	}
	loaded.StartDay = day

	if loaded.TitleFormat == "" {
		loaded.TitleFormat = defaults.TitleFormat
	}

	if !models.IsValidOpenMode(loaded.OpenWith) {
		s.log.Warnf("Invalid open_with %q in %s, using %s", loaded.OpenWith, s.path, defaults.OpenWith)
		loaded.OpenWith = defaults.OpenWith
	}

	return loaded, nil
}

// Save writes the keys named in changed, taking their values from settings. Every other
// key keeps the value the file had when it was loaded; keys the file never had stay unset.
func (s *Store) Save(settings models.Settings, changed ...string) error {
	current, err := settingsValues(settings)
	if err != nil {
		return err
	}

	values := make(map[string]interface{}, len(s.file)+len(changed))
	for k, v := range s.file {
		values[k] = v
	}
	for _, key := range changed {
		if v, ok := current[key]; ok {
			values[key] = v
		} else {
			delete(values, key)
		}
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("ensure settings dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	s.file = values
	return nil
}

// readFileValues returns the keys set in the settings file alone, without defaults or
// environment overrides. A missing file holds no keys.
func readFileValues(path string) (map[string]interface{}, error) {
	fv := viper.New()
	fv.SetConfigFile(path)
	fv.SetConfigType("yaml")
	if err := fv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	return fv.AllSettings(), nil
}

// settingsValues maps settings to their file keys. Empty omitempty fields are absent.
func settingsValues(settings models.Settings) (map[string]interface{}, error) {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	values := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return values, nil
}
