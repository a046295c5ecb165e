package models

// OpenMode defines how a weekly note is opened once it exists
type OpenMode string

const (
	// OpenModeEditor launches the configured editor (falls back to $EDITOR, then vim)
	OpenModeEditor OpenMode = "editor"

	// OpenModeObsidian hands an obsidian://open URI to the platform opener
	OpenModeObsidian OpenMode = "obsidian"

	// OpenModeNone only prints the path
	OpenModeNone OpenMode = "none"
)

// Settings is the persisted configuration record
type Settings struct {
	StartDay     Weekday  `mapstructure:"start_day" yaml:"start_day"`
	TitleFormat  string   `mapstructure:"title_format" yaml:"title_format"`
	TemplatePath string   `mapstructure:"template_path" yaml:"template_path"`
	Folder       string   `mapstructure:"folder" yaml:"folder,omitempty"`
	OpenWith     OpenMode `mapstructure:"open_with" yaml:"open_with"`
	Editor       string   `mapstructure:"editor" yaml:"editor,omitempty"`
	Vault        string   `mapstructure:"vault" yaml:"vault,omitempty"`
	DataDir      string   `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
}

// DefaultTitleFormat is used when no title format has been configured
const DefaultTitleFormat = "YYYY-MM-DD"

// DefaultSettings returns the settings every loaded record is merged over
func DefaultSettings() Settings {
	return Settings{
		StartDay:     Monday,
		TitleFormat:  DefaultTitleFormat,
		TemplatePath: "",
		OpenWith:     OpenModeEditor,
	}
}

// TemplatesConfig mirrors <configDir>/templates.json of the core Templates plugin.
// Any field may be empty.
type TemplatesConfig struct {
	Folder     string `json:"folder"`
	DateFormat string `json:"dateFormat"`
	TimeFormat string `json:"timeFormat"`
}

// IsValidOpenMode reports whether m is a known open mode
func IsValidOpenMode(m OpenMode) bool {
	switch m {
	case OpenModeEditor, OpenModeObsidian, OpenModeNone:
		return true
	}
	return false
}
