package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-weekly/pkg/index"
	"github.com/mattsolo1/grove-weekly/pkg/models"
	"github.com/mattsolo1/grove-weekly/pkg/template"
	"github.com/mattsolo1/grove-weekly/pkg/vault"
	"github.com/mattsolo1/grove-weekly/pkg/week"
)

// Storage is the vault file access the weekly note flow needs
type Storage interface {
	Exists(p string) (bool, error)
	Read(p string) (string, error)
	Create(p, content string) error
}

// Recorder keeps the history of created notes
type Recorder interface {
	RecordNote(ctx context.Context, note *models.WeeklyNote, content string) error
}

// Service creates and opens weekly notes
type Service struct {
	storage    Storage
	opener     vault.Opener
	recorder   Recorder
	history    *index.Index
	vaultName  string
	configPath string
	log        logrus.FieldLogger
	now        func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the diagnostics logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRecorder records every created note
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithIndex records created notes in idx and serves History from it
func WithIndex(idx *index.Index) Option {
	return func(s *Service) {
		s.history = idx
		s.recorder = idx
	}
}

// WithVaultName tags history records with the vault they belong to
func WithVaultName(name string) Option {
	return func(s *Service) {
		s.vaultName = name
	}
}

// WithTemplatesConfig sets the vault path of the companion templates.json
func WithTemplatesConfig(p string) Option {
	return func(s *Service) {
		s.configPath = p
	}
}

// New creates a service over storage that shows notes with opener
func New(storage Storage, opener vault.Opener, options ...Option) *Service {
	s := &Service{
		storage:    storage,
		opener:     opener,
		configPath: vault.DefaultConfigDir + "/" + template.ConfigFile,
		log:        logrus.StandardLogger(),
		now:        time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// ForVault wires a service to a filesystem vault
func ForVault(v *vault.Vault, opener vault.Opener, options ...Option) *Service {
	base := []Option{
		WithVaultName(v.Name()),
		WithTemplatesConfig(v.ConfigPath(template.ConfigFile)),
	}
	return New(v, opener, append(base, options...)...)
}

type runOptions struct {
	open bool
}

// RunOption adjusts a single OpenWeeklyNote call
type RunOption func(*runOptions)

// WithoutOpen creates the note if needed but does not open it
func WithoutOpen() RunOption {
	return func(o *runOptions) {
		o.open = false
	}
}

// OpenWeeklyNote opens this week's note, creating it from the template first when it
// does not exist. An existing note is never rewritten. Any storage failure aborts the
// run; nothing is retried or rolled back.
func (s *Service) OpenWeeklyNote(ctx context.Context, settings models.Settings, options ...RunOption) (*models.WeeklyNote, error) {
	opts := &runOptions{open: true}
	for _, opt := range options {
		opt(opts)
	}

	note, err := s.openWeeklyNote(ctx, settings, opts)
	if err != nil {
		s.log.WithError(err).Debug("weekly note run failed")
		return nil, err
	}
	return note, nil
}

func (s *Service) openWeeklyNote(ctx context.Context, settings models.Settings, opts *runOptions) (*models.WeeklyNote, error) {
	now := s.now()
	note := s.locate(now, settings)
	notePath, title := note.Path, note.Title
	log := s.log.WithFields(logrus.Fields{"path": notePath, "week_start": note.WeekStart.Format("2006-01-02")})

	exists, err := s.storage.Exists(notePath)
	if err != nil {
		return nil, fmt.Errorf("check weekly note: %w", err)
	}

	if !exists {
		content, err := s.renderContent(settings, title, now)
		if err != nil {
			return nil, fmt.Errorf("create weekly note: %w", err)
		}
		if err := s.storage.Create(notePath, content); err != nil {
			return nil, fmt.Errorf("create weekly note: %w", err)
		}
		note.Created = true
		note.CreatedAt = now
		log.Debug("created weekly note")

		if s.recorder != nil {
			if err := s.recorder.RecordNote(ctx, note, content); err != nil {
				log.WithError(err).Warn("failed to record weekly note")
			}
		}
	} else {
		log.Debug("weekly note exists")
	}

	if opts.open {
		if err := s.opener.Open(ctx, notePath); err != nil {
			return nil, fmt.Errorf("open weekly note: %w", err)
		}
	}

	return note, nil
}

// Locate resolves this week's note without reading or writing the vault
func (s *Service) Locate(settings models.Settings) *models.WeeklyNote {
	return s.locate(s.now(), settings)
}

func (s *Service) locate(now time.Time, settings models.Settings) *models.WeeklyNote {
	weekStart := week.ResolveWeekStart(now, settings.StartDay)
	title := FormatTitle(weekStart, settings.TitleFormat)
	return &models.WeeklyNote{
		Path:      NotePath(settings.Folder, title),
		Title:     title,
		WeekStart: weekStart,
		Vault:     s.vaultName,
	}
}

// renderContent loads the configured template and expands it for title
func (s *Service) renderContent(settings models.Settings, title string, now time.Time) (string, error) {
	if settings.TemplatePath == "" {
		return "", nil
	}

	raw, err := s.storage.Read(settings.TemplatePath)
	if err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			s.log.WithField("template", settings.TemplatePath).Warn("Template file not found, creating an empty weekly note")
			return "", nil
		}
		return "", fmt.Errorf("read template: %w", err)
	}
	if raw == "" {
		return "", nil
	}

	cfg, err := template.LoadConfig(s.storage, s.configPath)
	if err != nil {
		s.log.WithError(err).Warn("Unable to read core templates config, using default date and time formats")
	}
	dateFormat, timeFormat := template.ResolveFormats(cfg)

	return template.Expand(raw, title, dateFormat, timeFormat, now), nil
}

// History lists recorded weekly notes of this vault, newest first
func (s *Service) History(ctx context.Context, query string, limit int) ([]*models.WeeklyNote, error) {
	if s.history == nil {
		return nil, errors.New("history index is not available")
	}
	opts := &index.Options{Vault: s.vaultName, Limit: limit}
	if query != "" {
		return s.history.Search(ctx, query, opts)
	}
	return s.history.List(ctx, opts)
}

// Close releases the history index
func (s *Service) Close() error {
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}
