package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	coreconfig "github.com/mattsolo1/grove-core/config"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-weekly/pkg/index"
	"github.com/mattsolo1/grove-weekly/pkg/models"
	"github.com/mattsolo1/grove-weekly/pkg/service"
	"github.com/mattsolo1/grove-weekly/pkg/settings"
	"github.com/mattsolo1/grove-weekly/pkg/vault"
)

// WeeklyExtension is the 'weekly' section of grove.yml
type WeeklyExtension struct {
	Vault string `yaml:"vault"`
}

// Runtime holds everything a command needs. It is filled once per invocation by Load.
type Runtime struct {
	SettingsPath  string
	VaultOverride string
	LogLevel      string

	Log      *logrus.Logger
	Store    *settings.Store
	Settings models.Settings
	Vault    *vault.Vault
	Service  *service.Service

	vaultErr error
}

// Load reads settings, resolves the vault and wires the service
func (rt *Runtime) Load() error {
	rt.Log = logrus.New()
	rt.Log.SetOutput(os.Stderr)
	rt.Log.SetLevel(logrus.WarnLevel) // Keep it quiet unless there are issues.
	if rt.LogLevel != "" {
		level, err := logrus.ParseLevel(rt.LogLevel)
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		rt.Log.SetLevel(level)
	}

	store, err := settings.NewStore(rt.SettingsPath, rt.Log)
	if err != nil {
		return err
	}
	rt.Store = store

	rt.Settings, err = store.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	root, err := rt.resolveVaultRoot()
	if err != nil {
		rt.vaultErr = err
		return nil
	}
	rt.Vault, rt.vaultErr = vault.New(root)
	if rt.vaultErr != nil {
		return nil
	}

	opener, err := vault.NewOpener(rt.Settings.OpenWith, rt.Vault, rt.Settings.Editor)
	if err != nil {
		return err
	}

	opts := []service.Option{service.WithLogger(rt.Log)}
	if rt.Settings.DataDir != "" {
		idx, err := index.NewIndex(filepath.Join(rt.Settings.DataDir, "weekly.db"))
		if err != nil {
			// Non-fatal, notes are still created without history.
			rt.Log.WithError(err).Warn("failed to open weekly note history")
		} else {
			opts = append(opts, service.WithIndex(idx))
		}
	}
	rt.Service = service.ForVault(rt.Vault, opener, opts...)

	return nil
}

// RequireService returns the service or the reason the vault is unavailable
func (rt *Runtime) RequireService() (*service.Service, error) {
	if rt.Service == nil {
		if rt.vaultErr != nil {
			return nil, fmt.Errorf("open vault: %w", rt.vaultErr)
		}
		return nil, fmt.Errorf("open vault: no vault configured")
	}
	return rt.Service, nil
}

// Close releases resources held by the service
func (rt *Runtime) Close() error {
	if rt.Service != nil {
		return rt.Service.Close()
	}
	return nil
}

// resolveVaultRoot picks the vault from the flag, the settings, grove.yml, then the
// current directory, in that order.
func (rt *Runtime) resolveVaultRoot() (string, error) {
	if rt.VaultOverride != "" {
		return expandHome(rt.VaultOverride)
	}
	if rt.Settings.Vault != "" {
		return expandHome(rt.Settings.Vault)
	}

	cfg, err := coreconfig.LoadDefault()
	if err != nil {
		// Non-fatal, proceed without grove config.
		rt.Log.Debugf("could not load grove config: %v", err)
	} else {
		var ext WeeklyExtension
		if err := cfg.UnmarshalExtension("weekly", &ext); err == nil && ext.Vault != "" {
			return expandHome(ext.Vault)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

func expandHome(p string) (string, error) {
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}
	return p, nil
}
