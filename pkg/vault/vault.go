// Package vault provides file storage over a markdown vault directory. All paths
// passed to a Vault are vault-relative and slash-separated.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultConfigDir is the per-vault configuration folder
const DefaultConfigDir = ".obsidian"

var (
	// ErrNotFound is returned when a file or folder does not exist
	ErrNotFound = errors.New("not found")
	// ErrExists is returned when creating a file that is already present
	ErrExists = errors.New("already exists")
	// ErrOutsideVault is returned for paths that escape the vault root
	ErrOutsideVault = errors.New("path is outside the vault")
)

var (
	separatorRun = regexp.MustCompile(`[\\/]+`)
	edgeSlashes  = regexp.MustCompile(`^/+|/+$`)
	oddSpaces    = regexp.MustCompile("\u00a0|\u202f")
)

// NormalizePath turns user or format supplied text into a canonical vault path:
// separators become single forward slashes, leading and trailing slashes are dropped,
// non-breaking spaces become spaces and the result is NFC normalized.
func NormalizePath(p string) string {
	p = separatorRun.ReplaceAllString(p, "/")
	p = edgeSlashes.ReplaceAllString(p, "")
	if p == "" {
		p = "/"
	}
	p = oddSpaces.ReplaceAllString(p, " ")
	return norm.NFC.String(p)
}

// Vault is a directory of markdown notes
type Vault struct {
	Root      string
	ConfigDir string
}

// New creates a vault rooted at root. The directory must exist.
func New(root string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("vault directory %s: %w", abs, ErrNotFound)
		}
		return nil, fmt.Errorf("stat vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path %s is not a directory", abs)
	}

	return &Vault{Root: abs, ConfigDir: DefaultConfigDir}, nil
}

// Name is the vault's display name, the base name of its root directory
func (v *Vault) Name() string {
	return filepath.Base(v.Root)
}

// Abs maps a vault path onto the filesystem
func (v *Vault) Abs(p string) (string, error) {
	p = NormalizePath(p)
	if p == "/" {
		return v.Root, nil
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%s: %w", p, ErrOutsideVault)
		}
	}
	return filepath.Join(v.Root, filepath.FromSlash(p)), nil
}

// Exists reports whether a regular file exists at p
func (v *Vault) Exists(p string) (bool, error) {
	abs, err := v.Abs(p)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", p, err)
	}
	return !info.IsDir(), nil
}

// FolderExists reports whether a directory exists at p
func (v *Vault) FolderExists(p string) bool {
	abs, err := v.Abs(p)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.IsDir()
}

// Read returns the content of the file at p
func (v *Vault) Read(p string) (string, error) {
	abs, err := v.Abs(p)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("read %s: %w", p, ErrNotFound)
		}
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	return string(data), nil
}

// Create writes a new file at p, creating parent folders as needed.
// It fails with ErrExists if the file is already present.
func (v *Vault) Create(p, content string) error {
	abs, err := v.Abs(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("create %s: %w", p, ErrExists)
		}
		return fmt.Errorf("create %s: %w", p, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", p, err)
	}
	return f.Close()
}

// ConfigPath returns the vault path of a file inside the configuration folder
func (v *Vault) ConfigPath(name string) string {
	return NormalizePath(path.Join(v.ConfigDir, name))
}

// MarkdownFiles lists vault paths of all .md files below folder ("" or "/" for the
// whole vault), skipping the configuration folder and other hidden directories.
func (v *Vault) MarkdownFiles(folder string) ([]string, error) {
	base, err := v.Abs(folder)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if d.IsDir() {
			if p != base && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			rel, err := filepath.Rel(v.Root, p)
			if err != nil {
				return nil
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", folder, err)
	}

	sort.Strings(files)
	return files, nil
}
