package vault

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"

	"github.com/mattsolo1/grove-weekly/pkg/models"
)

// Opener shows a vault file to the user
type Opener interface {
	Open(ctx context.Context, p string) error
}

// NewOpener returns the opener for mode
func NewOpener(mode models.OpenMode, v *Vault, editor string) (Opener, error) {
	switch mode {
	case models.OpenModeEditor, "":
		return &EditorOpener{Vault: v, Editor: editor}, nil
	case models.OpenModeObsidian:
		return &ObsidianOpener{Vault: v}, nil
	case models.OpenModeNone:
		return NoopOpener{}, nil
	}
	return nil, fmt.Errorf("unknown open mode %q", mode)
}

// EditorOpener runs an editor attached to the terminal
type EditorOpener struct {
	Vault  *Vault
	Editor string
}

func (o *EditorOpener) Open(ctx context.Context, p string) error {
	abs, err := o.Vault.Abs(p)
	if err != nil {
		return err
	}

	editor := o.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim" // fallback
	}

	cmd := exec.CommandContext(ctx, editor, abs)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// ObsidianOpener asks the desktop to open an obsidian://open URI
type ObsidianOpener struct {
	Vault *Vault
}

func (o *ObsidianOpener) Open(ctx context.Context, p string) error {
	uri := ObsidianURI(o.Vault.Name(), p)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", uri)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", uri)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("open %s: %w: %s", uri, err, out)
	}
	return nil
}

// ObsidianURI builds the URI that opens file p of the named vault
func ObsidianURI(vaultName, p string) string {
	return fmt.Sprintf("obsidian://open?vault=%s&file=%s",
		url.PathEscape(vaultName), url.PathEscape(NormalizePath(p)))
}

// NoopOpener leaves opening to the caller
type NoopOpener struct{}

func (NoopOpener) Open(context.Context, string) error { return nil }
