package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-weekly/pkg/template"
)

func NewDoctorCmd(rt *Runtime) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the weekly note setup for common issues",
		Long: `The doctor command checks the vault, the template settings and the
history database, and reports where this week's note will go.

Issues it can detect:
- No usable vault directory
- Unreadable core Templates plugin configuration
- A template path that no longer exists (fixable)
- An unavailable history database`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			_, err := RunDoctor(ctx, rt, fix, os.Stdout)
			return err
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Automatically fix issues")

	return cmd
}

// RunDoctor prints a health report to w and returns the number of issues left
func RunDoctor(ctx context.Context, rt *Runtime, fix bool, w io.Writer) (int, error) {
	fmt.Fprintln(w, "🏥 Running weekly doctor...")
	fmt.Fprintln(w)

	issues := 0
	fixed := 0

	s, err := rt.RequireService()
	if err != nil {
		fmt.Fprintf(w, "❗ %v\n", err)
		fmt.Fprintln(w, "   💡 Pass --vault or run 'weekly config set vault <dir>'")
		return 1, nil
	}
	fmt.Fprintf(w, "✅ Vault: %s\n", rt.Vault.Root)

	cfg, cfgErr := template.LoadConfig(rt.Vault, rt.Vault.ConfigPath(template.ConfigFile))
	switch {
	case cfgErr != nil:
		issues++
		fmt.Fprintf(w, "❗ Templates config is unreadable: %v\n", cfgErr)
		fmt.Fprintln(w, "   💡 Default date and time formats will be used")
	case cfg == nil:
		fmt.Fprintln(w, "✅ Templates config: not present, using default formats")
	default:
		dateFormat, timeFormat := template.ResolveFormats(cfg)
		fmt.Fprintf(w, "✅ Templates config: date %q, time %q\n", dateFormat, timeFormat)
	}

	if tp := rt.Settings.TemplatePath; tp != "" {
		exists, err := rt.Vault.Exists(tp)
		if err != nil {
			return issues, fmt.Errorf("check template: %w", err)
		}
		if exists {
			fmt.Fprintf(w, "✅ Template: %s\n", tp)
		} else {
			issues++
			fmt.Fprintf(w, "❗ Template %s was not found, new notes will be empty\n", tp)
			if fix {
				if err := newTab(rt).OnChange("template-path", ""); err != nil {
					return issues, fmt.Errorf("clear template path: %w", err)
				}
				fixed++
				fmt.Fprintln(w, "   ✅ Cleared the template path")
			} else {
				fmt.Fprintln(w, "   💡 Run with --fix to clear it, or pick one with 'weekly templates'")
			}
		}
	} else {
		fmt.Fprintln(w, "✅ Template: none, new notes start empty")
	}

	note := s.Locate(rt.Settings)
	exists, err := rt.Vault.Exists(note.Path)
	if err != nil {
		return issues, fmt.Errorf("check weekly note: %w", err)
	}
	state := "will be created"
	if exists {
		state = "exists"
	}
	fmt.Fprintf(w, "✅ This week (%s): %s %s\n", note.WeekStart.Format("Mon 2006-01-02"), note.Path, state)

	if _, err := s.History(ctx, "", 1); err != nil {
		issues++
		fmt.Fprintf(w, "❗ History: %v\n", err)
		fmt.Fprintln(w, "   💡 Check that the data_dir setting points to a writable directory")
	} else {
		fmt.Fprintln(w, "✅ History database is available")
	}

	remaining := issues - fixed
	if issues == 0 {
		fmt.Fprintln(w, "\n✨ No issues found! Your weekly note setup is healthy.")
	} else {
		fmt.Fprintf(w, "\n📊 Summary: Found %d issue(s)", issues)
		if fix {
			fmt.Fprintf(w, ", fixed %d", fixed)
		}
		fmt.Fprintln(w)
	}
	return remaining, nil
}
