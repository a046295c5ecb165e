package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-weekly/pkg/service"
)

var openUlog = grovelogging.NewUnifiedLogger("grove-weekly.cmd.open")

func NewOpenCmd(rt *Runtime) *cobra.Command {
	var noOpen bool

	cmd := &cobra.Command{
		Use:     "open",
		Aliases: []string{"create", "new"},
		Short:   "Create or open this week's note",
		Long: `Open the note for the current week, creating it from the configured
template first if it does not exist yet.

The week begins on the configured start day. The note is named after the
week's first day rendered with the title format, inside the configured folder.
An existing note is opened as is and never overwritten.

Examples:
  weekly open                      # Create or open this week's note
  weekly open --no-open            # Only make sure the note exists
  weekly --vault ~/notes open      # Use a specific vault`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunOpen(cmd.Context(), rt, noOpen)
		},
	}

	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Create the note if needed but don't open it")

	return cmd
}

// RunOpen is the create-or-open action shared by the root command and 'open'
func RunOpen(ctx context.Context, rt *Runtime, noOpen bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := rt.RequireService()
	if err != nil {
		return err
	}

	var opts []service.RunOption
	if noOpen {
		opts = append(opts, service.WithoutOpen())
	}

	note, err := s.OpenWeeklyNote(ctx, rt.Settings, opts...)
	if err != nil {
		return err
	}

	abs, err := rt.Vault.Abs(note.Path)
	if err != nil {
		return err
	}

	if note.Created {
		openUlog.Success("Weekly note created").
			Field("path", abs).
			Field("title", note.Title).
			Field("week_start", note.WeekStart.Format("2006-01-02")).
			Pretty(fmt.Sprintf("Created weekly note: %s", abs)).
			PrettyOnly().
			Emit()
		return nil
	}

	openUlog.Info("Weekly note exists").
		Field("path", abs).
		Field("title", note.Title).
		Pretty(fmt.Sprintf("Weekly note: %s", abs)).
		PrettyOnly().
		Log(ctx)
	return nil
}
