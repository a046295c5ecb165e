package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-weekly/pkg/models"
	"github.com/mattsolo1/grove-weekly/pkg/service"
)

var watchUlog = grovelogging.NewUnifiedLogger("grove-weekly.cmd.watch")

func NewWatchCmd(rt *Runtime) *cobra.Command {
	var (
		schedule string
		skipNow  bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Create each week's note on a schedule",
		Long: `Keep running and create the weekly note whenever a new week begins.

By default the note is created at 00:05 on the configured start day, and once
immediately on startup. Notes are never opened by the watcher. Stop with Ctrl+C.

Examples:
  weekly watch                         # Create notes at 00:05 on the start day
  weekly watch --cron "0 7 * * 1"      # Create notes at 07:00 every Monday
  weekly watch --skip-now              # Wait for the first scheduled tick`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.RequireService()
			if err != nil {
				return err
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			spec := schedule
			if spec == "" {
				spec = service.WeeklySchedule(rt.Settings.StartDay)
			}
			watchUlog.Info("Watching for new weeks").
				Field("schedule", spec).
				Pretty(fmt.Sprintf("Watching for new weeks (schedule %q), press Ctrl+C to stop", spec)).
				PrettyOnly().
				Log(ctx)

			return s.Watch(ctx, rt.Settings, spec, !skipNow, func(note *models.WeeklyNote, err error) {
				if err != nil || note == nil {
					return
				}
				if note.Created {
					watchUlog.Success("Weekly note created").
						Field("path", note.Path).
						Pretty(fmt.Sprintf("Created weekly note: %s", note.Path)).
						PrettyOnly().
						Emit()
				}
			})
		},
	}

	cmd.Flags().StringVar(&schedule, "cron", "", "Cron expression (minute hour dom month dow) overriding the default schedule")
	cmd.Flags().BoolVar(&skipNow, "skip-now", false, "Don't run immediately on startup")

	return cmd
}
