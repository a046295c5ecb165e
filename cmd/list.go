package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-weekly/pkg/models"
)

var listUlog = grovelogging.NewUnifiedLogger("grove-weekly.cmd.list")

func NewListCmd(rt *Runtime) *cobra.Command {
	var (
		listJSON  bool
		listLimit int
		listQuery string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List weekly notes created in this vault",
		Aliases: []string{"ls"},
		Long: `List the weekly notes this tool has created in the current vault, newest
week first.

Examples:
  weekly list                  # Most recent 50 weekly notes
  weekly list --limit 5        # Most recent 5
  weekly list -q retro         # Weekly notes mentioning "retro"
  weekly list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			s, err := rt.RequireService()
			if err != nil {
				return err
			}

			notes, err := s.History(ctx, listQuery, listLimit)
			if err != nil {
				return fmt.Errorf("list weekly notes: %w", err)
			}

			if listJSON {
				if notes == nil {
					notes = []*models.WeeklyNote{}
				}
				data, err := json.MarshalIndent(notes, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal notes to JSON: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			if len(notes) == 0 {
				listUlog.Info("No weekly notes found").
					Field("vault", rt.Vault.Root).
					Pretty("No weekly notes found").
					PrettyOnly().
					Log(ctx)
				return nil
			}

			printNotesTable(notes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum number of notes to show")
	cmd.Flags().StringVarP(&listQuery, "query", "q", "", "Only show notes whose title or content matches")

	return cmd
}

func printNotesTable(notes []*models.WeeklyNote) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "WEEK\tTITLE\tCREATED\tPATH")
	fmt.Fprintln(w, "----------\t-----------------------------\t----------------\t----")

	for _, note := range notes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			note.WeekStart.Format("2006-01-02"),
			truncateString(note.Title, 29),
			note.CreatedAt.Local().Format("2006-01-02 15:04"),
			note.Path)
	}

	w.Flush()
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
