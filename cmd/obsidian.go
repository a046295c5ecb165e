package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-weekly/pkg/vault"
)

func NewObsidianCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "obsidian",
		Short: "Obsidian integration helpers",
		Long:  `Commands for using weekly notes from Obsidian.`,
	}

	cmd.AddCommand(newObsidianURICmd(rt))

	return cmd
}

func newObsidianURICmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "uri",
		Short: "Print the obsidian:// URI of this week's note",
		Long: `Print the URI that opens this week's note in Obsidian. The note is not
created; run 'weekly open --no-open' first if it may be missing.

Examples:
  weekly obsidian uri
  xdg-open "$(weekly obsidian uri)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rt.RequireService()
			if err != nil {
				return err
			}
			note := s.Locate(rt.Settings)
			fmt.Fprintln(cmd.OutOrStdout(), vault.ObsidianURI(rt.Vault.Name(), note.Path))
			return nil
		},
	}
}
