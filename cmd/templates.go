package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-weekly/pkg/template"
)

var templatesUlog = grovelogging.NewUnifiedLogger("grove-weekly.cmd.templates")

func NewTemplatesCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List files that can be used as the weekly note template",
		Long: `List the markdown files of the core Templates plugin folder, or every
markdown file in the vault when that folder is not configured.

Select one with:
  weekly config set template-path <file>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if _, err := rt.RequireService(); err != nil {
				return err
			}

			cfg, cfgErr := template.LoadConfig(rt.Vault, rt.Vault.ConfigPath(template.ConfigFile))
			if cfgErr != nil {
				rt.Log.WithError(cfgErr).Warn("Error while finding core Templates plugin configuration")
			}

			files, notices, err := template.Candidates(rt.Vault, cfg, cfgErr)
			if err != nil {
				return fmt.Errorf("list templates: %w", err)
			}
			for _, notice := range notices {
				templatesUlog.Info(notice).
					Pretty(notice).
					PrettyOnly().
					Log(ctx)
			}

			for _, f := range files {
				marker := " "
				if f == rt.Settings.TemplatePath {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, f)
			}
			return nil
		},
	}

	return cmd
}
