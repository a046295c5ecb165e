package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-weekly/pkg/settings"
)

var configUlog = grovelogging.NewUnifiedLogger("grove-weekly.cmd.config")

func NewConfigCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change weekly note settings",
		Long: `Show the current settings, the available template files and a sample of
the title format.

Examples:
  weekly config
  weekly config set start-day sunday
  weekly config set title-format "GGGG-[W]WW"
  weekly config set template-path Templates/Weekly.md
  weekly config path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newTab(rt).Display(os.Stdout)
		},
	}

	cmd.AddCommand(newConfigSetCmd(rt))
	cmd.AddCommand(newConfigPathCmd(rt))

	return cmd
}

func newConfigSetCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Change a setting",
		Long:      fmt.Sprintf("Change a setting and save it immediately.\n\nKeys: %v", settings.Keys),
		Args:      cobra.ExactArgs(2),
		ValidArgs: settings.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newTab(rt).OnChange(args[0], args[1]); err != nil {
				return fmt.Errorf("set %s: %w", args[0], err)
			}
			configUlog.Success("Setting saved").
				Field("key", args[0]).
				Field("value", args[1]).
				Field("path", rt.Store.Path()).
				Pretty(fmt.Sprintf("Saved %s = %q to %s", args[0], args[1], rt.Store.Path())).
				PrettyOnly().
				Emit()
			return nil
		},
	}
}

func newConfigPathCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(rt.Store.Path())
			return nil
		},
	}
}

func newTab(rt *Runtime) *settings.Tab {
	return settings.NewTab(rt.Store, &rt.Settings, rt.Vault)
}
