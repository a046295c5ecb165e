package main

import (
	"fmt"
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-weekly/cmd"
)

func main() {
	rt := &cmd.Runtime{}

	rootCmd := cli.NewStandardCommand(
		"weekly",
		"Create or open this week's journal note",
	)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&rt.VaultOverride, "vault", "", "Path to the vault (defaults to settings, grove.yml, then the current directory)")
	rootCmd.PersistentFlags().StringVar(&rt.SettingsPath, "settings", "", "Settings file (default is $HOME/.config/weekly/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rt.LogLevel, "log-level", "", "Diagnostics level (debug, info, warn, error)")

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		return rt.Load()
	}
	rootCmd.PersistentPostRunE = func(c *cobra.Command, args []string) error {
		return rt.Close()
	}

	// Running 'weekly' on its own is the same as 'weekly open'
	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = func(c *cobra.Command, args []string) error {
		return cmd.RunOpen(c.Context(), rt, false)
	}

	rootCmd.AddCommand(cmd.NewOpenCmd(rt))
	rootCmd.AddCommand(cmd.NewWatchCmd(rt))
	rootCmd.AddCommand(cmd.NewListCmd(rt))
	rootCmd.AddCommand(cmd.NewConfigCmd(rt))
	rootCmd.AddCommand(cmd.NewTemplatesCmd(rt))
	rootCmd.AddCommand(cmd.NewDoctorCmd(rt))
	rootCmd.AddCommand(cmd.NewObsidianCmd(rt))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR]: %v\n", err)
		_ = rt.Close()
		os.Exit(1)
	}
}
