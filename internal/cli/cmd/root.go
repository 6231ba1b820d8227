// Package cmd provides Cobra CLI commands for dockyard.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/phreebee/dockyard/internal/cli"
)

var (
	app     *cli.App
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "dockyard",
		Short: "Docking layout engine for editor shells",
		Long: `Dockyard arranges tool panels along the five sides of a document
window: left, right, bottom, tools and options.

Panels follow the focused document, remember their size and position,
and their arrangement is saved per session.

Use 'dockyard shell' for an interactive preview of the dock, or the
layout subcommands to inspect and move saved layouts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "path", "check", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{LogToFile: cmd.Name() == "shell"})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.Version = version
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the version reported by --version (called from main.go before Execute).
func SetBuildInfo(v, commit, buildDate string) {
	version = v
	rootCmd.Version = v
	rootCmd.SetVersionTemplate(fmt.Sprintf("dockyard {{.Version}}\ncommit: %s\nbuilt: %s\ngo: %s\n",
		commit, buildDate, runtime.Version()))
}
