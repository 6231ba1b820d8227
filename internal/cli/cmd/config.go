package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phreebee/dockyard/internal/cli/styles"
	"github.com/phreebee/dockyard/internal/infrastructure/config"
)

var configSchemaWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show where dockyard keeps its files, check the configuration and print its JSON schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration, data and log file locations",
	RunE:  runConfigPath,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the configuration file",
	Long: `Load the configuration file the way the dock does and report problems.

Malformed side sizes fall back to their defaults and are listed as warnings.
An invalid panel roster is an error.`,
	RunE: runConfigCheck,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	Long: `Print the JSON schema describing config.toml.

Editors with TOML language servers can use it for completion and validation.
With --write the schema is stored next to the configuration file instead.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().BoolVarP(&configSchemaWrite, "write", "w", false, "write the schema file instead of printing it")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	theme := styles.NewTheme()
	paths := []struct {
		icon  string
		label string
		get   func() (string, error)
	}{
		{styles.IconConfig, "config", config.GetConfigFile},
		{styles.IconInfo, "schema", config.GetSchemaFile},
		{styles.IconDatabase, "database", config.GetDatabaseFile},
		{styles.IconLogs, "log", config.GetLogFile},
	}
	for _, p := range paths {
		path, err := p.get()
		if err != nil {
			return fmt.Errorf("resolve %s path: %w", p.label, err)
		}
		fmt.Printf("%s %-9s %s\n", theme.Highlight.Render(p.icon), p.label, path)
	}
	return nil
}

func runConfigCheck(_ *cobra.Command, _ []string) error {
	theme := styles.NewTheme()

	mgr, err := config.NewManager()
	if err != nil {
		return err
	}
	if err := mgr.Load(); err != nil {
		fmt.Println(theme.ErrorStyle.Render(styles.IconX + " " + err.Error()))
		return fmt.Errorf("configuration is invalid")
	}

	for _, w := range mgr.Warnings() {
		fmt.Println(theme.WarningStyle.Render(styles.IconWarning) + " " + w)
	}
	cfg := mgr.Get()
	fmt.Printf("%s %s is valid (%d panels)\n",
		theme.SuccessStyle.Render(styles.IconCheck),
		mgr.GetConfigFile(),
		len(cfg.Panels),
	)
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	if configSchemaWrite {
		if err := config.GenerateSchemaFile(); err != nil {
			return err
		}
		path, err := config.GetSchemaFile()
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(schema, '\n'))
	return err
}
