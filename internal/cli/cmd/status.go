package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phreebee/dockyard/internal/cli/styles"
	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/infrastructure/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check configuration, roster and layout store",
	Long: `Status reports what the dock would start with:
- the configuration file and any values that fell back to defaults
- the panel roster per side
- the layout database and its schema version

Examples:
  dockyard status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	theme := app.Theme
	ok := theme.SuccessStyle.Render(styles.IconCheck)
	warn := theme.WarningStyle.Render(styles.IconWarning)
	bad := theme.ErrorStyle.Render(styles.IconX)

	var b strings.Builder
	b.WriteString(theme.Title.Render("dockyard "+app.Version) + "\n\n")

	b.WriteString(theme.Subtitle.Render("Configuration") + "\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", ok, app.ConfigManager.GetConfigFile()))
	for _, w := range app.ConfigManager.Warnings() {
		b.WriteString(fmt.Sprintf("  %s %s\n", warn, w))
	}

	b.WriteString("\n" + theme.Subtitle.Render("Roster") + "\n")
	specs, err := app.Config.PanelSpecs()
	if err != nil {
		b.WriteString(fmt.Sprintf("  %s %v\n", bad, err))
	} else {
		perEdge := make(map[entity.Edge][]string)
		for _, s := range specs {
			name := s.Title
			if !s.Visible {
				name = theme.Subtle.Render(name)
			}
			perEdge[s.Edge] = append(perEdge[s.Edge], name)
		}
		for _, edge := range entity.Edges() {
			names := perEdge[edge]
			if len(names) == 0 {
				names = []string{theme.Subtle.Render("empty")}
			}
			b.WriteString(fmt.Sprintf("  %-8s %s\n", edge.String(), strings.Join(names, ", ")))
		}
	}

	b.WriteString("\n" + theme.Subtitle.Render("Layout store") + "\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", theme.Highlight.Render(styles.IconDatabase), app.DB.Path()))
	version, err := app.SchemaVersion(app.Ctx())
	if err != nil {
		b.WriteString(fmt.Sprintf("  %s %v\n", bad, err))
	} else {
		b.WriteString(fmt.Sprintf("  %s schema version %d\n", ok, version))
		layouts, listErr := app.PersistUC.List(app.Ctx())
		if listErr != nil {
			b.WriteString(fmt.Sprintf("  %s %v\n", bad, listErr))
		} else {
			b.WriteString(fmt.Sprintf("  %s %d saved layout(s)\n", ok, len(layouts)))
		}
	}

	if logFile, err := config.GetLogFile(); err == nil {
		b.WriteString("\n" + theme.Subtitle.Render("Logs") + "\n")
		b.WriteString(fmt.Sprintf("  %s %s\n", theme.Highlight.Render(styles.IconLogs), logFile))
	}

	fmt.Print(b.String())
	return nil
}
