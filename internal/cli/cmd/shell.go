package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/phreebee/dockyard/internal/cli/model"
	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/infrastructure/config"
	"github.com/phreebee/dockyard/internal/infrastructure/snapshot"
	"github.com/phreebee/dockyard/internal/logging"
)

var (
	shellSession    string
	shellLast       bool
	shellDocs       []string
	shellNoAutosave bool
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open an interactive preview of the dock",
	Long: `Open a terminal preview of the dock around a set of fake documents.

Panels can be toggled, resized by dragging the spacers between them and
moved to another side by dragging their title bar. Documents ending in
.txt refuse per-document panels, so switching to one hides them.

The layout is saved under the session id when it changes. Logs go to the
log file while the preview owns the terminal.

Examples:
  dockyard shell
  dockyard shell --last
  dockyard shell --session work --docs main.go,go.mod,TODO.txt`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().StringVarP(&shellSession, "session", "s", "", "session id to restore and save under (default: new session)")
	shellCmd.Flags().BoolVar(&shellLast, "last", false, "restore the most recently saved session")
	shellCmd.Flags().StringSliceVar(&shellDocs, "docs", []string{"main.go", "README.md", "notes.txt"}, "documents to open")
	shellCmd.Flags().BoolVar(&shellNoAutosave, "no-autosave", false, "do not save the layout on change")
	shellCmd.MarkFlagsMutuallyExclusive("session", "last")
}

func runShell(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	sessionID, err := resolveShellSession(app.Ctx())
	if err != nil {
		return err
	}
	ctx := logging.WithSession(app.Ctx(), sessionID)
	log := logging.FromContext(ctx)

	shell := model.NewPreviewShell(shellDocs...)
	dock, err := app.NewDock(shell)
	if err != nil {
		return err
	}
	shell.Register(dock.Panels())
	for _, p := range dock.Panels() {
		if p.Mode() != entity.ContentSolo {
			continue
		}
		if err := dock.AttachSolo(ctx, p.Name, model.NewTextContent(p.Title)); err != nil {
			return fmt.Errorf("attach %s: %w", p.Name, err)
		}
	}

	restored, err := app.PersistUC.Restore(ctx, dock, sessionID)
	if err != nil {
		return fmt.Errorf("restore layout: %w", err)
	}
	log.Info().Bool("restored", restored).Msg("dock ready")

	key, _ := shell.CurrentContext()
	if err := dock.ViewSelect(ctx, key); err != nil {
		return err
	}

	var autosave *snapshot.Service
	if !shellNoAutosave {
		autosave = snapshot.NewService(app.PersistUC, sessionID, 0)
		autosave.Start(ctx)
	}

	m := model.NewDockModel(ctx, app.Theme, model.DockModelConfig{
		Dock:     dock,
		Shell:    shell,
		Autosave: autosave,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	app.ConfigManager.OnConfigChange(func(*config.Config) {
		p.Send(model.ConfigReloadedMsg{})
	})
	if err := app.ConfigManager.Watch(watchCtx); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	_, runErr := p.Run()
	if autosave != nil {
		if err := autosave.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("final layout save failed")
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("Layout session: %s\n", sessionID)
	return nil
}

func resolveShellSession(ctx context.Context) (string, error) {
	if shellSession != "" {
		return shellSession, nil
	}
	if shellLast {
		layouts, err := app.PersistUC.List(ctx)
		if err != nil {
			return "", fmt.Errorf("list layouts: %w", err)
		}
		if len(layouts) == 0 {
			return "", fmt.Errorf("no saved layouts to restore")
		}
		return layouts[0].SessionID, nil
	}
	return logging.GenerateSessionID(), nil
}
