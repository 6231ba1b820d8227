package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phreebee/dockyard/internal/application/usecase"
	"github.com/phreebee/dockyard/internal/cli/styles"
	"github.com/phreebee/dockyard/internal/domain/entity"
)

var (
	layoutListJSON  bool
	layoutListLimit int
	layoutExportOut string
	layoutDeleteYes bool
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Manage saved dock layouts",
	Long: `List, inspect, export, import and delete the dock layouts saved per session.

Layouts are exported in the XML docking format, which older tools can read
back. Import also accepts the legacy list of visible decors.`,
}

var layoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved layouts",
	Args:  cobra.NoArgs,
	RunE:  runLayoutList,
}

var layoutShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a saved layout grouped by side",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutShow,
}

var layoutExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Write a saved layout as docking XML",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutExport,
}

var layoutImportCmd = &cobra.Command{
	Use:   "import <session-id> <file|->",
	Short: "Store a docking XML document as the layout of a session",
	Long: `Read a docking XML document and store it as the layout of a session.

Use - to read from standard input. Records that cannot be understood are
skipped with a warning; the rest is imported.`,
	Args: cobra.ExactArgs(2),
	RunE: runLayoutImport,
}

var layoutDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a saved layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutDelete,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutListCmd)
	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutExportCmd)
	layoutCmd.AddCommand(layoutImportCmd)
	layoutCmd.AddCommand(layoutDeleteCmd)

	layoutListCmd.Flags().BoolVar(&layoutListJSON, "json", false, "output as JSON")
	layoutListCmd.Flags().IntVarP(&layoutListLimit, "limit", "n", 0, "show at most N layouts (0 = all)")
	layoutExportCmd.Flags().StringVarP(&layoutExportOut, "output", "o", "", "write to file instead of stdout")
	layoutDeleteCmd.Flags().BoolVarP(&layoutDeleteYes, "yes", "y", false, "skip confirmation")
}

// layoutJSON is the machine-readable shape of a saved layout.
type layoutJSON struct {
	SessionID string            `json:"session_id"`
	SavedAt   string            `json:"saved_at"`
	Sides     map[string]int    `json:"sides"`
	Entries   []layoutEntryJSON `json:"entries"`
}

type layoutEntryJSON struct {
	Panel   string `json:"panel"`
	Edge    string `json:"edge,omitempty"`
	Order   int    `json:"order"`
	Track   int    `json:"track"`
	Visible bool   `json:"visible"`
}

func toLayoutJSON(l *entity.DockLayout) layoutJSON {
	out := layoutJSON{
		SessionID: l.SessionID,
		SavedAt:   l.SavedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Sides:     make(map[string]int, len(l.Sides)),
		Entries:   make([]layoutEntryJSON, 0, len(l.Entries)),
	}
	for edge, track := range l.Sides {
		out.Sides[edge.String()] = track
	}
	for _, e := range l.Entries {
		je := layoutEntryJSON{Panel: e.Panel, Order: e.Order, Track: e.Track, Visible: e.Visible}
		if e.Edge != entity.EdgeKeep {
			je.Edge = e.Edge.String()
		}
		out.Entries = append(out.Entries, je)
	}
	return out
}

func runLayoutList(_ *cobra.Command, _ []string) error {
	layouts, err := app.PersistUC.List(app.Ctx())
	if err != nil {
		return fmt.Errorf("list layouts: %w", err)
	}
	if layoutListLimit > 0 && len(layouts) > layoutListLimit {
		layouts = layouts[:layoutListLimit]
	}

	if layoutListJSON {
		items := make([]layoutJSON, 0, len(layouts))
		for _, l := range layouts {
			items = append(items, toLayoutJSON(l))
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	renderer := styles.NewLayoutCLIRenderer(app.Theme)
	fmt.Println(renderer.RenderList(layouts))
	return nil
}

func runLayoutShow(_ *cobra.Command, args []string) error {
	l, err := app.Layouts.Get(app.Ctx(), args[0])
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}
	if l == nil {
		return fmt.Errorf("%w: %s", usecase.ErrLayoutNotFound, args[0])
	}
	renderer := styles.NewLayoutCLIRenderer(app.Theme)
	fmt.Print(renderer.RenderLayout(l, app.PanelTitle))
	return nil
}

func runLayoutExport(_ *cobra.Command, args []string) (err error) {
	var w io.Writer = os.Stdout
	if layoutExportOut != "" {
		f, createErr := os.Create(layoutExportOut)
		if createErr != nil {
			return fmt.Errorf("create %s: %w", layoutExportOut, createErr)
		}
		defer func() {
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
		}()
		w = f
	}

	if err := app.PersistUC.Export(app.Ctx(), args[0], w); err != nil {
		if layoutExportOut != "" {
			_ = os.Remove(layoutExportOut)
		}
		return err
	}
	return nil
}

func runLayoutImport(_ *cobra.Command, args []string) error {
	sessionID, src := args[0], args[1]

	var r io.Reader = os.Stdin
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("open %s: %w", src, err)
		}
		defer f.Close()
		r = f
	}

	renderer := styles.NewLayoutCLIRenderer(app.Theme)
	before := app.Sink.Logged()
	l, err := app.PersistUC.Import(app.Ctx(), sessionID, r)
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	if skipped := app.Sink.Logged() - before; skipped > 0 {
		fmt.Println(renderer.RenderWarning(fmt.Sprintf("%d record(s) had problems, see the log", skipped)))
	}
	fmt.Println(renderer.RenderImported(l))
	return nil
}

func runLayoutDelete(_ *cobra.Command, args []string) error {
	sessionID := args[0]
	l, err := app.Layouts.Get(app.Ctx(), sessionID)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}
	if l == nil {
		return fmt.Errorf("%w: %s", usecase.ErrLayoutNotFound, sessionID)
	}

	if !layoutDeleteYes {
		ok, err := styles.AskConfirm(app.Theme, fmt.Sprintf("Delete layout %s?", sessionID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}
	}

	if err := app.PersistUC.Delete(app.Ctx(), sessionID); err != nil {
		if errors.Is(err, usecase.ErrLayoutNotFound) {
			return err
		}
		return fmt.Errorf("delete layout: %w", err)
	}
	fmt.Println(styles.NewLayoutCLIRenderer(app.Theme).RenderDeleted(sessionID))
	return nil
}
