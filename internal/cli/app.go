// Package cli wires configuration, logging and persistence for the commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/phreebee/dockyard/internal/application/port"
	"github.com/phreebee/dockyard/internal/application/usecase"
	"github.com/phreebee/dockyard/internal/cli/styles"
	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/domain/repository"
	"github.com/phreebee/dockyard/internal/infrastructure/config"
	"github.com/phreebee/dockyard/internal/infrastructure/persistence/sqlite"
	"github.com/phreebee/dockyard/internal/infrastructure/session"
	"github.com/phreebee/dockyard/internal/logging"
)

const logFilePerm = 0o640

// Options tune how the App is built.
type Options struct {
	// LogToFile sends logs to the log file instead of stderr, for commands
	// that take over the terminal.
	LogToFile bool
}

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	Version       string
	DB            *sqlite.LazyDB
	Layouts       repository.LayoutRepository
	Sink          *logging.ErrorSink

	// Use cases
	PersistUC *usecase.PersistLayoutUseCase

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration and creates the application dependencies.
// The database is opened on first use.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, logCleanup, err := newLogger(cfg, opts)
	if err != nil {
		return nil, err
	}
	ctx := logging.WithContext(context.Background(), logger)

	sink := logging.NewErrorSink(logger)
	for _, w := range mgr.Warnings() {
		sink.LogError("config", w)
	}

	db := sqlite.NewLazyDB(cfg.Database.Path)
	layouts := sqlite.NewLazyLayoutRepository(db)
	logger.Debug().Str("db_path", cfg.Database.Path).Msg("layout store configured")

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(),
		DB:            db,
		Layouts:       layouts,
		Sink:          sink,
		PersistUC:     usecase.NewPersistLayoutUseCase(layouts, session.NewCodec(), sink),
		ctx:           ctx,
		logCleanup:    logCleanup,
	}, nil
}

func newLogger(cfg *config.Config, opts Options) (zerolog.Logger, func(), error) {
	if !opts.LogToFile {
		return logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format), func() {}, nil
	}

	path, err := config.GetLogFile()
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("resolve log file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	logger := logging.NewToWriter(cfg.Logging.Level, "json", file)
	return logger, func() { _ = file.Close() }, nil
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.DB != nil {
		err = a.DB.Close()
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// DockSettings returns the dock tunables from the configuration.
func (a *App) DockSettings() usecase.DockSettings {
	return usecase.DockSettings{
		Spacing:    a.Config.Dock.Spacing,
		MinMargin:  a.Config.Dock.MinMargin,
		SpacerSlop: a.Config.Dock.SpacerSlop,
		Sides:      a.Config.SideSettings(),
	}
}

// NewDock builds a dock with the configured roster around shell.
func (a *App) NewDock(shell port.Shell) (*usecase.DockManager, error) {
	specs, err := a.Config.PanelSpecs()
	if err != nil {
		return nil, fmt.Errorf("panel roster: %w", err)
	}
	return usecase.NewDockManager(shell, a.Sink, a.DockSettings(), specs)
}

// PanelTitle resolves a stored panel reference, an id or a name, to the
// title of the configured panel. Unknown references are returned unchanged.
func (a *App) PanelTitle(ref string) string {
	id, idErr := entity.ParsePanelID(ref)
	for _, p := range a.Config.Panels {
		if strings.EqualFold(p.Name, ref) {
			return p.Title
		}
		if idErr != nil {
			continue
		}
		if spec, err := p.Spec(); err == nil && spec.ID == id {
			return p.Title
		}
	}
	return ref
}

// SchemaVersion opens the database if needed and returns its migration version.
func (a *App) SchemaVersion(ctx context.Context) (int64, error) {
	db, err := a.DB.DB(ctx)
	if err != nil {
		return 0, err
	}
	return sqlite.GetMigrationStatus(ctx, db)
}
