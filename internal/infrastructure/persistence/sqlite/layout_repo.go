// Package sqlite provides SQLite implementations of domain repositories.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/domain/repository"
	"github.com/phreebee/dockyard/internal/logging"
)

// savedAtLayout has a fixed width so that saved_at sorts as text.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z"

const (
	upsertLayoutSQL = `INSERT INTO dock_layouts (session_id, saved_at) VALUES (?, ?)
		ON CONFLICT(session_id) DO UPDATE SET saved_at = excluded.saved_at`
	deleteSidesSQL   = `DELETE FROM dock_layout_sides WHERE session_id = ?`
	deleteEntriesSQL = `DELETE FROM dock_layout_entries WHERE session_id = ?`
	insertSideSQL    = `INSERT INTO dock_layout_sides (session_id, edge, track) VALUES (?, ?, ?)`
	insertEntrySQL   = `INSERT INTO dock_layout_entries
		(session_id, position, panel, edge, sort_order, track, visible) VALUES (?, ?, ?, ?, ?, ?, ?)`
	getLayoutSQL   = `SELECT session_id, saved_at FROM dock_layouts WHERE session_id = ?`
	listLayoutsSQL = `SELECT session_id, saved_at FROM dock_layouts ORDER BY saved_at DESC, session_id`
	getSidesSQL    = `SELECT edge, track FROM dock_layout_sides WHERE session_id = ?`
	getEntriesSQL  = `SELECT panel, edge, sort_order, track, visible FROM dock_layout_entries
		WHERE session_id = ? ORDER BY position`
	deleteLayoutSQL = `DELETE FROM dock_layouts WHERE session_id = ?`
)

type layoutRepo struct {
	db *sql.DB
}

// NewLayoutRepository creates a new SQLite-backed layout repository.
func NewLayoutRepository(db *sql.DB) repository.LayoutRepository {
	return &layoutRepo{db: db}
}

func (r *layoutRepo) Save(ctx context.Context, layout *entity.DockLayout) error {
	log := logging.FromContext(ctx)
	if layout == nil {
		return errors.New("layout cannot be nil")
	}
	if layout.SessionID == "" {
		return errors.New("layout session id cannot be empty")
	}
	savedAt := layout.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	log.Debug().
		Str("session_id", layout.SessionID).
		Int("entries", len(layout.Entries)).
		Msg("saving dock layout")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin layout transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Debug().Err(rollbackErr).Msg("layout rollback reported non-terminal error")
		}
	}()

	id := layout.SessionID
	if _, err := tx.ExecContext(ctx, upsertLayoutSQL, id, savedAt.UTC().Format(savedAtLayout)); err != nil {
		return fmt.Errorf("upsert layout: %w", err)
	}
	for _, stmt := range []string{deleteSidesSQL, deleteEntriesSQL} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("clear layout %s: %w", id, err)
		}
	}
	for edge, track := range layout.Sides {
		if !edge.Valid() {
			continue
		}
		if _, err := tx.ExecContext(ctx, insertSideSQL, id, edge.String(), track); err != nil {
			return fmt.Errorf("insert side %s: %w", edge, err)
		}
	}
	for i, e := range layout.Entries {
		if !e.Edge.Valid() && e.Edge != entity.EdgeKeep {
			log.Warn().Str("panel", e.Panel).Int("edge", int(e.Edge)).Msg("skipping layout entry with invalid edge")
			continue
		}
		if _, err := tx.ExecContext(ctx, insertEntrySQL, id, i, e.Panel, edgeName(e.Edge), e.Order, e.Track, e.Visible); err != nil {
			return fmt.Errorf("insert entry %q: %w", e.Panel, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit layout transaction: %w", err)
	}
	return nil
}

func (r *layoutRepo) Get(ctx context.Context, sessionID string) (*entity.DockLayout, error) {
	layout, err := scanLayout(r.db.QueryRowContext(ctx, getLayoutSQL, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, layout); err != nil {
		return nil, err
	}
	return layout, nil
}

func (r *layoutRepo) List(ctx context.Context) ([]*entity.DockLayout, error) {
	rows, err := r.db.QueryContext(ctx, listLayoutsSQL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var layouts []*entity.DockLayout
	for rows.Next() {
		layout, err := scanLayout(rows)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, layout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// The pool holds a single connection, so details load after the cursor closes.
	_ = rows.Close()

	for _, layout := range layouts {
		if err := r.loadDetails(ctx, layout); err != nil {
			return nil, err
		}
	}
	return layouts, nil
}

func (r *layoutRepo) Delete(ctx context.Context, sessionID string) error {
	logging.FromContext(ctx).Debug().Str("session_id", sessionID).Msg("deleting dock layout")
	_, err := r.db.ExecContext(ctx, deleteLayoutSQL, sessionID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLayout(row rowScanner) (*entity.DockLayout, error) {
	var (
		layout  entity.DockLayout
		savedAt string
	)
	if err := row.Scan(&layout.SessionID, &savedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(savedAtLayout, savedAt)
	if err != nil {
		return nil, fmt.Errorf("layout %s: bad saved_at %q: %w", layout.SessionID, savedAt, err)
	}
	layout.SavedAt = t
	return &layout, nil
}

func (r *layoutRepo) loadDetails(ctx context.Context, layout *entity.DockLayout) error {
	sides, err := r.loadSides(ctx, layout.SessionID)
	if err != nil {
		return err
	}
	layout.Sides = sides

	entries, err := r.loadEntries(ctx, layout.SessionID)
	if err != nil {
		return err
	}
	layout.Entries = entries
	return nil
}

func (r *layoutRepo) loadSides(ctx context.Context, sessionID string) (map[entity.Edge]int, error) {
	rows, err := r.db.QueryContext(ctx, getSidesSQL, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	sides := make(map[entity.Edge]int)
	for rows.Next() {
		var (
			name  string
			track int
		)
		if err := rows.Scan(&name, &track); err != nil {
			return nil, err
		}
		edge, err := entity.ParseEdge(name)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("session_id", sessionID).Msg("ignoring stored side")
			continue
		}
		sides[edge] = track
	}
	return sides, rows.Err()
}

func (r *layoutRepo) loadEntries(ctx context.Context, sessionID string) ([]entity.LayoutEntry, error) {
	rows, err := r.db.QueryContext(ctx, getEntriesSQL, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []entity.LayoutEntry
	for rows.Next() {
		var (
			e    entity.LayoutEntry
			edge string
		)
		if err := rows.Scan(&e.Panel, &edge, &e.Order, &e.Track, &e.Visible); err != nil {
			return nil, err
		}
		if e.Edge, err = parseEdgeName(edge); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("panel", e.Panel).Msg("ignoring stored layout entry")
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// edgeName stores EdgeKeep as an empty name.
func edgeName(e entity.Edge) string {
	if e == entity.EdgeKeep {
		return ""
	}
	return e.String()
}

func parseEdgeName(name string) (entity.Edge, error) {
	if name == "" {
		return entity.EdgeKeep, nil
	}
	return entity.ParseEdge(name)
}
