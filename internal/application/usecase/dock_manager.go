package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/phreebee/dockyard/internal/application/port"
	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/phreebee/dockyard/internal/logging"
)

var (
	// ErrSwitchInProgress is returned when a view switch arrives while another is running.
	ErrSwitchInProgress = errors.New("view switch already in progress")
	// ErrNoDecor is returned when the focused view has no content for a panel.
	ErrNoDecor = errors.New("view refused decoration")
	// ErrNotSolo is returned when solo content is attached to a collection panel.
	ErrNotSolo = errors.New("panel is not solo")
)

// Error sink categories.
const (
	CategoryDecorate = "decorate"
	CategoryLayout   = "layout"
	CategoryContent  = "content"
)

// DockSettings holds the tunables of the dock.
type DockSettings struct {
	Spacing    int // Gap between panels of a side
	MinMargin  int // Sides thinner than this reopen at their first-open size
	SpacerSlop int // Extra hit margin around spacers
	Sides      map[entity.Edge]entity.SideSettings
}

// DefaultDockSettings returns the built-in dock geometry.
func DefaultDockSettings() DockSettings {
	s := DockSettings{
		Spacing:    5,
		MinMargin:  8,
		SpacerSlop: 2,
		Sides:      make(map[entity.Edge]entity.SideSettings, len(entity.Edges())),
	}
	for _, e := range entity.Edges() {
		s.Sides[e] = entity.SideSettings{Track: e.DefaultTrack(), FirstOpen: e.DefaultTrack()}
	}
	return s
}

type switchState int

const (
	switchIdle switchState = iota
	switchSwitching
)

// DockManager owns the panel roster and the five sides, and keeps them in
// step with the user's choices and the focused document.
// It is not safe for concurrent use: every call is expected on the UI loop.
type DockManager struct {
	shell    port.Shell
	sink     port.ErrorSink
	settings DockSettings

	panels []*entity.Panel
	byID   map[entity.PanelID]*entity.Panel
	sides  map[entity.Edge]*entity.Side

	switching   switchState
	decorHidden bool
	savedTracks map[entity.Edge]int
	frame       entity.Rect
	center      entity.Rect
	hover       *entity.Spacer
}

// NewDockManager builds the roster from specs and lays every checked panel
// onto the side of its edge, in roster order.
func NewDockManager(shell port.Shell, sink port.ErrorSink, settings DockSettings, specs []entity.PanelSpec) (*DockManager, error) {
	if shell == nil {
		return nil, errors.New("shell cannot be nil")
	}
	if sink == nil {
		sink = nopSink{}
	}
	m := &DockManager{
		shell:       shell,
		sink:        sink,
		settings:    settings,
		byID:        make(map[entity.PanelID]*entity.Panel, len(specs)),
		sides:       make(map[entity.Edge]*entity.Side, len(entity.Edges())),
		savedTracks: make(map[entity.Edge]int),
	}

	names := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if !spec.Edge.Valid() {
			return nil, fmt.Errorf("panel %q: %w", spec.Name, entity.ErrUnknownEdge)
		}
		if _, dup := m.byID[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate panel id %s", spec.ID)
		}
		name := strings.ToLower(spec.Name)
		if _, dup := names[name]; dup {
			return nil, fmt.Errorf("duplicate panel name %q", spec.Name)
		}
		names[name] = struct{}{}

		p := entity.NewPanel(spec)
		m.panels = append(m.panels, p)
		m.byID[p.ID] = p
	}

	for _, e := range entity.Edges() {
		ss, ok := settings.Sides[e]
		if !ok {
			ss = entity.SideSettings{Track: e.DefaultTrack()}
		}
		ss.Spacing = settings.Spacing
		ss.Slop = settings.SpacerSlop
		m.sides[e] = entity.NewSide(e, ss)
		m.reloadSide(e, m.checkedOn(e, nil))
	}
	return m, nil
}

// Panels returns the roster in creation order.
func (m *DockManager) Panels() []*entity.Panel {
	out := make([]*entity.Panel, len(m.panels))
	copy(out, m.panels)
	return out
}

// Panel looks a panel up by id.
func (m *DockManager) Panel(id entity.PanelID) (*entity.Panel, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrPanelNotFound, id)
	}
	return p, nil
}

// PanelByName looks a panel up by name, ignoring case.
func (m *DockManager) PanelByName(name string) (*entity.Panel, error) {
	for _, p := range m.panels {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", entity.ErrPanelNotFound, name)
}

// Side returns the side docked on edge.
func (m *DockManager) Side(edge entity.Edge) (*entity.Side, error) {
	s, ok := m.sides[edge]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrSideNotFound, edge)
	}
	return s, nil
}

// Settings returns the dock tunables.
func (m *DockManager) Settings() DockSettings { return m.settings }

// AttachSolo installs the structural content of a solo panel.
// It does not shuffle; the next view switch shows it.
func (m *DockManager) AttachSolo(ctx context.Context, name string, content entity.ContentHandle) error {
	p, err := m.PanelByName(name)
	if err != nil {
		return err
	}
	if p.Mode() != entity.ContentSolo {
		return fmt.Errorf("%w: %s", ErrNotSolo, p.Name)
	}
	if err := p.Solo().Set(content); err != nil {
		return fmt.Errorf("attach %s: %w", p.Name, err)
	}
	logging.FromContext(ctx).Debug().Str("panel", p.Name).Msg("solo content attached")
	return nil
}

// IsReady reports whether the panel is wanted and has visible content for
// the focused document, creating the content on first use.
func (m *DockManager) IsReady(ctx context.Context, id entity.PanelID) (bool, error) {
	p, err := m.Panel(id)
	if err != nil {
		return false, err
	}
	key, ok := m.shell.CurrentContext()
	return m.applyReadiness(ctx, p, key, ok), nil
}

// ViewSelect shuffles the dock for a newly focused document. A request
// arriving while a switch is running is rejected with ErrSwitchInProgress.
// NoKey means no document is open: collection panels hide and solo panels stay.
func (m *DockManager) ViewSelect(ctx context.Context, key entity.ContextKey) error {
	log := logging.FromContext(ctx)
	if m.switching == switchSwitching {
		log.Debug().Str("context_key", string(key)).Msg("nested view switch ignored")
		return ErrSwitchInProgress
	}
	m.switching = switchSwitching
	defer func() { m.switching = switchIdle }()

	log.Debug().Str("context_key", string(key)).Msg("view selected")
	m.shuffleFor(ctx, key, key != entity.NoKey)
	return nil
}

// Switching reports whether a view switch is running.
func (m *DockManager) Switching() bool {
	return m.switching == switchSwitching
}

// Shuffle brings every panel and side in line with the focused document.
func (m *DockManager) Shuffle(ctx context.Context) {
	key, ok := m.shell.CurrentContext()
	m.shuffleFor(ctx, key, ok)
}

func (m *DockManager) shuffleFor(ctx context.Context, key entity.ContextKey, hasKey bool) {
	for _, p := range m.panels {
		if !p.Checked {
			p.Hide()
		}
	}
	for _, e := range entity.Edges() {
		m.shuffleSide(ctx, m.sides[e], key, hasKey)
	}
	m.relayout(ctx)
}

// ShuffleSide hides the side when none of its panels is ready and shows it
// when at least one is. Calling it twice in a row changes nothing the second time.
func (m *DockManager) ShuffleSide(ctx context.Context, edge entity.Edge) error {
	side, err := m.Side(edge)
	if err != nil {
		m.sink.LogError(CategoryLayout, err.Error())
		return err
	}
	key, ok := m.shell.CurrentContext()
	m.shuffleSide(ctx, side, key, ok)
	return nil
}

func (m *DockManager) shuffleSide(ctx context.Context, side *entity.Side, key entity.ContextKey, hasKey bool) {
	anyReady := false
	for _, p := range side.Members() {
		if m.applyReadiness(ctx, p, key, hasKey) {
			anyReady = true
		}
	}

	switch {
	case m.decorHidden || (!side.Hidden() && !anyReady):
		if !side.Hidden() {
			side.Collapse(m.settings.MinMargin)
			logging.FromContext(ctx).Debug().Str("edge", side.Edge.String()).Msg("side collapsed")
		}
	case side.Hidden() && anyReady:
		side.Expand(m.settings.MinMargin)
		logging.FromContext(ctx).Debug().
			Str("edge", side.Edge.String()).
			Int("track", side.Track).
			Msg("side opened")
	}
}

// applyReadiness shows the panel with its content for key when it is ready
// and hides it otherwise. It returns the readiness.
func (m *DockManager) applyReadiness(ctx context.Context, p *entity.Panel, key entity.ContextKey, hasKey bool) bool {
	if !p.Checked || m.decorHidden {
		p.Hide()
		return false
	}
	if !m.ensureDecor(ctx, p, key, hasKey) || !p.Shuffle(key, true) {
		p.Hide()
		return false
	}
	if p.Hidden() {
		p.Show(entity.ShowInactive)
	}
	return true
}

// ensureDecor makes sure the panel holds content for key, asking the focused
// view for it on first use. Failures only affect this panel and key.
func (m *DockManager) ensureDecor(ctx context.Context, p *entity.Panel, key entity.ContextKey, hasKey bool) bool {
	if p.IsContained(key) {
		return true
	}
	if !hasKey {
		return false
	}
	content, err := m.shell.Decorate(ctx, p.ID, key)
	if err != nil {
		m.sink.LogError(CategoryDecorate, fmt.Sprintf("%s for %q: %v", p.Name, key, err))
		return false
	}
	if content == nil {
		logging.FromContext(ctx).Debug().
			Str("panel", p.Name).
			Str("context_key", string(key)).
			Msg(ErrNoDecor.Error())
		return false
	}
	if err := p.Attach(key, content); err != nil {
		m.sink.LogError(CategoryContent, fmt.Sprintf("%s for %q: %v", p.Name, key, err))
		return false
	}
	return true
}

// SetState records whether the user wants the panel. Opening re-derives the
// content of every panel on the same edge; closing disposes the panel's
// document content. The side is then reloaded, shuffled and laid out.
func (m *DockManager) SetState(ctx context.Context, id entity.PanelID, open bool) error {
	p, err := m.Panel(id)
	if err != nil {
		m.sink.LogError(CategoryLayout, err.Error())
		return err
	}
	log := logging.FromContext(ctx)
	log.Debug().Str("panel", p.Name).Bool("open", open).Msg("set panel state")

	edge := p.Edge()
	key, ok := m.shell.CurrentContext()
	p.Checked = open
	if open {
		for _, q := range m.panels {
			if q.Edge() == edge {
				m.applyReadiness(ctx, q, key, ok)
			}
		}
	} else if err := p.CloseAll(); err != nil {
		m.sink.LogError(CategoryContent, fmt.Sprintf("close %s: %v", p.Name, err))
	}

	m.reloadSide(edge, m.checkedOn(edge, m.sides[edge].Members()))
	m.shuffleSide(ctx, m.sides[edge], key, ok)
	m.relayout(ctx)
	return nil
}

// Toggle flips the user's choice for the panel.
func (m *DockManager) Toggle(ctx context.Context, id entity.PanelID) error {
	p, err := m.Panel(id)
	if err != nil {
		return err
	}
	return m.SetState(ctx, id, !p.Checked)
}

// FinishDrag redocks the panel on the first side whose rectangle holds the
// drop point. Members of the receiving side are ordered by where their
// rectangles sit along its axis, so the panel lands near the release point.
func (m *DockManager) FinishDrag(ctx context.Context, id entity.PanelID, drop entity.Point) error {
	p, err := m.Panel(id)
	if err != nil {
		m.sink.LogError(CategoryLayout, err.Error())
		return err
	}

	target, found := entity.Edge(0), false
	for _, e := range entity.Edges() {
		if m.sides[e].Rect().Contains(drop.X, drop.Y) {
			target, found = e, true
			break
		}
	}
	if !found {
		return nil
	}

	log := logging.FromContext(ctx)
	old := p.Edge()
	key, ok := m.shell.CurrentContext()

	p.SetRect(entity.Rect{X: drop.X, Y: drop.Y})
	if target != old {
		p.SetOrientation(target)
		var rest []*entity.Panel
		for _, q := range m.sides[old].Members() {
			if q != p {
				rest = append(rest, q)
			}
		}
		m.reloadSide(old, rest)
		m.shuffleSide(ctx, m.sides[old], key, ok)
	}

	members := m.sides[target].Members()
	if m.sides[target].IndexOf(p) < 0 && p.Checked {
		members = append(members, p)
	}
	sortByCenter(members, target.Axis())
	m.reloadSide(target, members)
	m.shuffleSide(ctx, m.sides[target], key, ok)
	m.relayout(ctx)

	log.Debug().
		Str("panel", p.Name).
		Str("from", old.String()).
		Str("edge", target.String()).
		Msg("panel redocked")
	return nil
}

// checkedOn returns the checked panels assigned to edge: those already in
// order first, then the rest in roster order.
func (m *DockManager) checkedOn(edge entity.Edge, order []*entity.Panel) []*entity.Panel {
	out := make([]*entity.Panel, 0, len(m.panels))
	seen := make(map[*entity.Panel]bool, len(order))
	for _, p := range order {
		if p.Checked && p.Edge() == edge && !seen[p] {
			out = append(out, p)
			seen[p] = true
		}
	}
	for _, p := range m.panels {
		if p.Checked && p.Edge() == edge && !seen[p] {
			out = append(out, p)
		}
	}
	return out
}

// reloadSide replaces the side membership and renormalizes the percentage
// tracks evenly when they fall outside the accepted band.
func (m *DockManager) reloadSide(edge entity.Edge, members []*entity.Panel) {
	side := m.sides[edge]
	sum := side.Load(members)
	if sum < entity.PercentSumMin || sum > entity.PercentSumMax {
		side.ResetPercent(true)
	}
}

func (m *DockManager) relayout(ctx context.Context) {
	if m.frame.Empty() {
		return
	}
	m.LayoutFrame(ctx, m.frame)
}

func sortByCenter(panels []*entity.Panel, axis entity.Axis) {
	sort.SliceStable(panels, func(i, j int) bool {
		return panels[i].Rect().CenterAlong(axis) < panels[j].Rect().CenterAlong(axis)
	})
}

type nopSink struct{}

func (nopSink) LogError(string, string) {}
