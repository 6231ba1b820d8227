package styles

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phreebee/dockyard/internal/domain/entity"
)

const (
	hoursPerDay = 24
	daysPerWeek = 7
)

// LayoutCLIRenderer renders non-interactive output for the layout subcommands.
type LayoutCLIRenderer struct {
	theme *Theme
	now   func() time.Time
}

func NewLayoutCLIRenderer(theme *Theme) *LayoutCLIRenderer {
	return &LayoutCLIRenderer{theme: theme, now: time.Now}
}

func (r *LayoutCLIRenderer) RenderEmptyList() string {
	return r.theme.Subtle.Render("No saved layouts found.")
}

func (r *LayoutCLIRenderer) RenderList(layouts []*entity.DockLayout) string {
	if len(layouts) == 0 {
		return r.RenderEmptyList()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n\n", r.theme.Highlight.Render(IconLayout), r.theme.Title.Render("Layouts")))
	for _, l := range layouts {
		shown := 0
		for _, e := range l.Entries {
			if e.Visible {
				shown++
			}
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			r.theme.Highlight.Render(l.SessionID),
			r.theme.BadgeMuted.Render(fmt.Sprintf("%d/%d shown", shown, len(l.Entries))),
			r.theme.Subtle.Render(RelativeTime(l.SavedAt, r.now())),
		))
	}
	b.WriteString("\n")
	b.WriteString(r.theme.Subtle.Render("Tip: use `dockyard layout show <id>` for details."))
	return b.String()
}

// RenderLayout prints one layout grouped by edge. title resolves a stored
// panel reference to a display title; nil prints references as stored.
func (r *LayoutCLIRenderer) RenderLayout(l *entity.DockLayout, title func(ref string) string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s  %s\n",
		r.theme.Highlight.Render(IconLayout),
		r.theme.Title.Render(l.SessionID),
		r.theme.Subtle.Render(l.SavedAt.Local().Format(time.DateTime)),
	))

	for _, edge := range entity.Edges() {
		entries := l.EntriesFor(edge)
		b.WriteString(fmt.Sprintf("\n%s %s\n",
			r.theme.Subtitle.Render(edge.String()),
			r.theme.Subtle.Render(fmt.Sprintf("(%dpx)", l.SideTrack(edge))),
		))
		if len(entries) == 0 {
			b.WriteString(r.theme.Subtle.Render("  empty") + "\n")
			continue
		}
		for _, e := range entries {
			b.WriteString("  " + r.renderEntry(e, title) + "\n")
		}
	}

	var kept []entity.LayoutEntry
	for _, e := range l.Entries {
		if e.Edge == entity.EdgeKeep {
			kept = append(kept, e)
		}
	}
	if len(kept) > 0 {
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Order < kept[j].Order })
		b.WriteString(fmt.Sprintf("\n%s\n", r.theme.Subtitle.Render("current edge")))
		for _, e := range kept {
			b.WriteString("  " + r.renderEntry(e, title) + "\n")
		}
	}
	return b.String()
}

func (r *LayoutCLIRenderer) renderEntry(e entity.LayoutEntry, title func(string) string) string {
	icon := r.theme.SuccessStyle.Render(IconEye)
	if !e.Visible {
		icon = r.theme.Subtle.Render(IconEyeSlash)
	}
	name := e.Panel
	if title != nil {
		name = title(e.Panel)
	}
	track := "even"
	switch {
	case e.Track >= 0:
		track = fmt.Sprintf("%d", e.Track)
	case e.Track == entity.TrackKeep:
		track = "kept"
	}
	return fmt.Sprintf("%s %s %s", icon, r.theme.Normal.Render(name), r.theme.Subtle.Render("track "+track))
}

func (r *LayoutCLIRenderer) RenderImported(l *entity.DockLayout) string {
	return fmt.Sprintf("%s Imported %d panels into %s.",
		r.theme.SuccessStyle.Render(IconImport),
		len(l.Entries),
		r.theme.Highlight.Render(l.SessionID),
	)
}

func (r *LayoutCLIRenderer) RenderDeleted(sessionID string) string {
	return fmt.Sprintf("%s Layout %s deleted.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(sessionID),
	)
}

func (r *LayoutCLIRenderer) RenderWarning(msg string) string {
	return fmt.Sprintf("%s %s", r.theme.WarningStyle.Render(IconWarning), msg)
}

func (r *LayoutCLIRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}

// RelativeTime formats t relative to now ("just now", "5m ago", "2d ago").
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < hoursPerDay*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < daysPerWeek*hoursPerDay*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/hoursPerDay))
	default:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/hoursPerDay/daysPerWeek))
	}
}
