package styles_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phreebee/dockyard/internal/cli/styles"
	"github.com/phreebee/dockyard/internal/domain/entity"
)

func TestLayoutCLIRenderer(t *testing.T) {
	r := styles.NewLayoutCLIRenderer(styles.NewTheme())

	require.Contains(t, r.RenderEmptyList(), "No saved layouts found.")

	layout := &entity.DockLayout{
		SessionID: "20260210_120000_abcd",
		SavedAt:   time.Now().Add(-3 * time.Hour),
		Sides:     map[entity.Edge]int{entity.EdgeLeft: 320},
		Entries: []entity.LayoutEntry{
			{Panel: "{64ec31fe-f28e-49a6-a12a-9194214dd0d6}", Edge: entity.EdgeLeft, Track: 40, Visible: true},
			{Panel: "syntax", Edge: entity.EdgeBottom, Track: 100, Visible: false},
			{Panel: "clock", Edge: entity.EdgeKeep, Track: entity.TrackKeep, Visible: true},
		},
	}

	out := r.RenderList([]*entity.DockLayout{layout})
	require.Contains(t, out, "Layouts")
	require.Contains(t, out, "20260210_120000_abcd")
	require.Contains(t, out, "2/3 shown")
	require.Contains(t, out, "3h ago")

	out = r.RenderLayout(layout, func(ref string) string {
		if ref == "{64ec31fe-f28e-49a6-a12a-9194214dd0d6}" {
			return "Outline"
		}
		return ref
	})
	assert.Contains(t, out, "Outline")
	assert.Contains(t, out, "(320px)")
	assert.Contains(t, out, "(250px)", "right side falls back to its default")
	assert.Contains(t, out, "syntax")
	assert.Contains(t, out, "current edge")
	assert.Contains(t, out, "track kept")

	require.Contains(t, r.RenderError(errors.New("boom")), "boom")
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{2 * time.Hour, "2h ago"},
		{3 * 24 * time.Hour, "3d ago"},
		{15 * 24 * time.Hour, "2w ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, styles.RelativeTime(now.Add(-tt.ago), now))
	}
}
