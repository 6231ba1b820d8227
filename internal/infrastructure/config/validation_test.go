package config

import (
	"encoding/json"
	"testing"

	"github.com/phreebee/dockyard/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "warning alias", mutate: func(c *Config) { c.Logging.Level = "warning" }},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "negative spacing",
			mutate:  func(c *Config) { c.Dock.Spacing = -1 },
			wantErr: "dock.spacing",
		},
		{
			name:    "empty name",
			mutate:  func(c *Config) { c.Panels[0].Name = "" },
			wantErr: "panels[0].name",
		},
		{
			name:    "duplicate id",
			mutate:  func(c *Config) { c.Panels[6].ID = OutlineID },
			wantErr: "already used by outline",
		},
		{
			name:    "name collides with derived id",
			mutate:  func(c *Config) { c.Panels[1].Name = "FIND" },
			wantErr: "duplicate name",
		},
		{
			name:    "bad style",
			mutate:  func(c *Config) { c.Panels[5].Style = "em" },
			wantErr: "panels[5] (outline).style",
		},
		{
			name:    "negative track",
			mutate:  func(c *Config) { c.Panels[5].Track = -3 },
			wantErr: "panels[5] (outline).track",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = " DEBUG "
	cfg.Logging.Format = ""
	cfg.Dock.Sides.Tools = SideConfig{}
	cfg.Panels[0].Edge = " Right "
	cfg.Panels[0].Title = ""

	normalizeConfig(cfg)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, SideConfig{Track: 65, FirstOpen: 65}, cfg.Dock.Sides.Tools)
	assert.Equal(t, "right", cfg.Panels[0].Edge)
	assert.Equal(t, "find", cfg.Panels[0].Title)
}

func TestConfig_PanelSpecs(t *testing.T) {
	cfg := DefaultConfig()

	specs, err := cfg.PanelSpecs()

	require.NoError(t, err)
	require.Len(t, specs, len(cfg.Panels))
	assert.Equal(t, entity.PanelIDFromName("find"), specs[0].ID)
	assert.Equal(t, entity.EdgeRight, specs[0].Edge)
	assert.True(t, specs[0].Solo)
	assert.Equal(t, entity.MustParsePanelID(OutlineID), specs[5].ID)
	assert.Equal(t, entity.EdgeLeft, specs[5].Edge)
	assert.Equal(t, entity.TrackPercent, specs[5].Style)
	assert.Equal(t, entity.EdgeTools, specs[10].Edge)

	cfg.Panels[2].Edge = "nowhere"
	_, err = cfg.PanelSpecs()
	assert.ErrorIs(t, err, entity.ErrUnknownEdge)
}

func TestConfig_SideSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dock.Sides.Bottom.Track = 140

	sides := cfg.SideSettings()

	require.Len(t, sides, len(entity.Edges()))
	assert.Equal(t, entity.SideSettings{Track: 250, FirstOpen: 250, Spacing: 5, Slop: 2}, sides[entity.EdgeLeft])
	assert.Equal(t, 140, sides[entity.EdgeBottom].Track)
	assert.Equal(t, 100, sides[entity.EdgeBottom].FirstOpen)
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Dockyard Configuration", doc["title"])
	assert.Contains(t, string(data), `"first_open"`)
	assert.Contains(t, string(data), `"spacer_slop"`)
	assert.Contains(t, string(data), `"panels"`)
}
