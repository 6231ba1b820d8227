package config

// Config represents the complete configuration for dockyard.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Dock     DockConfig     `mapstructure:"dock" toml:"dock" json:"dock"`
	// Panels is the fixed roster of dockable panels, created once at startup.
	Panels []PanelConfig `mapstructure:"panels" toml:"panels" json:"panels"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	// Format is console, json or short.
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,enum=short"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path,omitempty"`
}

// DockConfig holds the geometry of the dock.
type DockConfig struct {
	// Spacing is the gap in pixels between adjacent panels of a side.
	Spacing int `mapstructure:"spacing" toml:"spacing" json:"spacing" jsonschema:"minimum=0"`
	// MinMargin is the thickness under which a side reopens at its first-open size.
	MinMargin int `mapstructure:"min_margin" toml:"min_margin" json:"min_margin" jsonschema:"minimum=0"`
	// SpacerSlop widens the pointer target of each spacer on both sides.
	SpacerSlop int         `mapstructure:"spacer_slop" toml:"spacer_slop" json:"spacer_slop" jsonschema:"minimum=0"`
	Sides      SidesConfig `mapstructure:"sides" toml:"sides" json:"sides"`
}

// SidesConfig holds per-edge side geometry.
type SidesConfig struct {
	Left    SideConfig `mapstructure:"left" toml:"left" json:"left"`
	Right   SideConfig `mapstructure:"right" toml:"right" json:"right"`
	Bottom  SideConfig `mapstructure:"bottom" toml:"bottom" json:"bottom"`
	Tools   SideConfig `mapstructure:"tools" toml:"tools" json:"tools"`
	Options SideConfig `mapstructure:"options" toml:"options" json:"options"`
}

// SideConfig holds the thickness of one side.
type SideConfig struct {
	Track     int `mapstructure:"track" toml:"track" json:"track" jsonschema:"minimum=0"`
	FirstOpen int `mapstructure:"first_open" toml:"first_open" json:"first_open" jsonschema:"minimum=0"`
}

// PanelConfig describes one roster entry.
type PanelConfig struct {
	// ID is the decor GUID, braces optional. Derived from Name when empty.
	ID    string `mapstructure:"id" toml:"id,omitempty" json:"id,omitempty"`
	Name  string `mapstructure:"name" toml:"name" json:"name"`
	Title string `mapstructure:"title" toml:"title,omitempty" json:"title,omitempty"`
	Edge  string `mapstructure:"edge" toml:"edge" json:"edge" jsonschema:"enum=left,enum=right,enum=bottom,enum=tools,enum=options"`
	// Solo panels hold one structural content shared by every document.
	Solo    bool `mapstructure:"solo" toml:"solo" json:"solo"`
	Visible bool `mapstructure:"visible" toml:"visible" json:"visible"`
	// Track is a percentage of the side, or pixels when Style is "pixels".
	Track int    `mapstructure:"track" toml:"track,omitempty" json:"track,omitempty"`
	Style string `mapstructure:"style" toml:"style,omitempty" json:"style,omitempty" jsonschema:"enum=percent,enum=pixels"`
}
