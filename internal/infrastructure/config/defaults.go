package config

// Default configuration constants
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"

	defaultSpacing    = 5 // pixels
	defaultMinMargin  = 8 // pixels
	defaultSpacerSlop = 2 // pixels

	defaultSideTrackLeft    = 250
	defaultSideTrackRight   = 250
	defaultSideTrackBottom  = 100
	defaultSideTrackTools   = 65
	defaultSideTrackOptions = 30
)

// Decor GUIDs of the built-in collection panels.
const (
	OutlineID     = "{64EC31FE-F28E-49A6-A12A-9194214DD0D6}"
	PropertiesID  = "{1509A246-5CB0-41B1-A6D2-572D38EEC9C5}"
	ProductionsID = "{266BE614-5336-4B45-A132-43640E659F69}"
	SyntaxID      = "{7FF3A2FC-459D-49B1-A2C1-B01853DDE2F0}"
	OptionsID     = "{6AECF17A-D91B-452F-9B67-840144446DDB}"
	ToolIconsID   = "{83F0CB89-16BC-4DA8-8A79-A6F13DF57DA9}"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Dock: DockConfig{
			Spacing:    defaultSpacing,
			MinMargin:  defaultMinMargin,
			SpacerSlop: defaultSpacerSlop,
			Sides:      defaultSides(),
		},
		Panels: DefaultPanels(),
	}
}

func defaultSides() SidesConfig {
	side := func(track int) SideConfig { return SideConfig{Track: track, FirstOpen: track} }
	return SidesConfig{
		Left:    side(defaultSideTrackLeft),
		Right:   side(defaultSideTrackRight),
		Bottom:  side(defaultSideTrackBottom),
		Tools:   side(defaultSideTrackTools),
		Options: side(defaultSideTrackOptions),
	}
}

// DefaultPanels returns the built-in roster: the structural solo panels
// followed by the per-document collection panels.
func DefaultPanels() []PanelConfig {
	return []PanelConfig{
		{Name: "find", Title: "Find", Edge: "right", Solo: true, Visible: true},
		{Name: "alerts", Title: "Alerts", Edge: "bottom", Solo: true, Visible: true},
		{Name: "matches", Title: "Matches", Edge: "bottom", Solo: true, Visible: false},
		{Name: "views", Title: "Views", Edge: "left", Solo: true, Visible: true},
		{Name: "clock", Title: "Clock", Edge: "right", Solo: true, Visible: false},
		{ID: OutlineID, Name: "outline", Title: "Outline", Edge: "left", Visible: true},
		{ID: PropertiesID, Name: "properties", Title: "Properties", Edge: "right", Visible: true},
		{ID: ProductionsID, Name: "productions", Title: "Productions", Edge: "right", Visible: false},
		{ID: SyntaxID, Name: "syntax", Title: "Syntax", Edge: "bottom", Visible: false},
		{ID: OptionsID, Name: "options", Title: "Options", Edge: "options", Visible: true},
		{ID: ToolIconsID, Name: "tool icons", Title: "Tools", Edge: "tools", Visible: true},
	}
}

// sideDefaults maps the viper key of every side to its default thickness.
func sideDefaults() map[string]int {
	return map[string]int{
		"left":    defaultSideTrackLeft,
		"right":   defaultSideTrackRight,
		"bottom":  defaultSideTrackBottom,
		"tools":   defaultSideTrackTools,
		"options": defaultSideTrackOptions,
	}
}
