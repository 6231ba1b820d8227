// Package config provides configuration management for dockyard with Viper integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	warnings  []string
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	// DOCKYARD_DATABASE_PATH, DOCKYARD_DOCK_SPACING, ... are picked up automatically.
	v.SetEnvPrefix("DOCKYARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "DOCKYARD_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKYARD_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DOCKYARD_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKYARD_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	return m.apply()
}

// apply decodes viper's current state into m.config. Must be called with m.mu held.
func (m *Manager) apply() error {
	m.warnings = m.sanitizeNumbers()

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configDir, _ := GetConfigDir()
				configFile = filepath.Join(configDir, "config.toml")
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}

		if createErr := m.createDefaultConfig(); createErr != nil {
			configDir, _ := GetConfigDir()
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				configDir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf(
				"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
				rereadErr,
			)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		configFile := m.viper.ConfigFileUsed()
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			configFile,
			err,
		)
	}
	return config, nil
}

// sanitizeNumbers replaces unreadable dock geometry with its default so a
// single bad margin never blocks startup. It returns one warning per value replaced.
func (m *Manager) sanitizeNumbers() []string {
	numbers := map[string]int{
		"dock.spacing":     defaultSpacing,
		"dock.min_margin":  defaultMinMargin,
		"dock.spacer_slop": defaultSpacerSlop,
	}
	for side, track := range sideDefaults() {
		numbers["dock.sides."+side+".track"] = track
		numbers["dock.sides."+side+".first_open"] = track
	}

	var warnings []string
	for key, def := range numbers {
		// A nil override falls through to the file, dropping a replacement from an earlier load.
		m.viper.Set(key, nil)
		raw := m.viper.Get(key)
		if raw == nil {
			continue
		}
		if n, ok := asInt(raw); ok && n >= 0 {
			continue
		}
		m.viper.Set(key, def)
		warnings = append(warnings, fmt.Sprintf("couldn't read %s from config (%v), using %d", key, raw, def))
	}
	slices.Sort(warnings)
	return warnings
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), n == float64(int(n))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}

	defaults := sideDefaults()
	for name, side := range config.Dock.Sides.byName() {
		if side.Track <= 0 {
			side.Track = defaults[name]
		}
		if side.FirstOpen <= 0 {
			side.FirstOpen = defaults[name]
		}
	}

	for i := range config.Panels {
		p := &config.Panels[i]
		p.Name = strings.TrimSpace(p.Name)
		p.Edge = strings.ToLower(strings.TrimSpace(p.Edge))
		p.Style = strings.ToLower(strings.TrimSpace(p.Style))
		p.ID = strings.TrimSpace(p.ID)
		if p.Title == "" {
			p.Title = p.Name
		}
	}
}

// byName returns pointers to every side keyed by its config name.
func (s *SidesConfig) byName() map[string]*SideConfig {
	return map[string]*SideConfig{
		"left":    &s.Left,
		"right":   &s.Right,
		"bottom":  &s.Bottom,
		"tools":   &s.Tools,
		"options": &s.Options,
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	configCopy.Panels = append([]PanelConfig(nil), m.config.Panels...)
	return &configCopy
}

// Warnings returns the values replaced by defaults during the last load.
func (m *Manager) Warnings() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.warnings...)
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig creates a default configuration file and its JSON schema.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", configFile)

	if err := GenerateSchemaFile(); err != nil {
		return err
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Note: Database.Path is set dynamically in Load(), no defaults needed

	m.setLoggingDefaults(defaults)
	m.setDockDefaults(defaults)
	m.viper.SetDefault("panels", defaults.Panels)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

func (m *Manager) setDockDefaults(defaults *Config) {
	m.viper.SetDefault("dock.spacing", defaults.Dock.Spacing)
	m.viper.SetDefault("dock.min_margin", defaults.Dock.MinMargin)
	m.viper.SetDefault("dock.spacer_slop", defaults.Dock.SpacerSlop)
	for name, side := range defaults.Dock.Sides.byName() {
		m.viper.SetDefault("dock.sides."+name+".track", side.Track)
		m.viper.SetDefault("dock.sides."+name+".first_open", side.FirstOpen)
	}
}
