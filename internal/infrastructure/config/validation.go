package config

import (
	"fmt"
	"strings"

	"github.com/phreebee/dockyard/internal/domain/entity"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "disabled", "off"}
	validLogFormats = []string{"console", "json", "short"}
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateDock(config)...)
	validationErrors = append(validationErrors, validatePanels(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !contains(validLogLevels, config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of %s (got %q)", strings.Join(validLogLevels, ", "), config.Logging.Level))
	}
	if !contains(validLogFormats, config.Logging.Format) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of %s (got %q)", strings.Join(validLogFormats, ", "), config.Logging.Format))
	}
	return validationErrors
}

func validateDock(config *Config) []string {
	var validationErrors []string
	if config.Dock.Spacing < 0 {
		validationErrors = append(validationErrors, "dock.spacing must be non-negative")
	}
	if config.Dock.MinMargin < 0 {
		validationErrors = append(validationErrors, "dock.min_margin must be non-negative")
	}
	if config.Dock.SpacerSlop < 0 {
		validationErrors = append(validationErrors, "dock.spacer_slop must be non-negative")
	}
	return validationErrors
}

func validatePanels(config *Config) []string {
	var validationErrors []string
	ids := make(map[entity.PanelID]string, len(config.Panels))
	names := make(map[string]struct{}, len(config.Panels))

	for i, p := range config.Panels {
		field := fmt.Sprintf("panels[%d]", i)
		if p.Name == "" {
			validationErrors = append(validationErrors, field+".name cannot be empty")
			continue
		}
		field = fmt.Sprintf("panels[%d] (%s)", i, p.Name)

		key := strings.ToLower(p.Name)
		if _, dup := names[key]; dup {
			validationErrors = append(validationErrors, fmt.Sprintf("%s: duplicate name", field))
		}
		names[key] = struct{}{}

		if _, err := entity.ParseEdge(p.Edge); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.edge: %v", field, err))
		}
		if _, err := entity.ParseTrackStyle(p.Style); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.style: %v", field, err))
		}
		if p.Track < 0 {
			validationErrors = append(validationErrors, field+".track must be non-negative")
		}

		id, err := panelID(p)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.id: %v", field, err))
			continue
		}
		if other, dup := ids[id]; dup {
			validationErrors = append(validationErrors, fmt.Sprintf("%s: id %s already used by %s", field, id, other))
		}
		ids[id] = p.Name
	}
	return validationErrors
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
