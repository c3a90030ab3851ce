package config

import (
	"fmt"
	"strings"

	"sift/internal/item"
)

// normalize expands paths and canonicalizes string fields in place.
func (c *Config) normalize() error {
	c.Finder.Command = strings.TrimSpace(c.Finder.Command)
	c.Finder.Shell = strings.TrimSpace(c.Finder.Shell)
	if c.Finder.Shell == "" {
		c.Finder.Shell = "sh"
	}

	for i, token := range c.Ranking.Tiebreak {
		c.Ranking.Tiebreak[i] = strings.ToLower(strings.TrimSpace(token))
	}

	if c.History.Path != "" {
		expanded, err := expandPath(c.History.Path)
		if err != nil {
			return err
		}
		c.History.Path = expanded
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Dir != "" {
		expanded, err := expandPath(c.Logging.Dir)
		if err != nil {
			return err
		}
		c.Logging.Dir = expanded
	}
	return nil
}

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	if c.Finder.Command == "" {
		return fmt.Errorf("finder.command: source command required")
	}
	if c.Finder.ReserveLines < 0 {
		return fmt.Errorf("finder.reserve_lines: must be non-negative, got %d", c.Finder.ReserveLines)
	}
	if _, err := item.ParseCriteria(c.Ranking.Tiebreak); err != nil {
		return fmt.Errorf("ranking.tiebreak: %w", err)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path: required when history is enabled")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// Criteria returns the parsed tiebreak criteria. Call only after Validate.
func (c *Config) Criteria() []item.Criterion {
	criteria, err := item.ParseCriteria(c.Ranking.Tiebreak)
	if err != nil {
		// Validate rejects unparseable tokens; reaching this is a
		// programming error.
		panic(fmt.Sprintf("config: invalid tiebreak slipped past validation: %v", err))
	}
	return criteria
}
