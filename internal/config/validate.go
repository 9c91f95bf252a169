package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. The LLM API key is not
// required here: review sessions run without the planning service, so key
// presence is checked when a planning run starts.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePlanner(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("paths.library_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ReviewDir) == "" {
		return errors.New("paths.review_dir must be set")
	}
	return nil
}

func (c *Config) validatePlanner() error {
	if c.Planner.MaxRounds < 1 || c.Planner.MaxRounds > 200 {
		return fmt.Errorf("planner.max_rounds must be between 1 and 200, got %d", c.Planner.MaxRounds)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// RequirePlannerCredentials reports a configuration error when no API key is
// available for the planning service. Called at the start of a planning run.
func (c *Config) RequirePlannerCredentials() error {
	if strings.TrimSpace(c.LLM.APIKey) != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/photokeep/config.toml"
	}
	return fmt.Errorf("llm.api_key is required for planning. Set PHOTOKEEP_LLM_API_KEY or edit %s (create with 'photokeep config init')", defaultPath)
}
