package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return fmt.Errorf("config: paths.data_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return fmt.Errorf("config: paths.log_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.ReviewDir) == "" {
		return fmt.Errorf("config: paths.review_dir must not be empty")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.Binary == "" {
		return fmt.Errorf("config: search.binary must not be empty")
	}
	if c.Search.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: search.timeout_seconds must be positive")
	}
	if c.Search.ChannelLimit <= 0 {
		return fmt.Errorf("config: search.channel_limit must be positive")
	}
	if !strings.HasPrefix(c.Search.ResultHost, "http://") && !strings.HasPrefix(c.Search.ResultHost, "https://") {
		return fmt.Errorf("config: search.result_host must be an http(s) URL, got %q", c.Search.ResultHost)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
