package config

import (
	"fmt"
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	loadFromEnvHelper(cfg, nil, "")
}

// loadFromEnvWithSources loads environment variables and updates source tracking.
func loadFromEnvWithSources(cfg *Config, sources map[string]ConfigSource) {
	loadFromEnvHelper(cfg, sources, SourceEnv)
}

// loadFromEnvHelper is the shared implementation for env loading.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnvHelper(cfg *Config, sources map[string]ConfigSource, source ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = source
		}
	}

	// OPENCLAW_WORKSPACE is the original workspace variable; the
	// CLAWKANBAN-prefixed one wins when both are set.
	if v := os.Getenv("OPENCLAW_WORKSPACE"); v != "" {
		cfg.Workspace = v
		setEnv("workspace")
	}
	if v := os.Getenv("CLAWKANBAN_WORKSPACE"); v != "" {
		cfg.Workspace = v
		setEnv("workspace")
	}
	if v := os.Getenv("CLAWKANBAN_TASKS_FILE"); v != "" {
		cfg.TasksFile = v
		setEnv("tasks_file")
	}
	if v := os.Getenv("CLAWKANBAN_RECOVERY_FILE"); v != "" {
		cfg.RecoveryFile = v
		setEnv("recovery_file")
	}
	if v := os.Getenv("CLAWKANBAN_ACTOR"); v != "" {
		cfg.Actor = v
		setEnv("actor")
	}
	if v := os.Getenv("CLAWKANBAN_LIST_LIMIT"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.ListLimit = i
			setEnv("list_limit")
		}
	}

	// Logging configuration
	if v := os.Getenv("CLAWKANBAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("CLAWKANBAN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("CLAWKANBAN_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("CLAWKANBAN_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
