package config

import (
	"flag"
)

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	return parseFlagsHelper(cfg, fs, args, nil, "")
}

// parseFlagsWithSources parses CLI flags and updates source tracking.
func parseFlagsWithSources(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	return parseFlagsHelper(cfg, fs, args, sources, SourceFlag)
}

// parseFlagsHelper is the shared implementation for flag parsing.
// If sources is non-nil, it tracks the source of each value.
func parseFlagsHelper(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource, source ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("clawkanban", flag.ContinueOnError)
	}

	// Track which flags are explicitly set (only used when sources != nil)
	flagSet := make(map[string]bool)

	var workspace, tasksFile, recoveryFile, actor string
	var listLimit int
	var logLevel, logFormat string
	var logTimestamps, logCaller bool

	if sources == nil {
		// Direct binding for the non-source-tracking case
		fs.StringVar(&cfg.Workspace, "workspace", cfg.Workspace, "Workspace directory holding the task document")
		fs.StringVar(&cfg.TasksFile, "tasks-file", cfg.TasksFile, "Task document path (relative to workspace)")
		fs.StringVar(&cfg.RecoveryFile, "recovery-file", cfg.RecoveryFile, "Recovery file path (relative to workspace)")
		fs.StringVar(&cfg.Actor, "actor", cfg.Actor, "Actor recorded in task history")
		fs.IntVar(&cfg.ListLimit, "list-limit", cfg.ListLimit, "Default cap for list output (0 = unlimited)")
		fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
		fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
		fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
		fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	} else {
		fs.StringVar(&workspace, "workspace", cfg.Workspace, "")
		fs.StringVar(&tasksFile, "tasks-file", cfg.TasksFile, "")
		fs.StringVar(&recoveryFile, "recovery-file", cfg.RecoveryFile, "")
		fs.StringVar(&actor, "actor", cfg.Actor, "")
		fs.IntVar(&listLimit, "list-limit", cfg.ListLimit, "")
		fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "")
		fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "")
		fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "")
		fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"workspace":      "workspace",
		"tasks-file":     "tasks_file",
		"recovery-file":  "recovery_file",
		"actor":          "actor",
		"list-limit":     "list_limit",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	// Track which flags were set and apply to config
	fs.Visit(func(f *flag.Flag) {
		flagSet[f.Name] = true
		if sources == nil {
			return
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = source
		}
	})

	if sources != nil {
		// Apply based on which flags were set
		if flagSet["workspace"] {
			cfg.Workspace = workspace
		}
		if flagSet["tasks-file"] {
			cfg.TasksFile = tasksFile
		}
		if flagSet["recovery-file"] {
			cfg.RecoveryFile = recoveryFile
		}
		if flagSet["actor"] {
			cfg.Actor = actor
		}
		if flagSet["list-limit"] {
			cfg.ListLimit = listLimit
		}
		if flagSet["log-level"] {
			cfg.LogLevel = logLevel
		}
		if flagSet["log-format"] {
			cfg.LogFormat = logFormat
		}
		if flagSet["log-timestamps"] {
			cfg.LogTimestamps = logTimestamps
		}
		if flagSet["log-caller"] {
			cfg.LogCaller = logCaller
		}
	}

	return nil
}
