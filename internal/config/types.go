package config

import (
	"github.com/openclaw/clawkanban/internal/workspace"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultWorkspace    = workspace.DefaultDir
	DefaultTasksFile    = workspace.TasksFile
	DefaultRecoveryFile = workspace.MemoryDir + "/" + workspace.RecoveryFile
	DefaultActor        = "Nova"
	DefaultListLimit    = 0
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds the full configuration for clawkanban.
type Config struct {
	// Workspace layout. TasksFile and RecoveryFile are resolved
	// relative to Workspace unless absolute.
	Workspace    string `toml:"workspace"`
	TasksFile    string `toml:"tasks_file"`
	RecoveryFile string `toml:"recovery_file"`

	// Actor recorded in task history for mutations.
	Actor string `toml:"actor"`

	// Default cap for list output (0 = unlimited).
	ListLimit int `toml:"list_limit"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}
