package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/openclaw/clawkanban/internal/workspace"
)

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{workspace.ConfigFile, ".kanban.toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// The workspace itself may carry a kanban.toml; that wins over the
// ~/.openclaw fallback and the OS-specific config directories.
func findUserConfigFile() string {
	// An explicit workspace (env only at this point; flags are parsed later
	// and only override values, not where files are discovered)
	if ws := os.Getenv("OPENCLAW_WORKSPACE"); ws != "" {
		wsConfigPath := filepath.Join(expandPath(ws), workspace.ConfigFile)
		if _, err := os.Stat(wsConfigPath); err == nil {
			return wsConfigPath
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		// Default workspace location
		wsConfigPath := filepath.Join(home, ".openclaw", "workspace", workspace.ConfigFile)
		if _, err := os.Stat(wsConfigPath); err == nil {
			return wsConfigPath
		}
		// ~/.openclaw/kanban.toml
		userConfigPath := filepath.Join(home, ".openclaw", workspace.ConfigFile)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	// Fall back to OS-specific config directories
	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, "clawkanban", workspace.ConfigFile)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		// On Windows, use %APPDATA%\clawkanban
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		// On macOS, use ~/Library/Application Support
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		// On Linux/BSD, respect XDG_CONFIG_HOME or use ~/.config
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Workspace = DefaultWorkspace
	cfg.TasksFile = DefaultTasksFile
	cfg.RecoveryFile = DefaultRecoveryFile
	cfg.Actor = DefaultActor
	cfg.ListLimit = DefaultListLimit

	// Logging defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
}

// GetConfigFile returns the active config file path (project or user).
func (cws *ConfigWithSources) GetConfigFile() string {
	for _, source := range cws.Sources {
		if source == SourceProjFile {
			if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
				return projectConfigFile
			}
		}
	}
	for _, source := range cws.Sources {
		if source == SourceUserFile {
			if userConfigFile := findUserConfigFile(); userConfigFile != "" {
				return userConfigFile
			}
		}
	}
	return ""
}
