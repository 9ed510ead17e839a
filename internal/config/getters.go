package config

import (
	"path/filepath"

	"github.com/openclaw/clawkanban/internal/workspace"
)

// TasksPath returns the resolved path of the task document.
func (c *Config) TasksPath() string {
	return c.resolve(c.TasksFile)
}

// RecoveryPath returns the resolved path of the recovery file.
func (c *Config) RecoveryPath() string {
	return c.resolve(c.RecoveryFile)
}

// ConfigPath returns the path of the workspace config file,
// whether or not it exists.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Workspace, workspace.ConfigFile)
}

// resolve expands p and joins it with the workspace unless absolute.
func (c *Config) resolve(p string) string {
	p = expandPath(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Workspace, p)
}
