// Package workspace provides constants and utilities for the OpenClaw workspace layout.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDir is the default workspace location.
	DefaultDir = "~/.openclaw/workspace"

	// TasksFile is the task document file name (inside the workspace).
	TasksFile = "tasks.json"

	// MemoryDir is the durable memory directory name (inside the workspace).
	MemoryDir = "memory"

	// RecoveryFile is the recovery file name (inside memory/).
	RecoveryFile = "kanban_recovery.md"

	// ConfigFile is the workspace config file name.
	ConfigFile = "kanban.toml"
)

// TasksPath returns the full path to the task document within a workspace.
func TasksPath(dir string) string {
	return filepath.Join(dir, TasksFile)
}

// MemoryPath returns the full path to the memory directory within a workspace.
func MemoryPath(dir string) string {
	return filepath.Join(dir, MemoryDir)
}

// RecoveryPath returns the full path to the recovery file within a workspace.
func RecoveryPath(dir string) string {
	return filepath.Join(dir, MemoryDir, RecoveryFile)
}

// ConfigPath returns the full path to the config file within a workspace.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFile)
}

// Ensure creates the workspace directory and its memory subdirectory.
func Ensure(dir string) error {
	if dir == "" {
		return fmt.Errorf("workspace directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating workspace %s: %w", dir, err)
	}
	if err := os.MkdirAll(MemoryPath(dir), 0755); err != nil {
		return fmt.Errorf("creating memory directory: %w", err)
	}
	return nil
}

// EnsureParent creates the parent directory of path. Configured task and
// recovery files may live outside the standard layout.
func EnsureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
