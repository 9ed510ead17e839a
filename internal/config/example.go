package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# ClawKanban configuration file
# Values can be overridden by environment variables or CLI flags

# Workspace directory holding the task document (supports ~ expansion)
workspace = "~/.openclaw/workspace"

# Task document, relative to the workspace
tasks_file = "tasks.json"

# Recovery file, relative to the workspace
recovery_file = "memory/kanban_recovery.md"

# Actor recorded in task history for mutations
actor = "Nova"

# Default cap for list output (0 = unlimited)
list_limit = 0

# Logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
