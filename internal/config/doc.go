// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (workspace kanban.toml, ~/.openclaw/kanban.toml, or OS config directory)
// 3. Project config file (kanban.toml or .kanban.toml in the current directory)
// 4. Environment variables (OPENCLAW_WORKSPACE, CLAWKANBAN_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - $OPENCLAW_WORKSPACE/kanban.toml (when the env var is set)
// - ~/.openclaw/workspace/kanban.toml (default workspace)
// - ~/.openclaw/kanban.toml
// - Windows: %APPDATA%\clawkanban\kanban.toml
// - macOS: ~/Library/Application Support/clawkanban/kanban.toml
// - Linux/BSD: $XDG_CONFIG_HOME/clawkanban/kanban.toml or ~/.config/clawkanban/kanban.toml
//
// Project-level config locations (overrides user config):
// - ./kanban.toml (preferred)
// - ./.kanban.toml
package config
