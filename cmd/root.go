// Package cmd implements the CLI command structure for clawkanban.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/openclaw/clawkanban/internal/config"
	"github.com/openclaw/clawkanban/internal/kanban"
	"github.com/openclaw/clawkanban/internal/logging"
	"github.com/openclaw/clawkanban/internal/workspace"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the clawkanban CLI. Global flags must come before the
// subcommand; each subcommand parses its own flags from the remainder.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clawkanban", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags (workspace, actor, logging) are defined by config.Load
	// on the same flag set.
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.FromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, os.Stdout)
		return nil
	}
	subcommand := remainingArgs[0]
	remainingArgs = remainingArgs[1:]

	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "update":
		return updateCommand(cfg, logger, remainingArgs)
	case "rm", "delete":
		return rmCommand(cfg, logger, remainingArgs)
	case "show":
		return showCommand(cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, remainingArgs)
	case "report":
		return reportCommand(cfg, remainingArgs)
	case "set-limit":
		return setLimitCommand(cfg, logger, remainingArgs)
	case "limits":
		return limitsCommand(cfg, remainingArgs)
	case "recover":
		return recoverCommand(cfg, logger, remainingArgs)
	case "board":
		return boardCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, args, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "version", "--version":
		return versionCommand()
	case "help", "--help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore builds the task store over the configured document and recovery
// paths.
func openStore(cfg *config.Config) *kanban.Store {
	return kanban.NewStore(cfg.TasksPath(), cfg.RecoveryPath())
}

// ensureWorkspace creates the workspace layout before a mutating command
// runs, so a fresh install works without an explicit init.
func ensureWorkspace(cfg *config.Config) error {
	if err := workspace.Ensure(cfg.Workspace); err != nil {
		return err
	}
	if err := workspace.EnsureParent(cfg.TasksPath()); err != nil {
		return fmt.Errorf("creating tasks directory: %w", err)
	}
	if err := workspace.EnsureParent(cfg.RecoveryPath()); err != nil {
		return fmt.Errorf("creating recovery directory: %w", err)
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("clawkanban version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "ClawKanban - A JSON-backed kanban board for personal and agent use")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  clawkanban [global options] <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add        Add a task")
	fmt.Fprintln(w, "  update     Update fields on a task")
	fmt.Fprintln(w, "  rm         Delete a task")
	fmt.Fprintln(w, "  show       Show one task in full")
	fmt.Fprintln(w, "  ls         List tasks (ranked view by default)")
	fmt.Fprintln(w, "  report     Aggregate board metrics")
	fmt.Fprintln(w, "  set-limit  Set or clear a WIP limit for a status column")
	fmt.Fprintln(w, "  limits     Show configured WIP limits")
	fmt.Fprintln(w, "  recover    Write the recovery snapshot markdown")
	fmt.Fprintln(w, "  board      Live terminal board (read-only)")
	fmt.Fprintln(w, "  doctor     Check workspace, config, and document health")
	fmt.Fprintln(w, "  init       Create the workspace layout and an example config")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        Task title (required)")
	fmt.Fprintln(w, "  -criticality string")
	fmt.Fprintln(w, "        Importance: Important or 'Not Important' (required)")
	fmt.Fprintln(w, "  -priority string")
	fmt.Fprintln(w, "        Urgency: Urgent or 'Not Urgent' (required)")
	fmt.Fprintln(w, "  -enthusiasm string")
	fmt.Fprintln(w, "        '!!!!!', Yay, Meh or 3, 2, 1 (required unless -milestone)")
	fmt.Fprintln(w, "  -description string")
	fmt.Fprintln(w, "        Long description")
	fmt.Fprintln(w, "  -url string")
	fmt.Fprintln(w, "        Reference URL")
	fmt.Fprintln(w, "  -milestone")
	fmt.Fprintln(w, "        Mark as milestone (enthusiasm not tracked)")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Due date (RFC 3339 or YYYY-MM-DD)")
	fmt.Fprintln(w, "  -tags string")
	fmt.Fprintln(w, "        Comma-separated tags")
	fmt.Fprintln(w, "  -subtask")
	fmt.Fprintln(w, "        Mark as subtask (requires -parent)")
	fmt.Fprintln(w, "  -parent string")
	fmt.Fprintln(w, "        Parent task id")
	fmt.Fprintln(w, "  -order int")
	fmt.Fprintln(w, "        Sort order among sibling subtasks")
	fmt.Fprintln(w, "  -creator string")
	fmt.Fprintln(w, "        Task creator (defaults to the acting actor)")
	fmt.Fprintln(w, "  -assignee string")
	fmt.Fprintln(w, "        Assignee")
	fmt.Fprintln(w, "  -field key=value")
	fmt.Fprintln(w, "        Custom field (repeatable)")
	fmt.Fprintln(w, "  -blocks string")
	fmt.Fprintln(w, "        Comma-separated ids this task blocks")
	fmt.Fprintln(w, "  -blocked-by string")
	fmt.Fprintln(w, "        Comma-separated ids blocking this task")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Update Options (use with 'update' command):")
	fmt.Fprintln(w, "  -id string")
	fmt.Fprintln(w, "        Task id (required)")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Open, InProgress, Done, Archived, or Gutter")
	fmt.Fprintln(w, "  -clear-due")
	fmt.Fprintln(w, "        Remove the due date")
	fmt.Fprintln(w, "  Plus any add option except -creator and -subtask. Only flags")
	fmt.Fprintln(w, "  explicitly given are applied; -parent '' clears the parent.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -sort string")
	fmt.Fprintln(w, "        Sort key: priority, criticality, urgency, enthusiasm, due_date, order")
	fmt.Fprintln(w, "  -ranked")
	fmt.Fprintln(w, "        Force the ranked view (the default when -sort is empty)")
	fmt.Fprintln(w, "  -limit int")
	fmt.Fprintln(w, "        Maximum results (0 = all)")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Comma-separated explicit status list (overrides default hiding)")
	fmt.Fprintln(w, "  -tags string")
	fmt.Fprintln(w, "        Comma-separated tag filter")
	fmt.Fprintln(w, "  -tags-mode string")
	fmt.Fprintln(w, "        Tag match mode: any or all (default any)")
	fmt.Fprintln(w, "  -parent string")
	fmt.Fprintln(w, "        Only subtasks of the given task id")
	fmt.Fprintln(w, "  -subtasks string")
	fmt.Fprintln(w, "        true or false: filter on the subtask flag")
	fmt.Fprintln(w, "  -search string")
	fmt.Fprintln(w, "        Case-insensitive match on title and description")
	fmt.Fprintln(w, "  -creator string")
	fmt.Fprintln(w, "        Filter by task creator")
	fmt.Fprintln(w, "  -include-done")
	fmt.Fprintln(w, "        Include Done tasks")
	fmt.Fprintln(w, "  -include-archived")
	fmt.Fprintln(w, "        Include Archived tasks")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format: text or json (default text)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  clawkanban add -title \"Ship v1\" -criticality Important -priority Urgent -enthusiasm Yay")
	fmt.Fprintln(w, "  clawkanban update -id <id> -status InProgress")
	fmt.Fprintln(w, "  clawkanban ls -tags infra,release -tags-mode all")
	fmt.Fprintln(w, "  clawkanban set-limit -status InProgress -limit 2")
}

// unexpectedArgs rejects stray positional arguments left after a command
// parsed its flags. Every value the CLI takes arrives through a flag.
func unexpectedArgs(fs *flag.FlagSet) error {
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}
	return nil
}
