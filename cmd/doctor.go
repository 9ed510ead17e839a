package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/openclaw/clawkanban/internal/config"
	"github.com/openclaw/clawkanban/internal/kanban"
	"github.com/openclaw/clawkanban/internal/recovery"
)

// doctorCommand checks workspace, config, and document health. rawArgs are
// the args Run received before dispatch; -verbose re-resolves them through
// the source-tracking config loader to show where each value came from.
func doctorCommand(cfg *config.Config, rawArgs []string, args []string) error {
	fs := flag.NewFlagSet("clawkanban doctor", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "Show effective config and task inventory")
	fs.BoolVar(verbose, "v", false, "Show effective config and task inventory")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}

	fmt.Println("ClawKanban Doctor")
	fmt.Println("=================")
	fmt.Println()

	allOK := true

	// Check workspace directory
	fmt.Printf("Workspace: %s\n", cfg.Workspace)
	if info, err := os.Stat(cfg.Workspace); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (created on first add, or run 'clawkanban init')")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Println("  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check config file
	fmt.Printf("Config file: %s\n", cfg.ConfigPath())
	if _, err := os.Stat(cfg.ConfigPath()); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (defaults apply, run 'clawkanban init' to create one)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	if *verbose {
		if !printEffectiveConfig(rawArgs) {
			allOK = false
		}
		fmt.Println()
	}

	// Check tasks document
	store := openStore(cfg)
	fmt.Printf("Tasks file: %s\n", store.Path())
	info, err := os.Stat(store.Path())
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (created on first add)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		if !checkDocument(store, *verbose) {
			allOK = false
		}
	}
	fmt.Println()

	// Check recovery file
	recoveryPath := cfg.RecoveryPath()
	fmt.Printf("Recovery file: %s\n", recoveryPath)
	if _, err := os.Stat(recoveryPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (written by the recover command)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		pending, pendErr := recovery.HasPending(recoveryPath)
		switch {
		case pendErr != nil:
			fmt.Printf("  ❌ Error: %v\n", pendErr)
			allOK = false
		case pending:
			fmt.Printf("  ❌ Holds unmerged %s salvage blocks\n", kanban.RecoveryPendingMarker)
			allOK = false
		default:
			fmt.Println("  ✅ OK")
		}
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. ClawKanban may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkDocument loads and audits the task document, printing findings.
func checkDocument(store *kanban.Store, verbose bool) bool {
	doc, err := store.Load()
	if err != nil {
		var corrupt *kanban.StoreCorruptError
		if errors.As(err, &corrupt) && len(corrupt.Findings) > 0 {
			fmt.Println("  ❌ Validation failed:")
			for _, finding := range corrupt.Findings {
				fmt.Printf("     - %s\n", finding)
			}
		} else {
			fmt.Printf("  ❌ Load error: %v\n", err)
		}
		return false
	}

	fmt.Printf("  ✅ Valid (%d tasks)\n", len(doc.Tasks))
	ok := true
	for _, finding := range kanban.AuditRelationships(doc) {
		fmt.Printf("  ❌ %s\n", finding)
		ok = false
	}
	for _, cycle := range kanban.BlockCycles(doc) {
		fmt.Printf("  ⚠️  Blocking cycle: %s\n", strings.Join(cycle, " -> "))
	}
	counts := doc.CountByStatus()
	for _, status := range kanban.AllStatuses() {
		limit := doc.Metadata.WIPLimits[status]
		if limit > 0 && counts[status] > limit {
			fmt.Printf("  ⚠️  %s holds %d tasks, limit is %d\n", status, counts[status], limit)
		}
	}
	if verbose {
		for _, t := range doc.Tasks {
			fmt.Printf("    - [%s] %s: %s\n", t.Status, t.ID, t.Title)
		}
	}
	return ok
}

// printEffectiveConfig re-resolves the CLI args through the source-tracking
// loader and prints every setting with its origin.
func printEffectiveConfig(rawArgs []string) bool {
	withSources, err := config.LoadWithSources(flag.NewFlagSet("clawkanban", flag.ContinueOnError), rawArgs)
	if err != nil {
		fmt.Printf("  ❌ Error resolving config: %v\n", err)
		return false
	}
	c := withSources.Config
	src := withSources.Sources
	fmt.Println("Effective config:")
	fmt.Printf("  workspace = %s (%s)\n", c.Workspace, src["workspace"])
	fmt.Printf("  tasks_file = %s (%s)\n", c.TasksFile, src["tasks_file"])
	fmt.Printf("  recovery_file = %s (%s)\n", c.RecoveryFile, src["recovery_file"])
	fmt.Printf("  actor = %s (%s)\n", c.Actor, src["actor"])
	fmt.Printf("  list_limit = %d (%s)\n", c.ListLimit, src["list_limit"])
	fmt.Printf("  log_level = %s (%s)\n", c.LogLevel, src["log_level"])
	fmt.Printf("  log_format = %s (%s)\n", c.LogFormat, src["log_format"])
	fmt.Printf("  log_timestamps = %t (%s)\n", c.LogTimestamps, src["log_timestamps"])
	fmt.Printf("  log_caller = %t (%s)\n", c.LogCaller, src["log_caller"])
	return true
}
