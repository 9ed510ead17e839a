package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/openclaw/clawkanban/internal/config"
	"github.com/openclaw/clawkanban/internal/kanban"
	"github.com/openclaw/clawkanban/internal/recovery"
	"github.com/openclaw/clawkanban/internal/ui"
)

// initCommand creates the workspace layout, an empty task document, and an
// example config file. Existing files are left untouched.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("clawkanban init", flag.ContinueOnError)
	skipConfig := fs.Bool("skip-config", false, "Do not write the example kanban.toml")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}

	if err := ensureWorkspace(cfg); err != nil {
		return err
	}
	fmt.Printf("Workspace: %s\n", cfg.Workspace)

	tasksPath := cfg.TasksPath()
	if fileExists(tasksPath) {
		fmt.Printf("Tasks file exists, skipping: %s\n", tasksPath)
	} else {
		if err := openStore(cfg).Save(kanban.NewDocument(time.Now())); err != nil {
			return err
		}
		fmt.Printf("Created tasks file: %s\n", tasksPath)
	}

	if !*skipConfig {
		configPath := cfg.ConfigPath()
		if fileExists(configPath) {
			fmt.Printf("Config file exists, skipping: %s\n", configPath)
		} else {
			if err := os.WriteFile(configPath, []byte(config.ExampleConfig()), 0644); err != nil {
				return fmt.Errorf("writing config file: %w", err)
			}
			fmt.Printf("Created config file: %s\n", configPath)
		}
	}
	return nil
}

// recoverCommand writes the recovery snapshot markdown and prints its path.
// Salvage blocks already in the file are kept below the fresh snapshot.
func recoverCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("clawkanban recover", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}

	doc, err := openStore(cfg).Load()
	if err != nil {
		return err
	}
	path := cfg.RecoveryPath()
	if err := recovery.Write(path, doc, time.Now()); err != nil {
		return err
	}
	fmt.Printf("Wrote recovery snapshot: %s\n", path)

	pending, err := recovery.HasPending(path)
	if err != nil {
		return err
	}
	if pending {
		logger.Warn("recovery file holds unmerged salvage blocks", "path", path, "marker", kanban.RecoveryPendingMarker)
	}
	return nil
}

// boardCommand launches the live terminal board.
func boardCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("clawkanban board", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}
	return ui.RunBoard(ctx, openStore(cfg))
}
