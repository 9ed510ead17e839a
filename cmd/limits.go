package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/openclaw/clawkanban/internal/config"
	"github.com/openclaw/clawkanban/internal/kanban"
)

// setLimitCommand sets or clears a WIP limit for one status column.
func setLimitCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("clawkanban set-limit", flag.ContinueOnError)
	statusArg := fs.String("status", "", "Status column (required)")
	limit := fs.Int("limit", 0, "Maximum tasks in the column, 0 clears the limit (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}
	if *statusArg == "" {
		return fmt.Errorf("missing required flag: -status")
	}
	if !visitedFlags(fs)["limit"] {
		return fmt.Errorf("missing required flag: -limit")
	}
	status, err := kanban.ParseStatus(*statusArg)
	if err != nil {
		return err
	}

	if err := ensureWorkspace(cfg); err != nil {
		return err
	}
	store := openStore(cfg)
	before, err := store.WIPLimits()
	if err != nil {
		return err
	}
	if err := store.SetWIPLimit(status, *limit); err != nil {
		return err
	}

	switch {
	case *limit > 0:
		logger.Info("set wip limit", "status", status, "limit", *limit)
		fmt.Printf("Set WIP limit for status '%s' to %d.\n", status, *limit)
	default:
		if _, had := before[status]; had {
			logger.Info("removed wip limit", "status", status)
			fmt.Printf("Removed WIP limit for status '%s'.\n", status)
		} else {
			fmt.Printf("No WIP limit was set for status '%s'.\n", status)
		}
	}
	return nil
}

// limitsCommand prints the configured WIP limits in board order.
func limitsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("clawkanban limits", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}

	limits, err := openStore(cfg).WIPLimits()
	if err != nil {
		return err
	}
	if len(limits) == 0 {
		fmt.Println("No WIP limits are currently set.")
		return nil
	}
	fmt.Println("Current WIP Limits:")
	for _, status := range kanban.AllStatuses() {
		if limit, ok := limits[status]; ok {
			fmt.Printf("- %s: %d\n", status, limit)
		}
	}
	return nil
}
