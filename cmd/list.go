package cmd

import (
	"flag"
	"fmt"

	"github.com/openclaw/clawkanban/internal/config"
	"github.com/openclaw/clawkanban/internal/kanban"
	"github.com/openclaw/clawkanban/internal/utils"
)

// lsCommand lists tasks, ranked by default, with the full filter surface.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("clawkanban ls", flag.ContinueOnError)
	sortKey := fs.String("sort", "", "Sort key: priority, criticality, urgency, enthusiasm, due_date, order")
	ranked := fs.Bool("ranked", false, "Force the ranked view (the default when -sort is empty)")
	limit := fs.Int("limit", cfg.ListLimit, "Maximum results (0 = all)")
	statusFilter := fs.String("status", "", "Comma-separated explicit status list")
	tags := fs.String("tags", "", "Comma-separated tag filter")
	tagsMode := fs.String("tags-mode", "", "Tag match mode: any or all (default any)")
	parent := fs.String("parent", "", "Only subtasks of the given task id")
	subtasks := fs.String("subtasks", "", "true or false: filter on the subtask flag")
	search := fs.String("search", "", "Case-insensitive match on title and description")
	creator := fs.String("creator", "", "Filter by task creator")
	includeDone := fs.Bool("include-done", false, "Include Done tasks")
	includeArchived := fs.Bool("include-archived", false, "Include Archived tasks")
	format := fs.String("format", "", "Output format: text or json (default text)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}

	key, err := kanban.ParseSortKey(*sortKey)
	if err != nil {
		return err
	}
	if *ranked && key != kanban.SortRanked {
		return fmt.Errorf("cannot combine -ranked with -sort %s", key)
	}
	mode, err := kanban.ParseTagMode(*tagsMode)
	if err != nil {
		return err
	}
	outFormat, err := parseFormat(*format)
	if err != nil {
		return err
	}

	query := kanban.Query{
		IncludeDone:     *includeDone,
		IncludeArchived: *includeArchived,
		Tags:            utils.SplitAndTrim(*tags, ","),
		TagMode:         mode,
		Creator:         *creator,
		ParentID:        *parent,
		Search:          *search,
		Sort:            key,
		Limit:           *limit,
	}
	if *statusFilter != "" {
		statuses, err := parseStatusList(*statusFilter)
		if err != nil {
			return err
		}
		query.Statuses = statuses
	}
	if *subtasks != "" {
		want, err := parseOptionalBool("subtasks", *subtasks)
		if err != nil {
			return err
		}
		query.Subtask = &want
	}

	tasks, err := openStore(cfg).List(query)
	if err != nil {
		return err
	}

	if outFormat == formatJSON {
		if tasks == nil {
			tasks = []kanban.Task{}
		}
		return printJSON(tasks)
	}
	printTaskList(tasks)
	return nil
}

// reportCommand prints the aggregate board report.
func reportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("clawkanban report", flag.ContinueOnError)
	format := fs.String("format", "", "Output format: text or json (default text)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}
	outFormat, err := parseFormat(*format)
	if err != nil {
		return err
	}

	report, err := openStore(cfg).Report()
	if err != nil {
		return err
	}
	if outFormat == formatJSON {
		return printJSON(report)
	}
	fmt.Print(renderReport(report))
	return nil
}
