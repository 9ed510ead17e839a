package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/openclaw/clawkanban/internal/config"
	"github.com/openclaw/clawkanban/internal/kanban"
	"github.com/openclaw/clawkanban/internal/utils"
)

// addCommand creates a task and prints its id.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("clawkanban add", flag.ContinueOnError)
	title := fs.String("title", "", "Task title (required)")
	criticality := fs.String("criticality", "", "Importance: Important or 'Not Important' (required)")
	priority := fs.String("priority", "", "Urgency: Urgent or 'Not Urgent' (required)")
	enthusiasm := fs.String("enthusiasm", "", "'!!!!!', Yay, Meh or 3, 2, 1 (required unless -milestone)")
	description := fs.String("description", "", "Long description")
	url := fs.String("url", "", "Reference URL")
	milestone := fs.Bool("milestone", false, "Mark as milestone (enthusiasm not tracked)")
	due := fs.String("due", "", "Due date (RFC 3339 or YYYY-MM-DD)")
	tags := fs.String("tags", "", "Comma-separated tags")
	subtask := fs.Bool("subtask", false, "Mark as subtask (requires -parent)")
	parent := fs.String("parent", "", "Parent task id")
	order := fs.Int("order", 0, "Sort order among sibling subtasks")
	creator := fs.String("creator", "", "Task creator (defaults to the acting actor)")
	assignee := fs.String("assignee", "", "Assignee")
	var fields fieldList
	fs.Var(&fields, "field", "Custom field as key=value (repeatable)")
	blocks := fs.String("blocks", "", "Comma-separated ids this task blocks")
	blockedBy := fs.String("blocked-by", "", "Comma-separated ids blocking this task")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}
	visited := visitedFlags(fs)

	draft := kanban.Draft{
		Title:           *title,
		LongDescription: *description,
		URL:             *url,
		IsMilestone:     *milestone,
		Tags:            utils.SplitAndTrim(*tags, ","),
		IsSubtask:       *subtask,
		ParentTaskID:    *parent,
		TaskCreator:     *creator,
		Assignee:        *assignee,
		Blocks:          utils.SplitAndTrim(*blocks, ","),
		BlockedBy:       utils.SplitAndTrim(*blockedBy, ","),
		Actor:           cfg.Actor,
	}
	if draft.TaskCreator == "" {
		draft.TaskCreator = cfg.Actor
	}
	if *criticality != "" {
		c, err := kanban.ParseCriticality(*criticality)
		if err != nil {
			return err
		}
		draft.Criticality = c
	}
	if *priority != "" {
		p, err := kanban.ParsePriority(*priority)
		if err != nil {
			return err
		}
		draft.Priority = p
	}
	if *enthusiasm != "" {
		e, err := kanban.ParseEnthusiasm(*enthusiasm)
		if err != nil {
			return err
		}
		draft.Enthusiasm = e
	}
	if *due != "" {
		ts, err := kanban.ParseDueDate(*due)
		if err != nil {
			return err
		}
		draft.DueDate = &ts
	}
	if visited["order"] {
		o := *order
		draft.Order = &o
	}
	customFields, err := parseFieldArgs(fields)
	if err != nil {
		return err
	}
	draft.CustomFields = customFields

	if err := ensureWorkspace(cfg); err != nil {
		return err
	}
	task, err := openStore(cfg).Create(draft)
	if err != nil {
		return err
	}
	logger.Info("added task", "id", task.ID, "title", task.Title)
	fmt.Println(task.ID)
	return nil
}

// updateCommand applies a partial update to one task. Only flags explicitly
// given end up in the patch, so unset flags never reset stored values.
func updateCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("clawkanban update", flag.ContinueOnError)
	id := fs.String("id", "", "Task id (required)")
	title := fs.String("title", "", "Task title")
	description := fs.String("description", "", "Long description")
	url := fs.String("url", "", "Reference URL")
	criticality := fs.String("criticality", "", "Importance: Important or 'Not Important'")
	priority := fs.String("priority", "", "Urgency: Urgent or 'Not Urgent'")
	enthusiasm := fs.String("enthusiasm", "", "'!!!!!', Yay, Meh or 3, 2, 1")
	status := fs.String("status", "", "Open, InProgress, Done, Archived, or Gutter")
	milestone := fs.Bool("milestone", false, "Mark as milestone")
	due := fs.String("due", "", "Due date (RFC 3339 or YYYY-MM-DD)")
	clearDue := fs.Bool("clear-due", false, "Remove the due date")
	tags := fs.String("tags", "", "Comma-separated tags (replaces the whole set)")
	parent := fs.String("parent", "", "Parent task id ('' clears the parent)")
	order := fs.Int("order", 0, "Sort order among sibling subtasks")
	assignee := fs.String("assignee", "", "Assignee")
	var fields fieldList
	fs.Var(&fields, "field", "Custom field as key=value (repeatable, upserts)")
	blocks := fs.String("blocks", "", "Comma-separated ids this task blocks (replaces the set)")
	blockedBy := fs.String("blocked-by", "", "Comma-separated ids blocking this task (replaces the set)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing required flag: -id")
	}
	visited := visitedFlags(fs)

	patch := kanban.Patch{Actor: cfg.Actor}
	if visited["title"] {
		patch.Title = title
	}
	if visited["description"] {
		patch.LongDescription = description
	}
	if visited["url"] {
		patch.URL = url
	}
	if visited["criticality"] {
		c, err := kanban.ParseCriticality(*criticality)
		if err != nil {
			return err
		}
		patch.Criticality = &c
	}
	if visited["priority"] {
		p, err := kanban.ParsePriority(*priority)
		if err != nil {
			return err
		}
		patch.Priority = &p
	}
	if visited["enthusiasm"] {
		e, err := kanban.ParseEnthusiasm(*enthusiasm)
		if err != nil {
			return err
		}
		patch.Enthusiasm = &e
	}
	if visited["status"] {
		s, err := kanban.ParseStatus(*status)
		if err != nil {
			return err
		}
		patch.Status = &s
	}
	if visited["milestone"] {
		patch.IsMilestone = milestone
	}
	if visited["due"] && *clearDue {
		return fmt.Errorf("cannot combine -due with -clear-due")
	}
	if visited["due"] {
		ts, err := kanban.ParseDueDate(*due)
		if err != nil {
			return err
		}
		patch.DueDate = &ts
	}
	patch.ClearDueDate = *clearDue
	if visited["tags"] {
		tagList := utils.SplitAndTrim(*tags, ",")
		patch.Tags = &tagList
	}
	if visited["parent"] {
		patch.ParentTaskID = parent
	}
	if visited["order"] {
		patch.Order = order
	}
	if visited["assignee"] {
		patch.Assignee = assignee
	}
	if len(fields) > 0 {
		customFields, err := parseFieldArgs(fields)
		if err != nil {
			return err
		}
		patch.CustomFields = customFields
	}
	if visited["blocks"] {
		ids := utils.SplitAndTrim(*blocks, ",")
		patch.Blocks = &ids
	}
	if visited["blocked-by"] {
		ids := utils.SplitAndTrim(*blockedBy, ",")
		patch.BlockedBy = &ids
	}

	task, err := openStore(cfg).Update(*id, patch)
	if err != nil {
		return err
	}
	logger.Info("updated task", "id", task.ID)
	fmt.Printf("Updated task ID: %s\n", task.ID)
	return nil
}

// rmCommand deletes a task, printing the removed title.
func rmCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("clawkanban rm", flag.ContinueOnError)
	id := fs.String("id", "", "Task id (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing required flag: -id")
	}

	store := openStore(cfg)
	task, err := store.Get(*id)
	if err != nil {
		return err
	}
	if err := store.Delete(*id); err != nil {
		return err
	}
	logger.Info("deleted task", "id", task.ID, "title", task.Title)
	fmt.Printf("Deleted task ID: %s ('%s')\n", task.ID, task.Title)
	return nil
}

// showCommand prints one task in full, including history.
func showCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("clawkanban show", flag.ContinueOnError)
	id := fs.String("id", "", "Task id (required)")
	format := fs.String("format", "", "Output format: text or json (default text)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing required flag: -id")
	}
	outFormat, err := parseFormat(*format)
	if err != nil {
		return err
	}

	doc, err := openStore(cfg).Load()
	if err != nil {
		return err
	}
	t := doc.Task(*id)
	if t == nil {
		return &kanban.TaskNotFoundError{ID: *id}
	}

	if outFormat == formatJSON {
		clone := t.Clone()
		return printJSON(&clone)
	}

	hasSubtasks := false
	for i := range doc.Tasks {
		if doc.Tasks[i].ParentTaskID == t.ID {
			hasSubtasks = true
			break
		}
	}
	fmt.Print(renderTask(t, hasSubtasks, doc.OpenBlockers(t)))
	return nil
}
