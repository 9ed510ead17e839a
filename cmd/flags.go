package cmd

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/openclaw/clawkanban/internal/kanban"
	"github.com/openclaw/clawkanban/internal/utils"
)

// outputFormat selects between human and machine output.
type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
)

// parseFormat normalizes a -format value, defaulting empty to text.
func parseFormat(s string) (outputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return formatText, nil
	case "json":
		return formatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q, must be text or json", s)
}

// visitedFlags returns the set of flag names explicitly given on the command
// line. Update-style commands apply only those, so unset flags never clobber
// stored values with their defaults.
func visitedFlags(fs *flag.FlagSet) map[string]bool {
	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})
	return visited
}

// parseOptionalBool parses a true/false flag value given as a string, so
// leaving the flag off means "no filter" rather than false.
func parseOptionalBool(name, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("invalid -%s value %q, must be true or false", name, value)
	}
	return b, nil
}

// fieldList collects repeated -field flags before they are parsed into
// key=value pairs.
type fieldList []string

func (f *fieldList) String() string {
	return strings.Join(*f, ", ")
}

func (f *fieldList) Set(value string) error {
	*f = append(*f, value)
	return nil
}

// parseFieldArgs turns raw -field arguments into a custom-field map. Later
// duplicates of a key win, matching upsert semantics.
func parseFieldArgs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := utils.ParseAssignment(arg)
		if !ok {
			return nil, &kanban.ValidationError{Field: "field", Err: fmt.Errorf("expected key=value, got %q", arg)}
		}
		fields[key] = value
	}
	return fields, nil
}

// parseStatusList parses a comma-separated status filter.
func parseStatusList(s string) ([]kanban.Status, error) {
	parts := utils.SplitAndTrim(s, ",")
	statuses := make([]kanban.Status, 0, len(parts))
	for _, part := range parts {
		status, err := kanban.ParseStatus(part)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
