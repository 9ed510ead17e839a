package cmd

import (
	"errors"
	"flag"
	"testing"

	"github.com/openclaw/clawkanban/internal/kanban"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    outputFormat
		wantErr bool
	}{
		{"", formatText, false},
		{"text", formatText, false},
		{"json", formatJSON, false},
		{" JSON ", formatJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseFormat(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFormat(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOptionalBool(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"false", false, false},
		{"1", true, false},
		{"0", false, false},
		{" true ", true, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseOptionalBool("subtasks", tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseOptionalBool(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOptionalBool(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseOptionalBool(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisitedFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("set", "", "")
	fs.String("unset", "fallback", "")
	if err := fs.Parse([]string{"-set", "x"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	visited := visitedFlags(fs)
	if !visited["set"] {
		t.Error("explicitly given flag not marked visited")
	}
	if visited["unset"] {
		t.Error("defaulted flag marked visited")
	}
}

func TestFieldListCollectsRepeats(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var fields fieldList
	fs.Var(&fields, "field", "")
	if err := fs.Parse([]string{"-field", "repo=core", "-field", "branch=main"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(fields) != 2 {
		t.Fatalf("fieldList length = %d, want 2", len(fields))
	}
	if got := fields.String(); got != "repo=core, branch=main" {
		t.Errorf("fieldList.String() = %q", got)
	}
}

func TestParseFieldArgs(t *testing.T) {
	got, err := parseFieldArgs(nil)
	if err != nil || got != nil {
		t.Fatalf("parseFieldArgs(nil) = %v, %v, want nil map and nil error", got, err)
	}

	got, err = parseFieldArgs([]string{"repo=core", "branch=main", "repo=override"})
	if err != nil {
		t.Fatalf("parseFieldArgs() error = %v", err)
	}
	if got["repo"] != "override" || got["branch"] != "main" {
		t.Errorf("parseFieldArgs() = %v, want later duplicate to win", got)
	}

	_, err = parseFieldArgs([]string{"no-equals-sign"})
	var valErr *kanban.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("parseFieldArgs(bad) error = %v, want ValidationError", err)
	}
}

func TestParseStatusList(t *testing.T) {
	got, err := parseStatusList("Open, in-progress ,DONE")
	if err != nil {
		t.Fatalf("parseStatusList() error = %v", err)
	}
	want := []kanban.Status{kanban.StatusOpen, kanban.StatusInProgress, kanban.StatusDone}
	if len(got) != len(want) {
		t.Fatalf("parseStatusList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseStatusList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := parseStatusList("Open,Bogus"); err == nil {
		t.Fatal("parseStatusList(Bogus) expected error")
	}
}
