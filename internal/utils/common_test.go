package utils

import (
	"reflect"
	"testing"
)

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name string
		s    string
		sep  string
		want []string
	}{
		{"simple csv", "a,b,c", ",", []string{"a", "b", "c"}},
		{"spaces around parts", " a , b ,c ", ",", []string{"a", "b", "c"}},
		{"empty parts dropped", "a,,b,", ",", []string{"a", "b"}},
		{"whitespace-only parts dropped", "a, ,b", ",", []string{"a", "b"}},
		{"empty input", "", ",", []string{}},
		{"no separator present", "solo", ",", []string{"solo"}},
		{"alternate separator", "x; y;z", ";", []string{"x", "y", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAndTrim(tt.s, tt.sep)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitAndTrim(%q, %q) = %v, want %v", tt.s, tt.sep, got, tt.want)
			}
		})
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		name      string
		s         string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"simple", "repo=core", "repo", "core", true},
		{"spaces trimmed", " repo = core ", "repo", "core", true},
		{"empty value allowed", "repo=", "repo", "", true},
		{"value keeps later equals", "url=https://x/?a=b", "url", "https://x/?a=b", true},
		{"missing equals", "repo", "", "", false},
		{"empty key", "=core", "", "", false},
		{"blank key", "  =core", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := ParseAssignment(tt.s)
			if key != tt.wantKey || value != tt.wantValue || ok != tt.wantOK {
				t.Errorf("ParseAssignment(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.s, key, value, ok, tt.wantKey, tt.wantValue, tt.wantOK)
			}
		})
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		name string
		ptr  string
		want string
	}{
		{"root", "#", ""},
		{"empty", "", ""},
		{"simple property", "#/metadata", "metadata"},
		{"nested property", "#/metadata/version", "metadata.version"},
		{"array index", "#/tasks/0/status", "tasks[0].status"},
		{"trailing index", "#/tasks/12", "tasks[12]"},
		{"no fragment prefix", "/tasks/0/title", "tasks[0].title"},
		{"escaped slash", "#/custom_fields/a~1b", "custom_fields.a/b"},
		{"escaped tilde", "#/custom_fields/a~0b", "custom_fields.a~b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
