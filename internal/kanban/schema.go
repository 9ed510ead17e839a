package kanban

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/openclaw/clawkanban/internal/utils"
)

// bundledSchema is the document schema embedded in the binary so shape checks
// never fetch anything. Optional task fields admit null because earlier
// writers serialized absent values explicitly; unknown extra fields pass so
// documents from those writers keep loading.
const bundledSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "OpenClaw Kanban",
  "type": "object",
  "required": ["metadata", "tasks"],
  "properties": {
    "$schema": { "type": "string" },
    "metadata": {
      "type": "object",
      "required": ["version"],
      "properties": {
        "last_sync": { "type": "string" },
        "version": { "type": "integer", "minimum": 1 },
        "wip_limits": {
          "type": "object",
          "additionalProperties": { "type": "integer", "minimum": 0 }
        }
      }
    },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "criticality", "priority", "status"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "title": { "type": "string", "minLength": 1 },
          "long_description": { "type": ["string", "null"] },
          "url": { "type": ["string", "null"] },
          "criticality": { "type": "string", "enum": ["Important", "Not Important"] },
          "priority": { "type": "string", "enum": ["Urgent", "Not Urgent"] },
          "enthusiasm": { "type": ["integer", "null"], "minimum": 0, "maximum": 3 },
          "status": { "type": "string", "enum": ["Open", "InProgress", "Done", "Archived", "Gutter"] },
          "is_milestone": { "type": ["boolean", "null"] },
          "due_date": { "type": ["string", "null"] },
          "tags": { "type": ["array", "null"], "items": { "type": "string" } },
          "is_subtask": { "type": ["boolean", "null"] },
          "parent_task_id": { "type": ["string", "null"] },
          "order": { "type": ["integer", "null"] },
          "task_creator": { "type": ["string", "null"] },
          "assignee": { "type": ["string", "null"] },
          "custom_fields": {
            "type": ["object", "null"],
            "additionalProperties": { "type": "string" }
          },
          "blocks": { "type": ["array", "null"], "items": { "type": "string" } },
          "blocked_by": { "type": ["array", "null"], "items": { "type": "string" } },
          "history": {
            "type": ["array", "null"],
            "items": {
              "type": "object",
              "required": ["timestamp", "event"],
              "properties": {
                "timestamp": { "type": "string" },
                "event": { "type": "string" },
                "actor": { "type": ["string", "null"] }
              }
            }
          },
          "created_at": { "type": ["string", "null"] },
          "updated_at": { "type": ["string", "null"] }
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaCompile  error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(SchemaURL, strings.NewReader(bundledSchema)); err != nil {
			schemaCompile = fmt.Errorf("failed to add bundled schema: %w", err)
			return
		}
		compiledSchema, schemaCompile = compiler.Compile(SchemaURL)
		if schemaCompile != nil {
			schemaCompile = fmt.Errorf("failed to compile bundled schema: %w", schemaCompile)
		}
	})
	return compiledSchema, schemaCompile
}

// ValidateShape checks raw document bytes against the embedded schema and
// returns one finding per offending location. A nil slice means the document
// conforms. The error return is reserved for malformed JSON and schema
// compilation failures, not shape violations.
func ValidateShape(raw []byte) ([]string, error) {
	schema, err := documentSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return []string{err.Error()}, nil
		}
		return collectFindings(nil, ve), nil
	}
	return nil, nil
}

// collectFindings walks the validation error tree and records leaf causes,
// mirroring how the schema library nests errors per location.
func collectFindings(findings []string, err *jsonschema.ValidationError) []string {
	if err == nil {
		return findings
	}

	if len(err.Causes) == 0 {
		if path := utils.JSONPointerToPath(err.InstanceLocation); path != "" {
			return append(findings, fmt.Sprintf("%s: %s", path, err.Message))
		}
		return append(findings, err.Message)
	}

	for _, cause := range err.Causes {
		findings = collectFindings(findings, cause)
	}
	return findings
}
