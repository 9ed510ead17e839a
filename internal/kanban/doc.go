// Package kanban owns the board document: the task entity, the JSON store,
// relationship consistency, WIP limits, and the ranked listing engine.
//
// The document format (tasks.json):
//
//	{
//	  "$schema": "https://openclaw.io/v1/kanban.schema.json",
//	  "metadata": {
//	    "last_sync": "2025-01-02T15:04:05Z",
//	    "version": 1,
//	    "wip_limits": {"InProgress": 2}
//	  },
//	  "tasks": [
//	    {
//	      "id": "6fa0f5a2-...",
//	      "title": "Ship the thing",
//	      "criticality": "Important",
//	      "priority": "Urgent",
//	      "enthusiasm": 2,
//	      "status": "Open",
//	      "is_milestone": false,
//	      "tags": ["release"],
//	      "blocks": [],
//	      "blocked_by": [],
//	      "task_creator": "Nova",
//	      "created_at": "2025-01-02T15:04:05Z",
//	      "updated_at": "2025-01-02T15:04:05Z"
//	    }
//	  ]
//	}
//
// # Enum spellings
//
//   - criticality: "Important" | "Not Important"
//   - priority:    "Urgent" | "Not Urgent"
//   - status:      "Open" | "InProgress" | "Done" | "Archived" | "Gutter"
//   - enthusiasm:  persisted as an ordinal (3 high, 2 medium, 1 low, 0 for
//     milestones); accepted on input as "!!!!!", "Yay", "Meh" or "3", "2", "1"
//
// # Timestamps
//
// All timestamps are written as RFC 3339 in UTC. Due dates are accepted on
// input as RFC 3339, as a naive "2006-01-02T15:04:05" (assumed UTC), or as a
// bare "2006-01-02" date (midnight UTC).
//
// # Mutation discipline
//
// Every mutating operation is a whole-document read-modify-write: the store
// loads the file, validates the change against the in-memory document, applies
// it, and persists atomically (temp file + rename). Validation failures leave
// both the file and the in-memory document untouched.
package kanban
