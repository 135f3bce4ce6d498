package schedule

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/qri-io/jsonschema"
)

// strictSchemaJSON describes the fully well-formed schedule payload: string
// notes keyed by day number and seven complete task objects. The submit path
// stays lenient, so violations are reported for logging rather than
// rejection.
const strictSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["notes", "tasks"],
  "properties": {
    "notes": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "tasks": {
      "type": "array",
      "minItems": 7,
      "maxItems": 7,
      "items": {
        "type": "object",
        "required": ["id", "details", "completionDay", "duration", "comments"],
        "properties": {
          "id": {"type": "integer", "minimum": 1, "maximum": 7},
          "details": {"type": "string"},
          "completionDay": {"type": "string"},
          "duration": {"type": "string"},
          "comments": {"type": "string"}
        }
      }
    }
  }
}`

var (
	strictOnce   sync.Once
	strictSchema *jsonschema.Schema
)

func compiledStrictSchema() *jsonschema.Schema {
	strictOnce.Do(func() {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(strictSchemaJSON), rs); err != nil {
			panic("schedule: bad strict schema: " + err.Error())
		}
		strictSchema = rs
	})
	return strictSchema
}

// StrictViolations validates a payload against the strict schedule schema
// and returns one message per violation. Unparsable payloads return a single
// parse message; Normalize remains the authority on accept/reject.
func StrictViolations(ctx context.Context, raw json.RawMessage) []string {
	payload := raw
	// unwrap string-wrapped JSON the same way Normalize does
	if len(payload) > 0 && payload[0] == '"' {
		var s string
		if err := json.Unmarshal(payload, &s); err == nil {
			payload = []byte(s)
		}
	}

	verrs, err := compiledStrictSchema().ValidateBytes(ctx, payload)
	if err != nil {
		return []string{"payload is not valid JSON"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, v := range verrs {
		msgs = append(msgs, v.Message)
	}
	return msgs
}
