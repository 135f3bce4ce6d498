package schedule

import (
	"bytes"
	"encoding/json"

	"github.com/crewplan/crewplan/pkg/models"
)

// taskSlots is the fixed number of task slots in a schedule.
const taskSlots = 7

// Result is the outcome of normalizing a schedule payload. Data is always
// usable: when the input cannot be parsed at all, Valid is false and Data
// holds the default shape.
type Result struct {
	Valid bool
	Data  models.ScheduleData
}

// DefaultData returns the canonical empty schedule: no notes and seven blank
// tasks with slot IDs 1..7.
func DefaultData() models.ScheduleData {
	tasks := make([]json.RawMessage, 0, taskSlots)
	for i := 1; i <= taskSlots; i++ {
		b, _ := json.Marshal(models.Task{ID: i})
		tasks = append(tasks, b)
	}
	return models.ScheduleData{
		Notes: map[string]any{},
		Tasks: tasks,
	}
}

// Normalize coerces an arbitrary schedule payload into the canonical shape.
// The input may be a JSON object or a JSON string whose text is itself JSON.
// It never fails: unparsable input yields Valid=false with the default
// shape, and a parsable payload with a missing or wrong-sized tasks array is
// valid with the seven defaults substituted. A well-formed seven-element
// tasks array passes through untouched, even when individual elements are
// malformed. Normalizing an already-canonical value returns it unchanged.
func Normalize(raw json.RawMessage) Result {
	payload := bytes.TrimSpace(raw)
	if len(payload) == 0 {
		return Result{Valid: false, Data: DefaultData()}
	}

	// A string payload carries JSON as text; unwrap it first.
	if payload[0] == '"' {
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return Result{Valid: false, Data: DefaultData()}
		}
		payload = []byte(s)
	}

	var probe any
	if err := json.Unmarshal(payload, &probe); err != nil || probe == nil {
		return Result{Valid: false, Data: DefaultData()}
	}

	// Field extraction is best-effort: a parsable non-object payload is
	// still valid and gets the full default shape.
	var fields struct {
		Notes json.RawMessage `json:"notes"`
		Tasks json.RawMessage `json:"tasks"`
	}
	_ = json.Unmarshal(payload, &fields)

	data := DefaultData()

	if len(fields.Notes) > 0 {
		var notes map[string]any
		if err := json.Unmarshal(fields.Notes, &notes); err == nil && notes != nil {
			data.Notes = notes
		}
	}

	if len(fields.Tasks) > 0 {
		var tasks []json.RawMessage
		if err := json.Unmarshal(fields.Tasks, &tasks); err == nil && len(tasks) == taskSlots {
			data.Tasks = tasks
		}
	}

	return Result{Valid: true, Data: data}
}

// Encode serializes a canonical value back to the JSON text persisted and
// served by the API.
func Encode(d models.ScheduleData) string {
	b, _ := json.Marshal(d)
	return string(b)
}
