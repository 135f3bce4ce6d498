package schedule_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/crewplan/crewplan/internal/schedule"
	"github.com/crewplan/crewplan/pkg/models"
)

func decodeTasks(t *testing.T, raws []json.RawMessage) []models.Task {
	t.Helper()
	out := make([]models.Task, 0, len(raws))
	for _, r := range raws {
		var task models.Task
		if err := json.Unmarshal(r, &task); err != nil {
			t.Fatalf("decode task %s: %v", r, err)
		}
		out = append(out, task)
	}
	return out
}

func assertDefaultShape(t *testing.T, d models.ScheduleData) {
	t.Helper()
	if len(d.Notes) != 0 {
		t.Fatalf("expected empty notes, got %v", d.Notes)
	}
	tasks := decodeTasks(t, d.Tasks)
	if len(tasks) != 7 {
		t.Fatalf("expected 7 tasks, got %d", len(tasks))
	}
	for i, task := range tasks {
		if task.ID != i+1 {
			t.Fatalf("task %d: expected id %d got %d", i, i+1, task.ID)
		}
		if task.Details != "" || task.CompletionDay != "" || task.Duration != "" || task.Comments != "" {
			t.Fatalf("task %d: expected blank fields, got %+v", i, task)
		}
	}
}

func TestNormalize_DefaultSubstitution(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "MissingTasks", input: `{"notes":{}}`},
		{name: "TasksNotArray", input: `{"tasks":"nope"}`},
		{name: "TasksTooShort", input: `{"tasks":[{"id":1}]}`},
		{name: "TasksTooLong", input: `{"tasks":[1,2,3,4,5,6,7,8]}`},
		{name: "EmptyObject", input: `{}`},
		{name: "NonObjectPayload", input: `5`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := schedule.Normalize([]byte(tc.input))
			if !res.Valid {
				t.Fatalf("expected valid result for %q", tc.input)
			}
			if len(res.Data.Notes) != 0 {
				t.Fatalf("expected empty notes for %q, got %v", tc.input, res.Data.Notes)
			}
			tasks := decodeTasks(t, res.Data.Tasks)
			if len(tasks) != 7 {
				t.Fatalf("expected 7 default tasks, got %d", len(tasks))
			}
			for i, task := range tasks {
				if task.ID != i+1 || task.Details != "" {
					t.Fatalf("task %d not default: %+v", i, task)
				}
			}
		})
	}
}

func TestNormalize_UnparsableInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "Garbage", input: `not json at all`},
		{name: "Truncated", input: `{"notes":{`},
		{name: "Empty", input: ``},
		{name: "Null", input: `null`},
		{name: "StringWrappedGarbage", input: `"{{{{"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := schedule.Normalize([]byte(tc.input))
			if res.Valid {
				t.Fatalf("expected invalid result for %q", tc.input)
			}
			assertDefaultShape(t, res.Data)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	input := `{"notes":{"5":"dentist","12":"standup"},"tasks":[` +
		`{"id":1,"details":"inventory","completionDay":"Mon","duration":"2h","comments":""},` +
		`{"id":2,"details":"","completionDay":"","duration":"","comments":""},` +
		`{"id":3,"details":"","completionDay":"","duration":"","comments":""},` +
		`{"id":4,"details":"","completionDay":"","duration":"","comments":""},` +
		`{"id":5,"details":"","completionDay":"","duration":"","comments":""},` +
		`{"id":6,"details":"","completionDay":"","duration":"","comments":""},` +
		`{"id":7,"details":"","completionDay":"","duration":"","comments":""}]}`

	first := schedule.Normalize([]byte(input))
	if !first.Valid {
		t.Fatalf("expected valid first pass")
	}

	second := schedule.Normalize([]byte(schedule.Encode(first.Data)))
	if !second.Valid {
		t.Fatalf("expected valid second pass")
	}
	if schedule.Encode(first.Data) != schedule.Encode(second.Data) {
		t.Fatalf("normalize is not a fixed point:\nfirst:  %s\nsecond: %s",
			schedule.Encode(first.Data), schedule.Encode(second.Data))
	}
	if first.Data.Notes["5"] != "dentist" {
		t.Fatalf("note lost in normalization: %v", first.Data.Notes)
	}
}

func TestNormalize_StringWrappedPayload(t *testing.T) {
	inner := `{"notes":{"3":"inspection"},"tasks":"not an array"}`
	wrapped, _ := json.Marshal(inner)

	res := schedule.Normalize(wrapped)
	if !res.Valid {
		t.Fatalf("expected valid result for string-wrapped JSON")
	}
	if res.Data.Notes["3"] != "inspection" {
		t.Fatalf("expected notes passthrough, got %v", res.Data.Notes)
	}
	if len(res.Data.Tasks) != 7 {
		t.Fatalf("expected default tasks, got %d", len(res.Data.Tasks))
	}
}

func TestNormalize_MalformedTasksPassThrough(t *testing.T) {
	// seven elements, individually malformed: accepted without repair
	input := `{"notes":{},"tasks":[{"id":1},{"bogus":true},3,"four",{},null,{"id":7,"details":"x"}]}`
	res := schedule.Normalize([]byte(input))
	if !res.Valid {
		t.Fatalf("expected valid result")
	}
	if len(res.Data.Tasks) != 7 {
		t.Fatalf("expected 7 tasks preserved, got %d", len(res.Data.Tasks))
	}
	if string(res.Data.Tasks[1]) != `{"bogus":true}` {
		t.Fatalf("expected malformed task preserved verbatim, got %s", res.Data.Tasks[1])
	}
}

func TestStrictViolations(t *testing.T) {
	ctx := context.Background()

	ok := schedule.Encode(schedule.DefaultData())
	if msgs := schedule.StrictViolations(ctx, []byte(ok)); len(msgs) != 0 {
		t.Fatalf("expected no violations for canonical payload, got %v", msgs)
	}

	bad := `{"notes":{},"tasks":[{"id":1}]}`
	if msgs := schedule.StrictViolations(ctx, []byte(bad)); len(msgs) == 0 {
		t.Fatalf("expected violations for short tasks array")
	}

	if msgs := schedule.StrictViolations(ctx, []byte(`{{{`)); len(msgs) == 0 {
		t.Fatalf("expected a parse violation for garbage input")
	}
}
