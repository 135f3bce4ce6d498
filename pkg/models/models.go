package models

import "encoding/json"

// Domain models matching the database schema in db/migrations/0001_init.sql

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	Role         string `json:"role" db:"role"`
	Created      int64  `json:"created" db:"created"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// User roles. A role is assigned when the account is created and is not
// changeable through the HTTP surface.
const (
	RoleEmployee = "employee"
	RoleBoss     = "boss"
)

type Schedule struct {
	ID           int64  `json:"id" db:"id"`
	UserID       int64  `json:"user_id" db:"user_id"`
	Month        string `json:"month" db:"month"`
	ScheduleData string `json:"schedule_data" db:"schedule_data"`
	Submitted    bool   `json:"submitted" db:"submitted"`
	CreatedAt    int64  `json:"created_at" db:"created_at"`
	UpdatedAt    *int64 `json:"updated_at,omitempty" db:"updated_at"`
}

// EmployeeSchedule is a schedule row joined with its owner, as returned by
// the all-employees listing.
type EmployeeSchedule struct {
	Schedule
	Email string `json:"email" db:"email"`
	Name  string `json:"name" db:"name"`
}

// ScheduleEdit is one append-only audit record of a boss overwriting a
// schedule. Rows are never updated or deleted.
type ScheduleEdit struct {
	ID            int64   `json:"id" db:"id"`
	ScheduleID    int64   `json:"schedule_id" db:"schedule_id"`
	EditedBy      int64   `json:"edited_by" db:"edited_by"`
	EditTimestamp int64   `json:"edit_timestamp" db:"edit_timestamp"`
	PreviousData  *string `json:"previous_data,omitempty" db:"previous_data"`
	NewData       string  `json:"new_data" db:"new_data"`
}

// ScheduleData is the canonical shape of a schedule payload: a day-keyed
// notes map plus exactly seven tasks. Notes are passed through without deep
// validation, and task elements are kept as raw JSON so a seven-element
// array with malformed entries survives a round trip untouched.
type ScheduleData struct {
	Notes map[string]any    `json:"notes"`
	Tasks []json.RawMessage `json:"tasks"`
}

// Task is the expected shape of one element of ScheduleData.Tasks. Task IDs
// are stable slot identifiers 1..7, not reorderable.
type Task struct {
	ID            int    `json:"id"`
	Details       string `json:"details"`
	CompletionDay string `json:"completionDay"`
	Duration      string `json:"duration"`
	Comments      string `json:"comments"`
}
