package repository

import (
	"context"

	"github.com/crewplan/crewplan/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetRole returns the stored role, or "employee" when the user row or
	// its role is absent.
	GetRole(ctx context.Context, id int64) (string, error)
}

type ScheduleRepo interface {
	CreateSchedule(ctx context.Context, s *models.Schedule) (int64, error)
	// LatestForUserMonth returns the most recently created schedule for the
	// user/month pair, or nil when none exists.
	LatestForUserMonth(ctx context.Context, userID int64, month string) (*models.Schedule, error)
	// ListEmployeeSchedules returns every historical schedule row belonging
	// to employee-role users, newest first, joined with the owner's email
	// and name.
	ListEmployeeSchedules(ctx context.Context) ([]models.EmployeeSchedule, error)
}

type EditRepo interface {
	// EditSchedule overwrites a schedule's payload and appends one audit
	// row, atomically. The audit row is written even when the schedule id
	// matches nothing; previous_data is nil in that case.
	EditSchedule(ctx context.Context, scheduleID, editedBy int64, newData string) error
	ListEditsBySchedule(ctx context.Context, scheduleID int64) ([]models.ScheduleEdit, error)
}
