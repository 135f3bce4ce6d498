package mock

import (
	"context"

	"github.com/crewplan/crewplan/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo     *mockUserRepo
	ScheduleRepo *mockScheduleRepo
	EditRepo     *mockEditRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:     &mockUserRepo{},
		ScheduleRepo: &mockScheduleRepo{},
		EditRepo:     &mockEditRepo{},
	}
}

type mockUserRepo struct {
	Stored    *models.User
	CreateErr error
	RoleErr   error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	role := u.Role
	if role == "" {
		role = models.RoleEmployee
	}
	m.Stored = &models.User{ID: 1, Name: u.Name, Email: u.Email, Role: role, PasswordHash: u.PasswordHash}
	return 1, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetRole(ctx context.Context, id int64) (string, error) {
	if m.RoleErr != nil {
		return "", m.RoleErr
	}
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored.Role, nil
	}
	return models.RoleEmployee, nil
}

type mockScheduleRepo struct {
	Created   []*models.Schedule
	Latest    *models.Schedule
	Rows      []models.EmployeeSchedule
	CreateErr error
	ListErr   error
}

func (m *mockScheduleRepo) CreateSchedule(ctx context.Context, s *models.Schedule) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Created = append(m.Created, s)
	return int64(len(m.Created)), nil
}

func (m *mockScheduleRepo) LatestForUserMonth(ctx context.Context, userID int64, month string) (*models.Schedule, error) {
	if m.Latest != nil && m.Latest.UserID == userID && m.Latest.Month == month {
		return m.Latest, nil
	}
	return nil, nil
}

func (m *mockScheduleRepo) ListEmployeeSchedules(ctx context.Context) ([]models.EmployeeSchedule, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Rows, nil
}

type mockEditRepo struct {
	Edits   []models.ScheduleEdit
	EditErr error
}

func (m *mockEditRepo) EditSchedule(ctx context.Context, scheduleID, editedBy int64, newData string) error {
	if m.EditErr != nil {
		return m.EditErr
	}
	m.Edits = append(m.Edits, models.ScheduleEdit{
		ID:         int64(len(m.Edits) + 1),
		ScheduleID: scheduleID,
		EditedBy:   editedBy,
		NewData:    newData,
	})
	return nil
}

func (m *mockEditRepo) ListEditsBySchedule(ctx context.Context, scheduleID int64) ([]models.ScheduleEdit, error) {
	var out []models.ScheduleEdit
	for _, e := range m.Edits {
		if e.ScheduleID == scheduleID {
			out = append(out, e)
		}
	}
	return out, nil
}
