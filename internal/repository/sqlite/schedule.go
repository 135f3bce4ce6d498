package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crewplan/crewplan/pkg/models"
)

func (r *SQLiteRepo) CreateSchedule(ctx context.Context, s *models.Schedule) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("schedule is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO schedules (user_id, month, schedule_data, submitted, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.UserID, s.Month, s.ScheduleData, boolToInt(s.Submitted), now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) LatestForUserMonth(ctx context.Context, userID int64, month string) (*models.Schedule, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, month, schedule_data, submitted, created_at, updated_at FROM schedules WHERE user_id = ? AND month = ? ORDER BY created_at DESC, id DESC LIMIT 1`, userID, month)

	var s models.Schedule
	var data sql.NullString
	var submitted int64
	var updated sql.NullInt64
	if err := row.Scan(&s.ID, &s.UserID, &s.Month, &data, &submitted, &s.CreatedAt, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if data.Valid {
		s.ScheduleData = data.String
	}
	s.Submitted = submitted != 0
	if updated.Valid {
		s.UpdatedAt = &updated.Int64
	}

	return &s, nil
}

func (r *SQLiteRepo) ListEmployeeSchedules(ctx context.Context) ([]models.EmployeeSchedule, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT s.id, s.user_id, s.month, s.schedule_data, s.submitted, s.created_at, s.updated_at, u.email, u.name
		FROM schedules s
		JOIN users u ON s.user_id = u.id
		WHERE u.role = ?
		ORDER BY s.created_at DESC, s.id DESC`, models.RoleEmployee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EmployeeSchedule
	for rows.Next() {
		var es models.EmployeeSchedule
		var data sql.NullString
		var submitted int64
		var updated sql.NullInt64
		if err := rows.Scan(&es.ID, &es.UserID, &es.Month, &data, &submitted, &es.CreatedAt, &updated, &es.Email, &es.Name); err != nil {
			return nil, err
		}
		if data.Valid {
			es.ScheduleData = data.String
		}
		es.Submitted = submitted != 0
		if updated.Valid {
			es.UpdatedAt = &updated.Int64
		}
		out = append(out, es)
	}

	return out, rows.Err()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
