package sqlite

import (
	"context"
	"database/sql"

	"github.com/crewplan/crewplan/pkg/models"
)

// EditSchedule performs the read-overwrite-audit sequence of a boss edit in
// a single transaction, so a racing edit can never observe a half-applied
// state or log a stale previous_data. The audit row is appended even when
// the schedule id matches nothing, with a NULL previous_data.
func (r *SQLiteRepo) EditSchedule(ctx context.Context, scheduleID, editedBy int64, newData string) error {
	ts := now()
	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var prev sql.NullString
		err := tx.QueryRowContext(ctx, `SELECT schedule_data FROM schedules WHERE id = ?`, scheduleID).Scan(&prev)
		if err != nil && err != sql.ErrNoRows {
			return err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE schedules SET schedule_data = ?, updated_at = ? WHERE id = ?`, newData, ts, scheduleID); err != nil {
			return err
		}

		var prevArg any
		if prev.Valid {
			prevArg = prev.String
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO schedule_edits (schedule_id, edited_by, edit_timestamp, previous_data, new_data) VALUES (?, ?, ?, ?, ?)`,
			scheduleID, editedBy, ts, prevArg, newData)
		return err
	})
}

func (r *SQLiteRepo) ListEditsBySchedule(ctx context.Context, scheduleID int64) ([]models.ScheduleEdit, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, schedule_id, edited_by, edit_timestamp, previous_data, new_data FROM schedule_edits WHERE schedule_id = ? ORDER BY edit_timestamp DESC, id DESC`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ScheduleEdit
	for rows.Next() {
		var e models.ScheduleEdit
		var prev sql.NullString
		if err := rows.Scan(&e.ID, &e.ScheduleID, &e.EditedBy, &e.EditTimestamp, &prev, &e.NewData); err != nil {
			return nil, err
		}
		if prev.Valid {
			p := prev.String
			e.PreviousData = &p
		}
		out = append(out, e)
	}

	return out, rows.Err()
}
