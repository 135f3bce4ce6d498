package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crewplan/crewplan/pkg/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	role := u.Role
	if role == "" {
		role = models.RoleEmployee
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (name, email, role, password_hash, created) VALUES (?, ?, ?, ?, ?)`, u.Name, u.Email, role, u.PasswordHash, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, created, password_hash FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, role, created, password_hash FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetRole falls back to the employee role when the user row or its role is
// missing.
func (r *SQLiteRepo) GetRole(ctx context.Context, id int64) (string, error) {
	row := r.conn.QueryRow(ctx, `SELECT role FROM users WHERE id = ?`, id)
	var role sql.NullString
	if err := row.Scan(&role); err != nil {
		if err == sql.ErrNoRows {
			return models.RoleEmployee, nil
		}
		return "", err
	}
	if !role.Valid || role.String == "" {
		return models.RoleEmployee, nil
	}
	return role.String, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var pw sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Created, &pw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if pw.Valid {
		u.PasswordHash = pw.String
	}

	return &u, nil
}
