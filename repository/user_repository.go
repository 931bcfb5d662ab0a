// repository/user_repository.go
package repository

import (
	"context"
	"database/sql"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
)

const userColumns = `id, name, to_char(birthday, 'YYYY-MM-DD'), upi_id, phone, role, created_at`

// UserRepo handles database operations for users
type UserRepo struct {
	DB DBTX
}

// Create inserts a user; an existing id yields ErrDuplicate
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (id, name, birthday, upi_id, phone, role, created_at)
		 VALUES ($1, $2, $3::date, $4, $5, $6, $7)`,
		user.ID, user.Name, nullString(user.Birthday), nullString(user.UPIID),
		nullString(user.Phone), string(user.Role), user.CreatedAt,
	)
	return translateError("insert user", err)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, translateError("get user", err)
	}
	return user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, id`)
	if err != nil {
		return nil, translateError("list users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, translateError("scan user", err)
		}
		users = append(users, *user)
	}
	return users, translateError("iterate users", rows.Err())
}

func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET name = $2, birthday = $3::date, upi_id = $4, phone = $5, role = $6
		 WHERE id = $1`,
		user.ID, user.Name, nullString(user.Birthday), nullString(user.UPIID),
		nullString(user.Phone), string(user.Role),
	)
	if err != nil {
		return translateError("update user", err)
	}
	return expectAffected("update user", result)
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateError("delete user", err)
	}
	return expectAffected("delete user", result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user                   models.User
		birthday, upiID, phone sql.NullString
		role                   string
	)
	if err := row.Scan(&user.ID, &user.Name, &birthday, &upiID, &phone, &role, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.Birthday = stringPtr(birthday)
	user.UPIID = stringPtr(upiID)
	user.Phone = stringPtr(phone)
	user.Role = models.Role(role)
	return &user, nil
}
