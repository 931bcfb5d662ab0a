// repository/exclusion_repository.go
package repository

import (
	"context"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
)

// ExclusionRepo handles database operations for event exclusions
type ExclusionRepo struct {
	DB DBTX
}

// Create inserts an exclusion; excluding the same user twice yields ErrDuplicate
func (r *ExclusionRepo) Create(ctx context.Context, e *models.EventExclusion) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO event_exclusions (id, event_id, excluded_user_id, created_at) VALUES ($1, $2, $3, $4)`,
		e.ID, e.EventID, e.ExcludedUserID, e.CreatedAt,
	)
	return translateError("insert exclusion", err)
}

func (r *ExclusionRepo) Delete(ctx context.Context, eventID, userID string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM event_exclusions WHERE event_id = $1 AND excluded_user_id = $2`, eventID, userID)
	if err != nil {
		return translateError("delete exclusion", err)
	}
	return expectAffected("delete exclusion", result)
}

func (r *ExclusionRepo) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_exclusions WHERE event_id = $1 AND excluded_user_id = $2)`,
		eventID, userID,
	).Scan(&exists)
	if err != nil {
		return false, translateError("check exclusion", err)
	}
	return exists, nil
}

func (r *ExclusionRepo) ListByEvent(ctx context.Context, eventID string) ([]models.EventExclusion, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_id, excluded_user_id, created_at FROM event_exclusions
		 WHERE event_id = $1 ORDER BY created_at, id`, eventID)
	if err != nil {
		return nil, translateError("list exclusions", err)
	}
	defer rows.Close()

	exclusions := []models.EventExclusion{}
	for rows.Next() {
		var e models.EventExclusion
		if err := rows.Scan(&e.ID, &e.EventID, &e.ExcludedUserID, &e.CreatedAt); err != nil {
			return nil, translateError("scan exclusion", err)
		}
		exclusions = append(exclusions, e)
	}
	return exclusions, translateError("list exclusions", rows.Err())
}

func (r *ExclusionRepo) DeleteByEvent(ctx context.Context, eventID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM event_exclusions WHERE event_id = $1`, eventID)
	return translateError("delete event exclusions", err)
}

func (r *ExclusionRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM event_exclusions WHERE excluded_user_id = $1`, userID)
	return translateError("delete user exclusions", err)
}
