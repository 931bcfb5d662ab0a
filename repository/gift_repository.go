// repository/gift_repository.go
package repository

import (
	"context"

	"github.com/lib/pq"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
)

const giftColumns = `id, event_id, gift_name, gift_link, total_amount, created_at`

// GiftRepo handles database operations for gifts
type GiftRepo struct {
	DB DBTX
}

func (r *GiftRepo) Create(ctx context.Context, gift *models.Gift) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO gifts (id, event_id, gift_name, gift_link, total_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		gift.ID, gift.EventID, gift.Name, gift.Link, gift.TotalAmount, gift.CreatedAt,
	)
	return translateError("insert gift", err)
}

func (r *GiftRepo) ListByEvent(ctx context.Context, eventID string) ([]models.Gift, error) {
	return r.query(ctx, "list gifts",
		`SELECT `+giftColumns+` FROM gifts WHERE event_id = $1 ORDER BY created_at, id`, eventID)
}

// ListByEvents loads the gifts of several events in one round trip
func (r *GiftRepo) ListByEvents(ctx context.Context, eventIDs []string) ([]models.Gift, error) {
	if len(eventIDs) == 0 {
		return []models.Gift{}, nil
	}
	return r.query(ctx, "list gifts",
		`SELECT `+giftColumns+` FROM gifts WHERE event_id = ANY($1) ORDER BY created_at, id`,
		pq.Array(eventIDs))
}

func (r *GiftRepo) DeleteByEvent(ctx context.Context, eventID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM gifts WHERE event_id = $1`, eventID)
	return translateError("delete gifts", err)
}

func (r *GiftRepo) query(ctx context.Context, op, query string, args ...any) ([]models.Gift, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(op, err)
	}
	defer rows.Close()

	gifts := []models.Gift{}
	for rows.Next() {
		var gift models.Gift
		if err := rows.Scan(&gift.ID, &gift.EventID, &gift.Name, &gift.Link, &gift.TotalAmount, &gift.CreatedAt); err != nil {
			return nil, translateError("scan gift", err)
		}
		gifts = append(gifts, gift)
	}
	return gifts, translateError(op, rows.Err())
}
