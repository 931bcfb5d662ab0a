// repository/contribution_repository.go
package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
)

const contributionColumns = `id, event_id, user_id, gift_id, split_amount, paid, payment_time, created_at`

// ContributionRepo handles database operations for contributions
type ContributionRepo struct {
	DB DBTX
}

// Create inserts a contribution; a second row for the same (event, user) yields ErrDuplicate
func (r *ContributionRepo) Create(ctx context.Context, c *models.Contribution) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO contributions (id, event_id, user_id, gift_id, split_amount, paid, payment_time, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.EventID, c.UserID, nullString(c.GiftID), c.SplitAmount, c.Paid,
		nullTime(c.PaymentTime), c.CreatedAt,
	)
	return translateError("insert contribution", err)
}

func (r *ContributionRepo) GetByID(ctx context.Context, id string) (*models.Contribution, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+contributionColumns+` FROM contributions WHERE id = $1`, id)
	c, err := scanContribution(row)
	if err != nil {
		return nil, translateError("get contribution", err)
	}
	return c, nil
}

func (r *ContributionRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*models.Contribution, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+contributionColumns+` FROM contributions WHERE event_id = $1 AND user_id = $2`,
		eventID, userID)
	c, err := scanContribution(row)
	if err != nil {
		return nil, translateError("get contribution", err)
	}
	return c, nil
}

func (r *ContributionRepo) ListByEvent(ctx context.Context, eventID string) ([]models.Contribution, error) {
	return r.query(ctx, "list event contributions",
		`SELECT `+contributionColumns+` FROM contributions WHERE event_id = $1 ORDER BY created_at, id`,
		eventID)
}

// ListByEvents loads the contributions of several events in one round trip
func (r *ContributionRepo) ListByEvents(ctx context.Context, eventIDs []string) ([]models.Contribution, error) {
	if len(eventIDs) == 0 {
		return []models.Contribution{}, nil
	}
	return r.query(ctx, "list event contributions",
		`SELECT `+contributionColumns+` FROM contributions WHERE event_id = ANY($1) ORDER BY created_at, id`,
		pq.Array(eventIDs))
}

func (r *ContributionRepo) ListByUser(ctx context.Context, userID string) ([]models.Contribution, error) {
	return r.query(ctx, "list user contributions",
		`SELECT `+contributionColumns+` FROM contributions WHERE user_id = $1 ORDER BY created_at DESC, id`,
		userID)
}

func (r *ContributionRepo) List(ctx context.Context) ([]models.Contribution, error) {
	return r.query(ctx, "list contributions",
		`SELECT `+contributionColumns+` FROM contributions ORDER BY created_at DESC, id`)
}

func (r *ContributionRepo) Update(ctx context.Context, c *models.Contribution) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE contributions SET split_amount = $2, paid = $3, payment_time = $4 WHERE id = $1`,
		c.ID, c.SplitAmount, c.Paid, nullTime(c.PaymentTime),
	)
	if err != nil {
		return translateError("update contribution", err)
	}
	return expectAffected("update contribution", result)
}

func (r *ContributionRepo) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM contributions WHERE id = $1`, id)
	if err != nil {
		return translateError("delete contribution", err)
	}
	return expectAffected("delete contribution", result)
}

func (r *ContributionRepo) DeleteByEvent(ctx context.Context, eventID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM contributions WHERE event_id = $1`, eventID)
	return translateError("delete event contributions", err)
}

func (r *ContributionRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM contributions WHERE user_id = $1`, userID)
	return translateError("delete user contributions", err)
}

func (r *ContributionRepo) query(ctx context.Context, op, query string, args ...any) ([]models.Contribution, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(op, err)
	}
	defer rows.Close()

	contributions := []models.Contribution{}
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, translateError("scan contribution", err)
		}
		contributions = append(contributions, *c)
	}
	return contributions, translateError(op, rows.Err())
}

func scanContribution(row rowScanner) (*models.Contribution, error) {
	var (
		c           models.Contribution
		giftID      sql.NullString
		paymentTime sql.NullTime
	)
	err := row.Scan(&c.ID, &c.EventID, &c.UserID, &giftID, &c.SplitAmount, &c.Paid, &paymentTime, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.GiftID = stringPtr(giftID)
	c.PaymentTime = timePtr(paymentTime)
	return &c, nil
}
