// repository/food_poll_repository.go
package repository

import (
	"context"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
)

// FoodPollRepo handles database operations for food options and votes
type FoodPollRepo struct {
	DB DBTX
}

func (r *FoodPollRepo) CreateOption(ctx context.Context, o *models.FoodOption) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO food_options (id, event_id, title, created_at) VALUES ($1, $2, $3, $4)`,
		o.ID, o.EventID, o.Title, o.CreatedAt,
	)
	return translateError("insert food option", err)
}

func (r *FoodPollRepo) GetOption(ctx context.Context, id string) (*models.FoodOption, error) {
	var o models.FoodOption
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, event_id, title, created_at FROM food_options WHERE id = $1`, id,
	).Scan(&o.ID, &o.EventID, &o.Title, &o.CreatedAt)
	if err != nil {
		return nil, translateError("get food option", err)
	}
	return &o, nil
}

func (r *FoodPollRepo) ListOptions(ctx context.Context, eventID string) ([]models.FoodOption, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_id, title, created_at FROM food_options WHERE event_id = $1 ORDER BY created_at, id`,
		eventID)
	if err != nil {
		return nil, translateError("list food options", err)
	}
	defer rows.Close()

	options := []models.FoodOption{}
	for rows.Next() {
		var o models.FoodOption
		if err := rows.Scan(&o.ID, &o.EventID, &o.Title, &o.CreatedAt); err != nil {
			return nil, translateError("scan food option", err)
		}
		options = append(options, o)
	}
	return options, translateError("list food options", rows.Err())
}

// DeleteOption removes the option; its votes cascade
func (r *FoodPollRepo) DeleteOption(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM food_options WHERE id = $1`, id)
	if err != nil {
		return translateError("delete food option", err)
	}
	return expectAffected("delete food option", result)
}

// UpsertVote records the user's vote, replacing any earlier one for the event
func (r *FoodPollRepo) UpsertVote(ctx context.Context, v *models.FoodVote) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO food_votes (event_id, food_option_id, user_id, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (event_id, user_id)
		 DO UPDATE SET food_option_id = EXCLUDED.food_option_id, created_at = EXCLUDED.created_at`,
		v.EventID, v.FoodOptionID, v.UserID, v.CreatedAt,
	)
	return translateError("upsert food vote", err)
}

func (r *FoodPollRepo) ListVotes(ctx context.Context, eventID string) ([]models.FoodVote, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT event_id, food_option_id, user_id, created_at FROM food_votes
		 WHERE event_id = $1 ORDER BY created_at, user_id`, eventID)
	if err != nil {
		return nil, translateError("list food votes", err)
	}
	defer rows.Close()

	votes := []models.FoodVote{}
	for rows.Next() {
		var v models.FoodVote
		if err := rows.Scan(&v.EventID, &v.FoodOptionID, &v.UserID, &v.CreatedAt); err != nil {
			return nil, translateError("scan food vote", err)
		}
		votes = append(votes, v)
	}
	return votes, translateError("list food votes", rows.Err())
}

func (r *FoodPollRepo) DeleteByEvent(ctx context.Context, eventID string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM food_votes WHERE event_id = $1`, eventID); err != nil {
		return translateError("delete food votes", err)
	}
	_, err := r.DB.ExecContext(ctx, `DELETE FROM food_options WHERE event_id = $1`, eventID)
	return translateError("delete food options", err)
}

func (r *FoodPollRepo) DeleteVotesByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM food_votes WHERE user_id = $1`, userID)
	return translateError("delete user food votes", err)
}
