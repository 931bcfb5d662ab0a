// repository/event_repository.go
package repository

import (
	"context"
	"database/sql"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
)

const eventColumns = `id, title, to_char(date, 'YYYY-MM-DD'), status, birthday_person_id,
	created_by, note, upi_id, phone, created_at`

// EventRepo handles database operations for events
type EventRepo struct {
	DB DBTX
}

func (r *EventRepo) Create(ctx context.Context, event *models.Event) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO events (id, title, date, status, birthday_person_id, created_by, note, upi_id, phone, created_at)
		 VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10)`,
		event.ID, event.Title, event.Date, string(event.Status), event.BirthdayPersonID,
		event.CreatedBy, event.Note, nullString(event.UPIID), nullString(event.Phone), event.CreatedAt,
	)
	return translateError("insert event", err)
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		return nil, translateError("get event", err)
	}
	return event, nil
}

// List returns events newest date first, optionally narrowed by status
func (r *EventRepo) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("list events", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, translateError("scan event", err)
		}
		events = append(events, *event)
	}
	return events, translateError("iterate events", rows.Err())
}

func (r *EventRepo) Update(ctx context.Context, event *models.Event) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE events SET title = $2, date = $3::date, status = $4, note = $5, upi_id = $6, phone = $7
		 WHERE id = $1`,
		event.ID, event.Title, event.Date, string(event.Status), event.Note,
		nullString(event.UPIID), nullString(event.Phone),
	)
	if err != nil {
		return translateError("update event", err)
	}
	return expectAffected("update event", result)
}

// Delete removes the event; gifts, contributions, exclusions and poll rows cascade
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return translateError("delete event", err)
	}
	return expectAffected("delete event", result)
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		event        models.Event
		status       string
		upiID, phone sql.NullString
	)
	err := row.Scan(&event.ID, &event.Title, &event.Date, &status, &event.BirthdayPersonID,
		&event.CreatedBy, &event.Note, &upiID, &phone, &event.CreatedAt)
	if err != nil {
		return nil, err
	}
	event.Status = models.EventStatus(status)
	event.UPIID = stringPtr(upiID)
	event.Phone = stringPtr(phone)
	return &event, nil
}
