// Package repository defines the ledger's storage contracts and the
// PostgreSQL implementation of them.
package repository

import (
	"context"
	"errors"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
)

var (
	// ErrNotFound is returned when a looked-up row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = errors.New("duplicate record")
	// ErrReference is returned when a write points at a row that does not exist
	ErrReference = errors.New("referenced record missing")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

type GiftRepository interface {
	Create(ctx context.Context, gift *models.Gift) error
	ListByEvent(ctx context.Context, eventID string) ([]models.Gift, error)
	ListByEvents(ctx context.Context, eventIDs []string) ([]models.Gift, error)
	DeleteByEvent(ctx context.Context, eventID string) error
}

type ContributionRepository interface {
	Create(ctx context.Context, contribution *models.Contribution) error
	GetByID(ctx context.Context, id string) (*models.Contribution, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*models.Contribution, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Contribution, error)
	ListByEvents(ctx context.Context, eventIDs []string) ([]models.Contribution, error)
	ListByUser(ctx context.Context, userID string) ([]models.Contribution, error)
	List(ctx context.Context) ([]models.Contribution, error)
	Update(ctx context.Context, contribution *models.Contribution) error
	Delete(ctx context.Context, id string) error
	DeleteByEvent(ctx context.Context, eventID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type ExclusionRepository interface {
	Create(ctx context.Context, exclusion *models.EventExclusion) error
	Delete(ctx context.Context, eventID, userID string) error
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.EventExclusion, error)
	DeleteByEvent(ctx context.Context, eventID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type FoodPollRepository interface {
	CreateOption(ctx context.Context, option *models.FoodOption) error
	GetOption(ctx context.Context, id string) (*models.FoodOption, error)
	ListOptions(ctx context.Context, eventID string) ([]models.FoodOption, error)
	DeleteOption(ctx context.Context, id string) error
	UpsertVote(ctx context.Context, vote *models.FoodVote) error
	ListVotes(ctx context.Context, eventID string) ([]models.FoodVote, error)
	DeleteByEvent(ctx context.Context, eventID string) error
	DeleteVotesByUser(ctx context.Context, userID string) error
}

// Store groups the repositories. WithTx runs fn against a Store whose
// repositories share one transaction; fn's error rolls everything back.
type Store interface {
	Users() UserRepository
	Events() EventRepository
	Gifts() GiftRepository
	Contributions() ContributionRepository
	Exclusions() ExclusionRepository
	FoodPolls() FoodPollRepository
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
