// Package services implements the cost-split ledger: event creation and
// management, contributions, exclusions, statistics, users and the food poll.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/logger"
	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// Services bundles every service over one Store
type Services struct {
	Events        *EventService
	Contributions *ContributionService
	Exclusions    *ExclusionService
	Stats         *StatsService
	Users         *UserService
	FoodPolls     *FoodPollService
	Export        *ExcelService
}

// New wires the services. A nil clock means time.Now.
func New(store repository.Store, log logger.Logger, clock func() time.Time) *Services {
	if clock == nil {
		clock = time.Now
	}
	b := base{store: store, log: log, now: func() time.Time { return clock().UTC() }}

	events := &EventService{base: b}
	return &Services{
		Events:        events,
		Contributions: &ContributionService{base: b},
		Exclusions:    &ExclusionService{base: b},
		Stats:         &StatsService{base: b},
		Users:         &UserService{base: b},
		FoodPolls:     &FoodPollService{base: b},
		Export:        newExcelService(events),
	}
}

type base struct {
	store repository.Store
	log   logger.Logger
	now   func() time.Time
}

// logFailure logs storage failures as internal errors and rejections as business errors
func (b base) logFailure(op string, err error, args ...any) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) && appErr.Code < 500 {
		b.log.BusinessError(op+" rejected", err, args...)
		return
	}
	b.log.InternalError(op+" failed", err, args...)
}

// storageError passes AppErrors through and wraps anything else as a storage failure
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return utils.NewStorageError(op, err)
}

// notFoundOr maps ErrNotFound to a not-found AppError for resource
func notFoundOr(resource, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFoundError(resource)
	}
	return storageError(op, err)
}

func requireAuth(p auth.Principal) error {
	if p == nil || p.UserID() == "" {
		return utils.NewUnauthorizedError(utils.ErrNotAuthenticated)
	}
	return nil
}

func requireAdmin(p auth.Principal) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return utils.NewForbiddenError(utils.ErrAdminOnly)
	}
	return nil
}

func requireManage(p auth.Principal, event *models.Event) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	if !auth.CanManageEvent(p, event) {
		return utils.NewForbiddenError(utils.ErrOrganizerOnly)
	}
	return nil
}

// requireMutable rejects writes under a completed or cancelled event
func requireMutable(event *models.Event) error {
	if event.Status.Terminal() {
		return utils.NewConflictError(utils.ErrEventFinalized)
	}
	return nil
}

func loadEvent(ctx context.Context, store repository.Store, id string) (*models.Event, error) {
	event, err := store.Events().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(utils.ResourceEvent, "get event", err)
	}
	return event, nil
}

func userNames(ctx context.Context, store repository.Store) (map[string]models.User, error) {
	users, err := store.Users().List(ctx)
	if err != nil {
		return nil, storageError("list users", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
