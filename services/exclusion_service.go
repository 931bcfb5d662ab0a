// services/exclusion_service.go
package services

import (
	"context"
	"errors"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// ExclusionService manages who is left out of an event's split
type ExclusionService struct {
	base
}

// ExcludeUser removes userID from the event. It reports false when the user
// was already excluded. An unpaid share is dropped; a paid one blocks the exclusion.
// Remaining shares are not recomputed.
func (s *ExclusionService) ExcludeUser(ctx context.Context, p auth.Principal, eventID, userID string) (bool, error) {
	if err := utils.ValidateRequired(userID, "user id"); err != nil {
		return false, err
	}

	created := false
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := requireManage(p, event); err != nil {
			return err
		}
		if err := requireMutable(event); err != nil {
			return err
		}
		if userID == event.BirthdayPersonID {
			return utils.NewValidationError("The birthday person never pays for their own event")
		}
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			return notFoundOr(utils.ResourceUser, "get user", err)
		}

		exists, err := tx.Exclusions().Exists(ctx, eventID, userID)
		if err != nil {
			return storageError("check exclusion", err)
		}
		if exists {
			return nil
		}

		contribution, err := tx.Contributions().GetByEventAndUser(ctx, eventID, userID)
		switch {
		case err == nil && contribution.Paid:
			return utils.NewConflictError("User has already paid for this event")
		case err == nil:
			if err := tx.Contributions().Delete(ctx, contribution.ID); err != nil {
				return storageError("delete contribution", err)
			}
		case !errors.Is(err, repository.ErrNotFound):
			return storageError("get contribution", err)
		}

		exclusion := &models.EventExclusion{
			ID:             utils.GenerateID(),
			EventID:        eventID,
			ExcludedUserID: userID,
			CreatedAt:      s.now(),
		}
		if err := tx.Exclusions().Create(ctx, exclusion); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return utils.NewConflictError("User is already excluded")
			}
			return storageError("insert exclusion", err)
		}
		created = true
		return nil
	})
	if err != nil {
		s.logFailure("exclude user", err, "event_id", eventID, "user_id", userID)
		return false, storageError("exclude user", err)
	}

	if created {
		s.log.Info("user excluded", "event_id", eventID, "user_id", userID, "by", p.UserID())
	}
	return created, nil
}

// IncludeUser deletes the exclusion row. No share is issued for the user.
func (s *ExclusionService) IncludeUser(ctx context.Context, p auth.Principal, eventID, userID string) error {
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := requireManage(p, event); err != nil {
			return err
		}
		return notFoundOr(utils.ResourceExclusion, "delete exclusion", tx.Exclusions().Delete(ctx, eventID, userID))
	})
	if err != nil {
		s.logFailure("include user", err, "event_id", eventID, "user_id", userID)
		return storageError("include user", err)
	}

	s.log.Info("user included", "event_id", eventID, "user_id", userID, "by", p.UserID())
	return nil
}

// ListExclusions returns the event's exclusions with user names
func (s *ExclusionService) ListExclusions(ctx context.Context, p auth.Principal, eventID string) ([]models.ExclusionWithUser, error) {
	event, err := loadEvent(ctx, s.store, eventID)
	if err != nil {
		return nil, err
	}
	if err := requireManage(p, event); err != nil {
		return nil, err
	}

	exclusions, err := s.store.Exclusions().ListByEvent(ctx, eventID)
	if err != nil {
		return nil, storageError("list exclusions", err)
	}
	users, err := userNames(ctx, s.store)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ExclusionWithUser, 0, len(exclusions))
	for _, e := range exclusions {
		rows = append(rows, models.ExclusionWithUser{EventExclusion: e, UserName: users[e.ExcludedUserID].Name})
	}
	return rows, nil
}

func (s *ExclusionService) IsExcluded(ctx context.Context, eventID, userID string) (bool, error) {
	excluded, err := s.store.Exclusions().Exists(ctx, eventID, userID)
	if err != nil {
		return false, storageError("check exclusion", err)
	}
	return excluded, nil
}
