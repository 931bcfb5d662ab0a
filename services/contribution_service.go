// services/contribution_service.go
package services

import (
	"context"
	"strings"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// ContributionService handles payment state and share corrections
type ContributionService struct {
	base
}

// MarkPaid marks the caller's own share under the event as paid.
// An already paid share keeps its original payment time.
func (s *ContributionService) MarkPaid(ctx context.Context, p auth.Principal, eventID string) (*models.Contribution, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}

	var contribution *models.Contribution
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		contribution, err = tx.Contributions().GetByEventAndUser(ctx, eventID, p.UserID())
		if err != nil {
			return notFoundOr(utils.ResourceContribution, "get contribution", err)
		}
		if err := requireMutable(event); err != nil {
			return err
		}
		if contribution.Paid {
			return nil
		}

		now := s.now()
		contribution.Paid = true
		contribution.PaymentTime = &now
		return notFoundOr(utils.ResourceContribution, "update contribution", tx.Contributions().Update(ctx, contribution))
	})
	if err != nil {
		s.logFailure("mark paid", err, "event_id", eventID, "user_id", p.UserID())
		return nil, storageError("mark paid", err)
	}

	s.log.Info("contribution paid", "event_id", eventID, "contribution_id", contribution.ID, "user_id", p.UserID())
	return contribution, nil
}

// SetPaid sets the paid flag on behalf of the owner, the organiser or an admin
func (s *ContributionService) SetPaid(ctx context.Context, p auth.Principal, contributionID string, paid bool) (*models.Contribution, error) {
	return s.UpdateContribution(ctx, p, contributionID, models.ContributionPatch{Paid: &paid})
}

// SetContributionAmount overrides one share; other shares are left alone
func (s *ContributionService) SetContributionAmount(ctx context.Context, p auth.Principal, contributionID string, amount int64) (*models.Contribution, error) {
	return s.UpdateContribution(ctx, p, contributionID, models.ContributionPatch{SplitAmount: &amount})
}

// UpdateContribution applies the non-nil fields of patch. Amount changes
// need the organiser or an admin. The owner may only mark their share paid;
// clearing a payment is left to the organiser.
func (s *ContributionService) UpdateContribution(ctx context.Context, p auth.Principal, contributionID string, patch models.ContributionPatch) (*models.Contribution, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	if patch.SplitAmount == nil && patch.Paid == nil {
		return nil, utils.NewValidationError("nothing to update")
	}
	if patch.SplitAmount != nil {
		if err := utils.ValidateNonNegative(*patch.SplitAmount, "split amount"); err != nil {
			return nil, err
		}
		if *patch.SplitAmount > utils.MaxEventTotal {
			return nil, utils.NewValidationError(utils.ErrTotalTooLarge)
		}
	}

	var contribution *models.Contribution
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		contribution, err = tx.Contributions().GetByID(ctx, contributionID)
		if err != nil {
			return notFoundOr(utils.ResourceContribution, "get contribution", err)
		}
		event, err := loadEvent(ctx, tx, contribution.EventID)
		if err != nil {
			return err
		}

		manager := auth.CanManageEvent(p, event)
		if patch.SplitAmount != nil && !manager {
			return utils.NewForbiddenError(utils.ErrOrganizerOnly)
		}
		if patch.Paid != nil && !manager && contribution.UserID != p.UserID() {
			return utils.NewForbiddenError("Only the contributor or an admin can change payment status")
		}
		if patch.Paid != nil && !*patch.Paid && !manager {
			return utils.NewForbiddenError(utils.ErrUnpayOrganizerOnly)
		}
		if err := requireMutable(event); err != nil {
			return err
		}

		if patch.SplitAmount != nil {
			contribution.SplitAmount = *patch.SplitAmount
		}
		if patch.Paid != nil {
			switch {
			case *patch.Paid && !contribution.Paid:
				now := s.now()
				contribution.PaymentTime = &now
			case !*patch.Paid:
				contribution.PaymentTime = nil
			}
			contribution.Paid = *patch.Paid
		}
		return notFoundOr(utils.ResourceContribution, "update contribution", tx.Contributions().Update(ctx, contribution))
	})
	if err != nil {
		s.logFailure("update contribution", err, "contribution_id", contributionID)
		return nil, storageError("update contribution", err)
	}

	s.log.Info("contribution updated", "contribution_id", contributionID,
		"split_amount", contribution.SplitAmount, "paid", contribution.Paid, "by", p.UserID())
	return contribution, nil
}

// DeleteContribution removes one share; organiser or admin only
func (s *ContributionService) DeleteContribution(ctx context.Context, p auth.Principal, contributionID string) error {
	if err := requireAuth(p); err != nil {
		return err
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		contribution, err := tx.Contributions().GetByID(ctx, contributionID)
		if err != nil {
			return notFoundOr(utils.ResourceContribution, "get contribution", err)
		}
		event, err := loadEvent(ctx, tx, contribution.EventID)
		if err != nil {
			return err
		}
		if err := requireManage(p, event); err != nil {
			return err
		}
		if err := requireMutable(event); err != nil {
			return err
		}
		return notFoundOr(utils.ResourceContribution, "delete contribution", tx.Contributions().Delete(ctx, contributionID))
	})
	if err != nil {
		s.logFailure("delete contribution", err, "contribution_id", contributionID)
		return storageError("delete contribution", err)
	}

	s.log.Info("contribution deleted", "contribution_id", contributionID, "by", p.UserID())
	return nil
}

// ListContributions returns every contribution with user, event and gift names
func (s *ContributionService) ListContributions(ctx context.Context, p auth.Principal) ([]models.AdminContributionRow, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	contributions, err := s.store.Contributions().List(ctx)
	if err != nil {
		return nil, storageError("list contributions", err)
	}
	events, err := s.store.Events().List(ctx, models.EventFilter{})
	if err != nil {
		return nil, storageError("list events", err)
	}
	users, err := userNames(ctx, s.store)
	if err != nil {
		return nil, err
	}

	eventsByID := make(map[string]models.Event, len(events))
	ids := make([]string, 0, len(events))
	for _, e := range events {
		eventsByID[e.ID] = e
		ids = append(ids, e.ID)
	}
	gifts, err := s.store.Gifts().ListByEvents(ctx, ids)
	if err != nil {
		return nil, storageError("list gifts", err)
	}
	giftNames := make(map[string]string, len(gifts))
	eventGiftNames := make(map[string][]string)
	for _, g := range gifts {
		giftNames[g.ID] = g.Name
		eventGiftNames[g.EventID] = append(eventGiftNames[g.EventID], g.Name)
	}

	rows := make([]models.AdminContributionRow, 0, len(contributions))
	for _, c := range contributions {
		event := eventsByID[c.EventID]
		names := strings.Join(eventGiftNames[c.EventID], ", ")
		if c.GiftID != nil {
			names = giftNames[*c.GiftID]
		}
		rows = append(rows, models.AdminContributionRow{
			Contribution: c,
			UserName:     users[c.UserID].Name,
			EventTitle:   event.Title,
			EventDate:    event.Date,
			GiftNames:    names,
		})
	}
	return rows, nil
}
