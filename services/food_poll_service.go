// services/food_poll_service.go
package services

import (
	"context"
	"sort"
	"strings"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// FoodPollService runs the per-event food vote
type FoodPollService struct {
	base
}

func (s *FoodPollService) AddFoodOption(ctx context.Context, p auth.Principal, eventID, title string) (*models.FoodOption, error) {
	if err := utils.ValidateRequired(title, "title"); err != nil {
		return nil, err
	}

	var option *models.FoodOption
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := requireManage(p, event); err != nil {
			return err
		}
		if event.Status != models.StatusUpcoming {
			return utils.NewConflictError(utils.ErrPollClosed)
		}
		option = &models.FoodOption{
			ID:        utils.GenerateID(),
			EventID:   eventID,
			Title:     strings.TrimSpace(title),
			CreatedAt: s.now(),
		}
		return storageError("insert food option", tx.FoodPolls().CreateOption(ctx, option))
	})
	if err != nil {
		s.logFailure("add food option", err, "event_id", eventID)
		return nil, storageError("add food option", err)
	}

	s.log.Info("food option added", "event_id", eventID, "option_id", option.ID)
	return option, nil
}

// RemoveFoodOption deletes an option together with its votes
func (s *FoodPollService) RemoveFoodOption(ctx context.Context, p auth.Principal, eventID, optionID string) error {
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := requireManage(p, event); err != nil {
			return err
		}
		if _, err := loadOption(ctx, tx, eventID, optionID); err != nil {
			return err
		}
		return notFoundOr(utils.ResourceFoodOption, "delete food option", tx.FoodPolls().DeleteOption(ctx, optionID))
	})
	if err != nil {
		s.logFailure("remove food option", err, "event_id", eventID, "option_id", optionID)
		return storageError("remove food option", err)
	}

	s.log.Info("food option removed", "event_id", eventID, "option_id", optionID)
	return nil
}

// Vote records the caller's choice, replacing an earlier vote in the same event
func (s *FoodPollService) Vote(ctx context.Context, p auth.Principal, eventID, optionID string) (*models.FoodPollResult, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := checkVisible(ctx, tx, p, event); err != nil {
			return err
		}
		if event.Status != models.StatusUpcoming {
			return utils.NewConflictError(utils.ErrPollClosed)
		}
		if _, err := loadOption(ctx, tx, eventID, optionID); err != nil {
			return err
		}
		if _, err := tx.Users().GetByID(ctx, p.UserID()); err != nil {
			return notFoundOr(utils.ResourceUser, "get user", err)
		}

		vote := &models.FoodVote{
			EventID:      eventID,
			FoodOptionID: optionID,
			UserID:       p.UserID(),
			CreatedAt:    s.now(),
		}
		return storageError("upsert food vote", tx.FoodPolls().UpsertVote(ctx, vote))
	})
	if err != nil {
		s.logFailure("vote", err, "event_id", eventID, "option_id", optionID)
		return nil, storageError("vote", err)
	}

	s.log.Info("food vote recorded", "event_id", eventID, "option_id", optionID, "user_id", p.UserID())
	return s.Results(ctx, p, eventID)
}

// Results tallies the poll. Options are ordered by votes; every option tied
// at the highest non-zero count is a winner.
func (s *FoodPollService) Results(ctx context.Context, p auth.Principal, eventID string) (*models.FoodPollResult, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	event, err := loadEvent(ctx, s.store, eventID)
	if err != nil {
		return nil, err
	}
	if err := checkVisible(ctx, s.store, p, event); err != nil {
		return nil, err
	}

	options, err := s.store.FoodPolls().ListOptions(ctx, eventID)
	if err != nil {
		return nil, storageError("list food options", err)
	}
	votes, err := s.store.FoodPolls().ListVotes(ctx, eventID)
	if err != nil {
		return nil, storageError("list food votes", err)
	}
	users, err := userNames(ctx, s.store)
	if err != nil {
		return nil, err
	}

	return TallyVotes(event, options, votes, users, p.UserID()), nil
}

// TallyVotes builds the poll result from fetched rows
func TallyVotes(event *models.Event, options []models.FoodOption, votes []models.FoodVote, users map[string]models.User, callerID string) *models.FoodPollResult {
	result := &models.FoodPollResult{
		EventID: event.ID,
		Options: make([]models.FoodOptionResult, 0, len(options)),
		Winners: []string{},
		Open:    event.Status == models.StatusUpcoming,
	}

	byOption := make(map[string][]string)
	for _, v := range votes {
		byOption[v.FoodOptionID] = append(byOption[v.FoodOptionID], users[v.UserID].Name)
		if v.UserID == callerID {
			optionID := v.FoodOptionID
			result.UserVote = &optionID
		}
	}

	highest := 0
	for _, o := range options {
		voters := byOption[o.ID]
		if voters == nil {
			voters = []string{}
		}
		result.Options = append(result.Options, models.FoodOptionResult{FoodOption: o, Votes: len(voters), Voters: voters})
		if len(voters) > highest {
			highest = len(voters)
		}
	}
	sort.SliceStable(result.Options, func(i, j int) bool { return result.Options[i].Votes > result.Options[j].Votes })

	if highest > 0 {
		for _, o := range result.Options {
			if o.Votes == highest {
				result.Winners = append(result.Winners, o.ID)
			}
		}
	}
	return result
}

func loadOption(ctx context.Context, store repository.Store, eventID, optionID string) (*models.FoodOption, error) {
	option, err := store.FoodPolls().GetOption(ctx, optionID)
	if err != nil {
		return nil, notFoundOr(utils.ResourceFoodOption, "get food option", err)
	}
	if option.EventID != eventID {
		return nil, utils.NewNotFoundError(utils.ResourceFoodOption)
	}
	return option, nil
}
