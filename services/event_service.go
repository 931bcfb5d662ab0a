// services/event_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// EventService handles business logic for events and their gifts
type EventService struct {
	base
}

// CreateEventWithGifts creates the event, its gifts, one contribution per
// participant, the exclusion rows and the food options in one transaction
func (s *EventService) CreateEventWithGifts(ctx context.Context, p auth.Principal, in models.CreateEventInput) (*models.CreateEventResult, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := validateCreateEvent(in); err != nil {
		return nil, err
	}

	var result *models.CreateEventResult
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		users, err := userNames(ctx, tx)
		if err != nil {
			return err
		}
		if _, ok := users[in.BirthdayPersonID]; !ok {
			return utils.NewNotFoundError("Birthday person")
		}

		excluded, participants, err := resolveParticipants(in, users)
		if err != nil {
			return err
		}

		total, err := SumGifts(in.Gifts)
		if err != nil {
			return err
		}
		perPerson, err := EqualSplit(total, len(participants))
		if err != nil {
			return err
		}

		now := s.now()
		event := &models.Event{
			ID:               utils.GenerateID(),
			Title:            strings.TrimSpace(in.Title),
			Date:             strings.TrimSpace(in.Date),
			Status:           models.StatusUpcoming,
			BirthdayPersonID: in.BirthdayPersonID,
			CreatedBy:        p.UserID(),
			UPIID:            utils.TrimmedOrNil(in.UPIID),
			Phone:            utils.TrimmedOrNil(in.Phone),
			CreatedAt:        now,
		}
		if err := tx.Events().Create(ctx, event); err != nil {
			return storageError("insert event", err)
		}

		for _, g := range in.Gifts {
			gift := &models.Gift{
				ID:          utils.GenerateID(),
				EventID:     event.ID,
				Name:        strings.TrimSpace(g.Name),
				Link:        strings.TrimSpace(g.Link),
				TotalAmount: g.Amount,
				CreatedAt:   now,
			}
			if err := tx.Gifts().Create(ctx, gift); err != nil {
				return storageError("insert gift", err)
			}
		}

		for _, userID := range participants {
			contribution := &models.Contribution{
				ID:          utils.GenerateID(),
				EventID:     event.ID,
				UserID:      userID,
				SplitAmount: perPerson,
				CreatedAt:   now,
			}
			if err := tx.Contributions().Create(ctx, contribution); err != nil {
				return storageError("insert contribution", err)
			}
		}

		for _, userID := range excluded {
			exclusion := &models.EventExclusion{
				ID:             utils.GenerateID(),
				EventID:        event.ID,
				ExcludedUserID: userID,
				CreatedAt:      now,
			}
			if err := tx.Exclusions().Create(ctx, exclusion); err != nil {
				return storageError("insert exclusion", err)
			}
		}

		for _, title := range utils.UniqueStrings(in.FoodOptions) {
			option := &models.FoodOption{
				ID:        utils.GenerateID(),
				EventID:   event.ID,
				Title:     title,
				CreatedAt: now,
			}
			if err := tx.FoodPolls().CreateOption(ctx, option); err != nil {
				return storageError("insert food option", err)
			}
		}

		result = &models.CreateEventResult{
			EventID:           event.ID,
			GiftsCount:        len(in.Gifts),
			ParticipantsCount: len(participants),
			TotalAmount:       total,
			PerPerson:         perPerson,
			Message:           fmt.Sprintf("created with %d gifts and %d participants", len(in.Gifts), len(participants)),
		}
		return nil
	})
	if err != nil {
		err = storageError("create event", err)
		s.logFailure("create event", err, "user_id", p.UserID())
		return nil, err
	}

	s.log.Info("event created", "event_id", result.EventID, "gifts", result.GiftsCount,
		"participants", result.ParticipantsCount, "per_person", result.PerPerson)
	return result, nil
}

func validateCreateEvent(in models.CreateEventInput) error {
	if err := utils.ValidateRequired(in.Title, "title"); err != nil {
		return err
	}
	if err := utils.ValidateDate(in.Date, "date"); err != nil {
		return err
	}
	if err := utils.ValidateRequired(in.BirthdayPersonID, "birthday person"); err != nil {
		return err
	}
	if err := utils.ValidateNotEmpty(in.Gifts, "gifts"); err != nil {
		return err
	}
	for _, g := range in.Gifts {
		if err := utils.ValidateGift(g.Name, g.Link, g.Amount); err != nil {
			return err
		}
	}
	_, err := SumGifts(in.Gifts)
	return err
}

// resolveParticipants returns the exclusion rows to write and the paying participants.
// An explicit participant list wins; otherwise everyone but the birthday person pays.
func resolveParticipants(in models.CreateEventInput, users map[string]models.User) (excluded, participants []string, err error) {
	skip := map[string]bool{in.BirthdayPersonID: true}
	for _, id := range utils.UniqueStrings(in.ExcludedUserIDs) {
		if id == in.BirthdayPersonID {
			continue
		}
		if _, ok := users[id]; !ok {
			return nil, nil, utils.NewNotFoundError(utils.ResourceUser)
		}
		skip[id] = true
		excluded = append(excluded, id)
	}

	if len(in.ParticipantIDs) > 0 {
		for _, id := range utils.UniqueStrings(in.ParticipantIDs) {
			if skip[id] {
				continue
			}
			if _, ok := users[id]; !ok {
				return nil, nil, utils.NewNotFoundError(utils.ResourceUser)
			}
			participants = append(participants, id)
		}
	} else {
		ids := make([]string, 0, len(users))
		for id := range users {
			if !skip[id] {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool {
			if users[ids[i]].Name != users[ids[j]].Name {
				return users[ids[i]].Name < users[ids[j]].Name
			}
			return ids[i] < ids[j]
		})
		participants = ids
	}

	if len(participants) == 0 {
		return nil, nil, utils.NewValidationError(utils.ErrNoParticipants)
	}
	return excluded, participants, nil
}

// GetEvent returns the event with gifts, contributions, summary and the per-gift view.
// Users excluded from the event cannot see it.
func (s *EventService) GetEvent(ctx context.Context, p auth.Principal, eventID string) (*models.EventDetail, error) {
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
	return s.detail(ctx, event)
}

// checkVisible hides an event from the users excluded from it
func checkVisible(ctx context.Context, store repository.Store, p auth.Principal, event *models.Event) error {
	if auth.CanManageEvent(p, event) {
		return nil
	}
	excluded, err := store.Exclusions().Exists(ctx, event.ID, p.UserID())
	if err != nil {
		return storageError("check exclusion", err)
	}
	if excluded {
		return utils.NewNotFoundError(utils.ResourceEvent)
	}
	return nil
}

func (s *EventService) detail(ctx context.Context, event *models.Event) (*models.EventDetail, error) {
	gifts, err := s.store.Gifts().ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, storageError("list gifts", err)
	}
	contributions, err := s.store.Contributions().ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, storageError("list contributions", err)
	}
	users, err := userNames(ctx, s.store)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ContributionWithUser, 0, len(contributions))
	for _, c := range contributions {
		user := users[c.UserID]
		rows = append(rows, models.ContributionWithUser{Contribution: c, UserName: user.Name, UserUPI: user.UPIID})
	}

	return &models.EventDetail{
		Event:              *event,
		BirthdayPersonName: users[event.BirthdayPersonID].Name,
		Gifts:              gifts,
		Contributions:      rows,
		Summary:            SummarizeContributions(contributions),
		GiftBreakdown:      GiftBreakdown(gifts, len(contributions)),
	}, nil
}

// UpdateEvent applies the non-nil fields of patch. A status change goes
// through the same transition rules as CompleteEvent and CancelEvent.
func (s *EventService) UpdateEvent(ctx context.Context, p auth.Principal, eventID string, patch models.EventPatch) (*models.Event, error) {
	var updated *models.Event
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := requireManage(p, event); err != nil {
			return err
		}

		if patch.Title != nil {
			if err := utils.ValidateRequired(*patch.Title, "title"); err != nil {
				return err
			}
			event.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Date != nil {
			if err := utils.ValidateDate(*patch.Date, "date"); err != nil {
				return err
			}
			event.Date = strings.TrimSpace(*patch.Date)
		}
		if patch.Note != nil {
			event.Note = strings.TrimSpace(*patch.Note)
		}
		if patch.UPIID != nil {
			event.UPIID = utils.TrimPtr(patch.UPIID)
		}
		if patch.Phone != nil {
			event.Phone = utils.TrimPtr(patch.Phone)
		}
		if patch.Status != nil && *patch.Status != event.Status {
			if err := transition(event, *patch.Status); err != nil {
				return err
			}
		}

		if err := tx.Events().Update(ctx, event); err != nil {
			return notFoundOr(utils.ResourceEvent, "update event", err)
		}
		updated = event
		return nil
	})
	if err != nil {
		s.logFailure("update event", err, "event_id", eventID)
		return nil, storageError("update event", err)
	}

	s.log.Info("event updated", "event_id", eventID, "status", updated.Status)
	return updated, nil
}

// transition moves an upcoming event to a terminal status
func transition(event *models.Event, to models.EventStatus) error {
	if !to.Valid() {
		return utils.NewValidationError(fmt.Sprintf("unknown status %q", to))
	}
	if event.Status.Terminal() {
		return utils.NewConflictError(fmt.Sprintf("event is already %s", event.Status))
	}
	if to == models.StatusUpcoming {
		return utils.NewValidationError("event is already upcoming")
	}
	event.Status = to
	return nil
}

// CompleteEvent marks an upcoming event completed; organiser or admin only
func (s *EventService) CompleteEvent(ctx context.Context, p auth.Principal, eventID string) (*models.Event, error) {
	return s.setStatus(ctx, p, eventID, models.StatusCompleted)
}

// CancelEvent marks an upcoming event cancelled; organiser or admin only
func (s *EventService) CancelEvent(ctx context.Context, p auth.Principal, eventID string) (*models.Event, error) {
	return s.setStatus(ctx, p, eventID, models.StatusCancelled)
}

func (s *EventService) setStatus(ctx context.Context, p auth.Principal, eventID string, status models.EventStatus) (*models.Event, error) {
	var updated *models.Event
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := requireManage(p, event); err != nil {
			return err
		}
		if err := transition(event, status); err != nil {
			return err
		}
		if err := tx.Events().Update(ctx, event); err != nil {
			return notFoundOr(utils.ResourceEvent, "update event", err)
		}
		updated = event
		return nil
	})
	if err != nil {
		s.logFailure("set event status", err, "event_id", eventID, "status", status)
		return nil, storageError("set event status", err)
	}

	s.log.Info("event status changed", "event_id", eventID, "status", status, "by", p.UserID())
	return updated, nil
}

// BulkUpdateStatus moves every listed event to status, or none of them
func (s *EventService) BulkUpdateStatus(ctx context.Context, p auth.Principal, eventIDs []string, status models.EventStatus) (int, error) {
	if err := requireAdmin(p); err != nil {
		return 0, err
	}
	ids := utils.UniqueStrings(eventIDs)
	if err := utils.ValidateNotEmpty(ids, "event ids"); err != nil {
		return 0, err
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		for _, id := range ids {
			event, err := loadEvent(ctx, tx, id)
			if err != nil {
				return err
			}
			if err := transition(event, status); err != nil {
				return err
			}
			if err := tx.Events().Update(ctx, event); err != nil {
				return notFoundOr(utils.ResourceEvent, "update event", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logFailure("bulk update status", err, "events", len(ids), "status", status)
		return 0, storageError("bulk update status", err)
	}

	s.log.Info("event statuses changed", "events", len(ids), "status", status)
	return len(ids), nil
}

// DeleteEvent removes the event and everything under it
func (s *EventService) DeleteEvent(ctx context.Context, p auth.Principal, eventID string) error {
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := requireManage(p, event); err != nil {
			return err
		}

		if err := tx.FoodPolls().DeleteByEvent(ctx, eventID); err != nil {
			return storageError("delete food poll", err)
		}
		if err := tx.Exclusions().DeleteByEvent(ctx, eventID); err != nil {
			return storageError("delete exclusions", err)
		}
		if err := tx.Contributions().DeleteByEvent(ctx, eventID); err != nil {
			return storageError("delete contributions", err)
		}
		if err := tx.Gifts().DeleteByEvent(ctx, eventID); err != nil {
			return storageError("delete gifts", err)
		}
		if err := tx.Events().Delete(ctx, eventID); err != nil {
			return notFoundOr(utils.ResourceEvent, "delete event", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("delete event", err, "event_id", eventID)
		return storageError("delete event", err)
	}

	s.log.Info("event deleted", "event_id", eventID, "by", p.UserID())
	return nil
}

// CloneEvent copies an event and its gifts to a new date. Contributions are not copied.
func (s *EventService) CloneEvent(ctx context.Context, p auth.Principal, eventID, date string) (*models.Event, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := utils.ValidateDate(date, "date"); err != nil {
		return nil, err
	}

	var clone *models.Event
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		source, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		gifts, err := tx.Gifts().ListByEvent(ctx, source.ID)
		if err != nil {
			return storageError("list gifts", err)
		}

		now := s.now()
		clone = &models.Event{
			ID:               utils.GenerateID(),
			Title:            source.Title,
			Date:             strings.TrimSpace(date),
			Status:           models.StatusUpcoming,
			BirthdayPersonID: source.BirthdayPersonID,
			CreatedBy:        p.UserID(),
			Note:             source.Note,
			UPIID:            source.UPIID,
			Phone:            source.Phone,
			CreatedAt:        now,
		}
		if err := tx.Events().Create(ctx, clone); err != nil {
			return storageError("insert event", err)
		}

		for _, g := range gifts {
			copied := &models.Gift{
				ID:          utils.GenerateID(),
				EventID:     clone.ID,
				Name:        g.Name,
				Link:        g.Link,
				TotalAmount: g.TotalAmount,
				CreatedAt:   now,
			}
			if err := tx.Gifts().Create(ctx, copied); err != nil {
				return storageError("insert gift", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logFailure("clone event", err, "event_id", eventID)
		return nil, storageError("clone event", err)
	}

	s.log.Info("event cloned", "source_id", eventID, "event_id", clone.ID)
	return clone, nil
}

// AddGift appends a gift to an upcoming event. Existing shares are not re-split.
func (s *EventService) AddGift(ctx context.Context, p auth.Principal, eventID string, in models.GiftInput) (*models.Gift, error) {
	if err := utils.ValidateGift(in.Name, in.Link, in.Amount); err != nil {
		return nil, err
	}

	var gift *models.Gift
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
		existing, err := tx.Gifts().ListByEvent(ctx, event.ID)
		if err != nil {
			return storageError("list gifts", err)
		}
		amounts := []int64{in.Amount}
		for _, g := range existing {
			amounts = append(amounts, g.TotalAmount)
		}
		if _, ok := utils.AddAmounts(utils.MaxEventTotal, amounts...); !ok {
			return utils.NewValidationError(utils.ErrTotalTooLarge)
		}

		gift = &models.Gift{
			ID:          utils.GenerateID(),
			EventID:     event.ID,
			Name:        strings.TrimSpace(in.Name),
			Link:        strings.TrimSpace(in.Link),
			TotalAmount: in.Amount,
			CreatedAt:   s.now(),
		}
		return storageError("insert gift", tx.Gifts().Create(ctx, gift))
	})
	if err != nil {
		s.logFailure("add gift", err, "event_id", eventID)
		return nil, storageError("add gift", err)
	}

	s.log.Info("gift added", "event_id", eventID, "gift_id", gift.ID, "amount", gift.TotalAmount)
	return gift, nil
}

// UpdatePaymentContact replaces the non-nil contact fields; blank values clear them
func (s *EventService) UpdatePaymentContact(ctx context.Context, p auth.Principal, eventID string, upiID, phone *string) (*models.Event, error) {
	var updated *models.Event
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		event, err := loadEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := requireManage(p, event); err != nil {
			return err
		}
		if upiID != nil {
			event.UPIID = utils.TrimPtr(upiID)
		}
		if phone != nil {
			event.Phone = utils.TrimPtr(phone)
		}
		if err := tx.Events().Update(ctx, event); err != nil {
			return notFoundOr(utils.ResourceEvent, "update event", err)
		}
		updated = event
		return nil
	})
	if err != nil {
		s.logFailure("update payment contact", err, "event_id", eventID)
		return nil, storageError("update payment contact", err)
	}
	return updated, nil
}

// ClearPaymentContact removes both contact fields
func (s *EventService) ClearPaymentContact(ctx context.Context, p auth.Principal, eventID string) (*models.Event, error) {
	empty := ""
	return s.UpdatePaymentContact(ctx, p, eventID, &empty, &empty)
}

// ListEventsWithStats returns every event with its contribution rollup
func (s *EventService) ListEventsWithStats(ctx context.Context, p auth.Principal, filter models.EventFilter) ([]models.EventWithStats, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown status %q", filter.Status))
	}

	events, err := s.store.Events().List(ctx, filter)
	if err != nil {
		return nil, storageError("list events", err)
	}
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	gifts, err := s.store.Gifts().ListByEvents(ctx, ids)
	if err != nil {
		return nil, storageError("list gifts", err)
	}
	contributions, err := s.store.Contributions().ListByEvents(ctx, ids)
	if err != nil {
		return nil, storageError("list contributions", err)
	}
	users, err := userNames(ctx, s.store)
	if err != nil {
		return nil, err
	}

	giftsByEvent := make(map[string][]models.Gift)
	for _, g := range gifts {
		giftsByEvent[g.EventID] = append(giftsByEvent[g.EventID], g)
	}
	contributionsByEvent := make(map[string][]models.Contribution)
	for _, c := range contributions {
		contributionsByEvent[c.EventID] = append(contributionsByEvent[c.EventID], c)
	}

	rows := make([]models.EventWithStats, 0, len(events))
	for _, e := range events {
		rows = append(rows, EventStats(e, users[e.BirthdayPersonID].Name, giftsByEvent[e.ID], contributionsByEvent[e.ID]))
	}
	return rows, nil
}

// ListUpcomingForUser returns the upcoming events the caller takes part in,
// soonest first. The caller's own birthday events are hidden.
func (s *EventService) ListUpcomingForUser(ctx context.Context, p auth.Principal) ([]models.UserEvent, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}

	events, err := s.store.Events().List(ctx, models.EventFilter{Status: models.StatusUpcoming})
	if err != nil {
		return nil, storageError("list events", err)
	}

	visible := make([]models.Event, 0, len(events))
	ids := make([]string, 0, len(events))
	for _, e := range events {
		if e.BirthdayPersonID == p.UserID() {
			continue
		}
		excluded, err := s.store.Exclusions().Exists(ctx, e.ID, p.UserID())
		if err != nil {
			return nil, storageError("check exclusion", err)
		}
		if excluded {
			continue
		}
		visible = append(visible, e)
		ids = append(ids, e.ID)
	}

	gifts, err := s.store.Gifts().ListByEvents(ctx, ids)
	if err != nil {
		return nil, storageError("list gifts", err)
	}
	giftsByEvent := make(map[string][]models.Gift)
	for _, g := range gifts {
		giftsByEvent[g.EventID] = append(giftsByEvent[g.EventID], g)
	}
	users, err := userNames(ctx, s.store)
	if err != nil {
		return nil, err
	}

	result := make([]models.UserEvent, 0, len(visible))
	for _, e := range visible {
		row := models.UserEvent{
			Event:              e,
			BirthdayPersonName: users[e.BirthdayPersonID].Name,
			Gifts:              giftsByEvent[e.ID],
		}
		if row.Gifts == nil {
			row.Gifts = []models.Gift{}
		}
		contribution, err := s.store.Contributions().GetByEventAndUser(ctx, e.ID, p.UserID())
		switch {
		case err == nil:
			row.Contribution = contribution
		case !errors.Is(err, repository.ErrNotFound):
			return nil, storageError("get contribution", err)
		}
		result = append(result, row)
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

// ListUserContributions returns the caller's contribution history, newest first
func (s *EventService) ListUserContributions(ctx context.Context, p auth.Principal) ([]models.UserContribution, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}

	contributions, err := s.store.Contributions().ListByUser(ctx, p.UserID())
	if err != nil {
		return nil, storageError("list contributions", err)
	}

	events := make(map[string]*models.Event)
	result := make([]models.UserContribution, 0, len(contributions))
	for _, c := range contributions {
		event, ok := events[c.EventID]
		if !ok {
			event, err = loadEvent(ctx, s.store, c.EventID)
			if err != nil {
				return nil, err
			}
			events[c.EventID] = event
		}
		result = append(result, models.UserContribution{
			Contribution: c,
			EventTitle:   event.Title,
			EventDate:    event.Date,
			EventStatus:  event.Status,
		})
	}
	return result, nil
}
