// Package memory is an in-process Store used for STORAGE=memory and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
)

type voteKey struct {
	eventID string
	userID  string
}

type dataset struct {
	users         map[string]models.User
	events        map[string]models.Event
	gifts         map[string]models.Gift
	contributions map[string]models.Contribution
	exclusions    map[string]models.EventExclusion
	options       map[string]models.FoodOption
	votes         map[voteKey]models.FoodVote
}

func newDataset() *dataset {
	return &dataset{
		users:         map[string]models.User{},
		events:        map[string]models.Event{},
		gifts:         map[string]models.Gift{},
		contributions: map[string]models.Contribution{},
		exclusions:    map[string]models.EventExclusion{},
		options:       map[string]models.FoodOption{},
		votes:         map[voteKey]models.FoodVote{},
	}
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (d *dataset) clone() *dataset {
	return &dataset{
		users:         cloneMap(d.users),
		events:        cloneMap(d.events),
		gifts:         cloneMap(d.gifts),
		contributions: cloneMap(d.contributions),
		exclusions:    cloneMap(d.exclusions),
		options:       cloneMap(d.options),
		votes:         cloneMap(d.votes),
	}
}

// Store keeps every table in maps guarded by one RWMutex.
// A transaction works on a copy that replaces the live data on commit.
type Store struct {
	mu   sync.RWMutex
	data *dataset
	inTx bool
}

func NewStore() *Store {
	return &Store{data: newDataset()}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Users() repository.UserRepository                 { return userRepo{s} }
func (s *Store) Events() repository.EventRepository               { return eventRepo{s} }
func (s *Store) Gifts() repository.GiftRepository                 { return giftRepo{s} }
func (s *Store) Contributions() repository.ContributionRepository { return contributionRepo{s} }
func (s *Store) Exclusions() repository.ExclusionRepository       { return exclusionRepo{s} }
func (s *Store) FoodPolls() repository.FoodPollRepository         { return foodPollRepo{s} }

// WithTx serializes writers for the whole of fn. Nested calls join the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{data: s.data.clone(), inTx: true}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

func (s *Store) read(fn func(d *dataset)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(fn func(d *dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *models.User) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.users[user.ID]; ok {
			return fmt.Errorf("insert user: %w", repository.ErrDuplicate)
		}
		d.users[user.ID] = *user
		return nil
	})
}

func (r userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	var (
		user models.User
		ok   bool
	)
	r.s.read(func(d *dataset) { user, ok = d.users[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r userRepo) List(_ context.Context) ([]models.User, error) {
	users := []models.User{}
	r.s.read(func(d *dataset) {
		for _, u := range d.users {
			users = append(users, u)
		}
	})
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r userRepo) Update(_ context.Context, user *models.User) error {
	return r.s.write(func(d *dataset) error {
		existing, ok := d.users[user.ID]
		if !ok {
			return repository.ErrNotFound
		}
		updated := *user
		updated.CreatedAt = existing.CreatedAt
		d.users[user.ID] = updated
		return nil
	})
}

// Delete cascades like the foreign keys of the SQL schema
func (r userRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.users[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.users, id)
		for cid, c := range d.contributions {
			if c.UserID == id {
				delete(d.contributions, cid)
			}
		}
		for eid, e := range d.exclusions {
			if e.ExcludedUserID == id {
				delete(d.exclusions, eid)
			}
		}
		for k := range d.votes {
			if k.userID == id {
				delete(d.votes, k)
			}
		}
		return nil
	})
}

type eventRepo struct{ s *Store }

func (r eventRepo) Create(_ context.Context, event *models.Event) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.events[event.ID]; ok {
			return fmt.Errorf("insert event: %w", repository.ErrDuplicate)
		}
		d.events[event.ID] = *event
		return nil
	})
}

func (r eventRepo) GetByID(_ context.Context, id string) (*models.Event, error) {
	var (
		event models.Event
		ok    bool
	)
	r.s.read(func(d *dataset) { event, ok = d.events[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &event, nil
}

func (r eventRepo) List(_ context.Context, filter models.EventFilter) ([]models.Event, error) {
	events := []models.Event{}
	r.s.read(func(d *dataset) {
		for _, e := range d.events {
			if filter.Status != "" && e.Status != filter.Status {
				continue
			}
			events = append(events, e)
		}
	})
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date > events[j].Date
		}
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (r eventRepo) Update(_ context.Context, event *models.Event) error {
	return r.s.write(func(d *dataset) error {
		existing, ok := d.events[event.ID]
		if !ok {
			return repository.ErrNotFound
		}
		updated := *event
		updated.BirthdayPersonID = existing.BirthdayPersonID
		updated.CreatedBy = existing.CreatedBy
		updated.CreatedAt = existing.CreatedAt
		d.events[event.ID] = updated
		return nil
	})
}

func (r eventRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.events[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.events, id)
		d.deleteEventChildren(id)
		return nil
	})
}

func (d *dataset) deleteEventChildren(eventID string) {
	for id, g := range d.gifts {
		if g.EventID == eventID {
			delete(d.gifts, id)
		}
	}
	for id, c := range d.contributions {
		if c.EventID == eventID {
			delete(d.contributions, id)
		}
	}
	for id, e := range d.exclusions {
		if e.EventID == eventID {
			delete(d.exclusions, id)
		}
	}
	for id, o := range d.options {
		if o.EventID == eventID {
			delete(d.options, id)
		}
	}
	for k := range d.votes {
		if k.eventID == eventID {
			delete(d.votes, k)
		}
	}
}

type giftRepo struct{ s *Store }

func (r giftRepo) Create(_ context.Context, gift *models.Gift) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.events[gift.EventID]; !ok {
			return fmt.Errorf("insert gift: %w", repository.ErrReference)
		}
		if _, ok := d.gifts[gift.ID]; ok {
			return fmt.Errorf("insert gift: %w", repository.ErrDuplicate)
		}
		d.gifts[gift.ID] = *gift
		return nil
	})
}

func (r giftRepo) ListByEvent(ctx context.Context, eventID string) ([]models.Gift, error) {
	return r.ListByEvents(ctx, []string{eventID})
}

func (r giftRepo) ListByEvents(_ context.Context, eventIDs []string) ([]models.Gift, error) {
	wanted := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = true
	}
	gifts := []models.Gift{}
	r.s.read(func(d *dataset) {
		for _, g := range d.gifts {
			if wanted[g.EventID] {
				gifts = append(gifts, g)
			}
		}
	})
	sort.Slice(gifts, func(i, j int) bool {
		if !gifts[i].CreatedAt.Equal(gifts[j].CreatedAt) {
			return gifts[i].CreatedAt.Before(gifts[j].CreatedAt)
		}
		return gifts[i].ID < gifts[j].ID
	})
	return gifts, nil
}

func (r giftRepo) DeleteByEvent(_ context.Context, eventID string) error {
	return r.s.write(func(d *dataset) error {
		for id, g := range d.gifts {
			if g.EventID != eventID {
				continue
			}
			delete(d.gifts, id)
			for cid, c := range d.contributions {
				if c.GiftID != nil && *c.GiftID == id {
					c.GiftID = nil
					d.contributions[cid] = c
				}
			}
		}
		return nil
	})
}

type contributionRepo struct{ s *Store }

func (r contributionRepo) Create(_ context.Context, c *models.Contribution) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.events[c.EventID]; !ok {
			return fmt.Errorf("insert contribution: %w", repository.ErrReference)
		}
		if _, ok := d.users[c.UserID]; !ok {
			return fmt.Errorf("insert contribution: %w", repository.ErrReference)
		}
		if _, ok := d.contributions[c.ID]; ok {
			return fmt.Errorf("insert contribution: %w", repository.ErrDuplicate)
		}
		for _, existing := range d.contributions {
			if existing.EventID == c.EventID && existing.UserID == c.UserID {
				return fmt.Errorf("insert contribution: %w", repository.ErrDuplicate)
			}
		}
		d.contributions[c.ID] = *c
		return nil
	})
}

func (r contributionRepo) GetByID(_ context.Context, id string) (*models.Contribution, error) {
	var (
		c  models.Contribution
		ok bool
	)
	r.s.read(func(d *dataset) { c, ok = d.contributions[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r contributionRepo) GetByEventAndUser(_ context.Context, eventID, userID string) (*models.Contribution, error) {
	var found *models.Contribution
	r.s.read(func(d *dataset) {
		for _, c := range d.contributions {
			if c.EventID == eventID && c.UserID == userID {
				c := c
				found = &c
				return
			}
		}
	})
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

func (r contributionRepo) filter(keep func(c models.Contribution) bool, newestFirst bool) []models.Contribution {
	result := []models.Contribution{}
	r.s.read(func(d *dataset) {
		for _, c := range d.contributions {
			if keep(c) {
				result = append(result, c)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			if newestFirst {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (r contributionRepo) ListByEvent(_ context.Context, eventID string) ([]models.Contribution, error) {
	return r.filter(func(c models.Contribution) bool { return c.EventID == eventID }, false), nil
}

func (r contributionRepo) ListByEvents(_ context.Context, eventIDs []string) ([]models.Contribution, error) {
	wanted := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = true
	}
	return r.filter(func(c models.Contribution) bool { return wanted[c.EventID] }, false), nil
}

func (r contributionRepo) ListByUser(_ context.Context, userID string) ([]models.Contribution, error) {
	return r.filter(func(c models.Contribution) bool { return c.UserID == userID }, true), nil
}

func (r contributionRepo) List(_ context.Context) ([]models.Contribution, error) {
	return r.filter(func(models.Contribution) bool { return true }, true), nil
}

func (r contributionRepo) Update(_ context.Context, c *models.Contribution) error {
	return r.s.write(func(d *dataset) error {
		existing, ok := d.contributions[c.ID]
		if !ok {
			return repository.ErrNotFound
		}
		existing.SplitAmount = c.SplitAmount
		existing.Paid = c.Paid
		existing.PaymentTime = c.PaymentTime
		d.contributions[c.ID] = existing
		return nil
	})
}

func (r contributionRepo) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.contributions[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.contributions, id)
		return nil
	})
}

func (r contributionRepo) DeleteByEvent(_ context.Context, eventID string) error {
	return r.s.write(func(d *dataset) error {
		for id, c := range d.contributions {
			if c.EventID == eventID {
				delete(d.contributions, id)
			}
		}
		return nil
	})
}

func (r contributionRepo) DeleteByUser(_ context.Context, userID string) error {
	return r.s.write(func(d *dataset) error {
		for id, c := range d.contributions {
			if c.UserID == userID {
				delete(d.contributions, id)
			}
		}
		return nil
	})
}

type exclusionRepo struct{ s *Store }

func (r exclusionRepo) Create(_ context.Context, e *models.EventExclusion) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.events[e.EventID]; !ok {
			return fmt.Errorf("insert exclusion: %w", repository.ErrReference)
		}
		if _, ok := d.users[e.ExcludedUserID]; !ok {
			return fmt.Errorf("insert exclusion: %w", repository.ErrReference)
		}
		for _, existing := range d.exclusions {
			if existing.ID == e.ID || (existing.EventID == e.EventID && existing.ExcludedUserID == e.ExcludedUserID) {
				return fmt.Errorf("insert exclusion: %w", repository.ErrDuplicate)
			}
		}
		d.exclusions[e.ID] = *e
		return nil
	})
}

func (r exclusionRepo) Delete(_ context.Context, eventID, userID string) error {
	return r.s.write(func(d *dataset) error {
		for id, e := range d.exclusions {
			if e.EventID == eventID && e.ExcludedUserID == userID {
				delete(d.exclusions, id)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (r exclusionRepo) Exists(_ context.Context, eventID, userID string) (bool, error) {
	found := false
	r.s.read(func(d *dataset) {
		for _, e := range d.exclusions {
			if e.EventID == eventID && e.ExcludedUserID == userID {
				found = true
				return
			}
		}
	})
	return found, nil
}

func (r exclusionRepo) ListByEvent(_ context.Context, eventID string) ([]models.EventExclusion, error) {
	result := []models.EventExclusion{}
	r.s.read(func(d *dataset) {
		for _, e := range d.exclusions {
			if e.EventID == eventID {
				result = append(result, e)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r exclusionRepo) DeleteByEvent(_ context.Context, eventID string) error {
	return r.s.write(func(d *dataset) error {
		for id, e := range d.exclusions {
			if e.EventID == eventID {
				delete(d.exclusions, id)
			}
		}
		return nil
	})
}

func (r exclusionRepo) DeleteByUser(_ context.Context, userID string) error {
	return r.s.write(func(d *dataset) error {
		for id, e := range d.exclusions {
			if e.ExcludedUserID == userID {
				delete(d.exclusions, id)
			}
		}
		return nil
	})
}

type foodPollRepo struct{ s *Store }

func (r foodPollRepo) CreateOption(_ context.Context, o *models.FoodOption) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.events[o.EventID]; !ok {
			return fmt.Errorf("insert food option: %w", repository.ErrReference)
		}
		if _, ok := d.options[o.ID]; ok {
			return fmt.Errorf("insert food option: %w", repository.ErrDuplicate)
		}
		d.options[o.ID] = *o
		return nil
	})
}

func (r foodPollRepo) GetOption(_ context.Context, id string) (*models.FoodOption, error) {
	var (
		o  models.FoodOption
		ok bool
	)
	r.s.read(func(d *dataset) { o, ok = d.options[id] })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r foodPollRepo) ListOptions(_ context.Context, eventID string) ([]models.FoodOption, error) {
	result := []models.FoodOption{}
	r.s.read(func(d *dataset) {
		for _, o := range d.options {
			if o.EventID == eventID {
				result = append(result, o)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r foodPollRepo) DeleteOption(_ context.Context, id string) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.options[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.options, id)
		for k, v := range d.votes {
			if v.FoodOptionID == id {
				delete(d.votes, k)
			}
		}
		return nil
	})
}

func (r foodPollRepo) UpsertVote(_ context.Context, v *models.FoodVote) error {
	return r.s.write(func(d *dataset) error {
		option, ok := d.options[v.FoodOptionID]
		if !ok || option.EventID != v.EventID {
			return fmt.Errorf("upsert food vote: %w", repository.ErrReference)
		}
		if _, ok := d.users[v.UserID]; !ok {
			return fmt.Errorf("upsert food vote: %w", repository.ErrReference)
		}
		d.votes[voteKey{eventID: v.EventID, userID: v.UserID}] = *v
		return nil
	})
}

func (r foodPollRepo) ListVotes(_ context.Context, eventID string) ([]models.FoodVote, error) {
	result := []models.FoodVote{}
	r.s.read(func(d *dataset) {
		for k, v := range d.votes {
			if k.eventID == eventID {
				result = append(result, v)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].UserID < result[j].UserID
	})
	return result, nil
}

func (r foodPollRepo) DeleteByEvent(_ context.Context, eventID string) error {
	return r.s.write(func(d *dataset) error {
		for k := range d.votes {
			if k.eventID == eventID {
				delete(d.votes, k)
			}
		}
		for id, o := range d.options {
			if o.EventID == eventID {
				delete(d.options, id)
			}
		}
		return nil
	})
}

func (r foodPollRepo) DeleteVotesByUser(_ context.Context, userID string) error {
	return r.s.write(func(d *dataset) error {
		for k := range d.votes {
			if k.userID == userID {
				delete(d.votes, k)
			}
		}
		return nil
	})
}
