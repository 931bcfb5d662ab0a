package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/logger"
	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
	"github.com/fadhlanhapp/giftbuddy-backend/repository/memory"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *memory.Store
	clock *fakeClock
	svc   *Services
	admin auth.Capability
}

// newFixture seeds an admin ("admin") plus one plain user per id
func newFixture(t *testing.T, userIDs ...string) *fixture {
	t.Helper()

	store := memory.NewStore()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		store: store,
		clock: clock,
		svc:   New(store, logger.Discard(), clock.Now),
		admin: auth.NewCapability("admin", models.RoleAdmin),
	}

	f.addUser("admin", "Admin", models.RoleAdmin)
	for _, id := range userIDs {
		f.addUser(id, "Name "+id, models.RoleUser)
	}
	return f
}

func (f *fixture) addUser(id, name string, role models.Role) {
	f.t.Helper()
	require.NoError(f.t, f.store.Users().Create(f.ctx, &models.User{
		ID: id, Name: name, Role: role, CreatedAt: f.clock.Now(),
	}))
}

func (f *fixture) user(id string) auth.Capability {
	return auth.NewCapability(id, models.RoleUser)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(utils.DateLayout, value)
	require.NoError(t, err)
	return parsed
}

func gifts(amounts ...int64) []models.GiftInput {
	result := make([]models.GiftInput, 0, len(amounts))
	for i, a := range amounts {
		result = append(result, models.GiftInput{Name: "Gift " + string(rune('A'+i)), Amount: a})
	}
	return result
}

// createEvent creates an event as the fixture admin and returns its id
func (f *fixture) createEvent(in models.CreateEventInput) string {
	f.t.Helper()
	if in.Title == "" {
		in.Title = "Birthday"
	}
	if in.Date == "" {
		in.Date = "2026-03-20"
	}
	if len(in.Gifts) == 0 {
		in.Gifts = gifts(100000)
	}
	result, err := f.svc.Events.CreateEventWithGifts(f.ctx, f.admin, in)
	require.NoError(f.t, err)
	return result.EventID
}

func (f *fixture) contributions(eventID string) []models.Contribution {
	f.t.Helper()
	rows, err := f.store.Contributions().ListByEvent(f.ctx, eventID)
	require.NoError(f.t, err)
	return rows
}

func (f *fixture) contributionOf(eventID, userID string) *models.Contribution {
	f.t.Helper()
	c, err := f.store.Contributions().GetByEventAndUser(f.ctx, eventID, userID)
	require.NoError(f.t, err)
	return c
}

// failingStore makes every contribution insert fail, inside or outside a transaction
type failingStore struct {
	repository.Store
}

func (s failingStore) Contributions() repository.ContributionRepository {
	return failingContributions{ContributionRepository: s.Store.Contributions()}
}

func (s failingStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	return s.Store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		return fn(ctx, failingStore{Store: tx})
	})
}

type failingContributions struct {
	repository.ContributionRepository
}

func (failingContributions) Create(context.Context, *models.Contribution) error {
	return errors.New("disk full")
}
