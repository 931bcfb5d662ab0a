package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
)

func seed(t *testing.T) (*Store, context.Context) {
	t.Helper()
	ctx := context.Background()
	s := NewStore()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Users().Create(ctx, &models.User{ID: "u1", Name: "One", Role: models.RoleUser}))
	require.NoError(t, s.Users().Create(ctx, &models.User{ID: "u2", Name: "Two", Role: models.RoleUser}))
	require.NoError(t, s.Events().Create(ctx, &models.Event{ID: "e1", Title: "Party", Date: "2026-03-20", Status: models.StatusUpcoming, BirthdayPersonID: "u2", CreatedAt: now}))
	require.NoError(t, s.Gifts().Create(ctx, &models.Gift{ID: "g1", EventID: "e1", Name: "Watch", TotalAmount: 1000, CreatedAt: now}))
	require.NoError(t, s.Contributions().Create(ctx, &models.Contribution{ID: "c1", EventID: "e1", UserID: "u1", GiftID: strPtr("g1"), SplitAmount: 1000, CreatedAt: now}))
	require.NoError(t, s.Exclusions().Create(ctx, &models.EventExclusion{ID: "x1", EventID: "e1", ExcludedUserID: "u2", CreatedAt: now}))
	require.NoError(t, s.FoodPolls().CreateOption(ctx, &models.FoodOption{ID: "o1", EventID: "e1", Title: "Pizza", CreatedAt: now}))
	require.NoError(t, s.FoodPolls().UpsertVote(ctx, &models.FoodVote{EventID: "e1", FoodOptionID: "o1", UserID: "u1", CreatedAt: now}))
	return s, ctx
}

func strPtr(s string) *string { return &s }

func TestWithTx_CommitAndRollback(t *testing.T) {
	s, ctx := seed(t)

	err := s.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		return tx.Users().Create(ctx, &models.User{ID: "u3", Name: "Three", Role: models.RoleUser})
	})
	require.NoError(t, err)
	_, err = s.Users().GetByID(ctx, "u3")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Users().Create(ctx, &models.User{ID: "u4", Name: "Four", Role: models.RoleUser}); err != nil {
			return err
		}
		if err := tx.Events().Delete(ctx, "e1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Users().GetByID(ctx, "u4")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Events().GetByID(ctx, "e1")
	assert.NoError(t, err)
}

func TestWithTx_CancelledContextDiscardsWrites(t *testing.T) {
	s, _ := seed(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := s.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		cancel()
		return tx.Users().Delete(ctx, "u1")
	})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Users().GetByID(context.Background(), "u1")
	assert.NoError(t, err)
}

func TestConstraints(t *testing.T) {
	s, ctx := seed(t)

	err := s.Users().Create(ctx, &models.User{ID: "u1", Name: "Again"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = s.Contributions().Create(ctx, &models.Contribution{ID: "c2", EventID: "e1", UserID: "u1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = s.Contributions().Create(ctx, &models.Contribution{ID: "c3", EventID: "missing", UserID: "u1"})
	assert.ErrorIs(t, err, repository.ErrReference)

	err = s.Exclusions().Create(ctx, &models.EventExclusion{ID: "x2", EventID: "e1", ExcludedUserID: "u2"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = s.FoodPolls().UpsertVote(ctx, &models.FoodVote{EventID: "e1", FoodOptionID: "missing", UserID: "u1"})
	assert.ErrorIs(t, err, repository.ErrReference)

	err = s.Exclusions().Delete(ctx, "e1", "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventDeleteCascades(t *testing.T) {
	s, ctx := seed(t)

	require.NoError(t, s.Events().Delete(ctx, "e1"))

	gifts, _ := s.Gifts().ListByEvent(ctx, "e1")
	assert.Empty(t, gifts)
	contributions, _ := s.Contributions().ListByEvent(ctx, "e1")
	assert.Empty(t, contributions)
	exclusions, _ := s.Exclusions().ListByEvent(ctx, "e1")
	assert.Empty(t, exclusions)
	options, _ := s.FoodPolls().ListOptions(ctx, "e1")
	assert.Empty(t, options)
	votes, _ := s.FoodPolls().ListVotes(ctx, "e1")
	assert.Empty(t, votes)

	assert.ErrorIs(t, s.Events().Delete(ctx, "e1"), repository.ErrNotFound)
}

func TestUserDeleteCascades(t *testing.T) {
	s, ctx := seed(t)

	require.NoError(t, s.Users().Delete(ctx, "u1"))

	_, err := s.Contributions().GetByEventAndUser(ctx, "e1", "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	votes, _ := s.FoodPolls().ListVotes(ctx, "e1")
	assert.Empty(t, votes)

	// events keep weak references to people
	_, err = s.Events().GetByID(ctx, "e1")
	assert.NoError(t, err)
}

func TestGiftDeleteNullsContributionGift(t *testing.T) {
	s, ctx := seed(t)

	require.NoError(t, s.Gifts().DeleteByEvent(ctx, "e1"))

	c, err := s.Contributions().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, c.GiftID)
}

func TestUpsertVoteReplaces(t *testing.T) {
	s, ctx := seed(t)
	require.NoError(t, s.FoodPolls().CreateOption(ctx, &models.FoodOption{ID: "o2", EventID: "e1", Title: "Sushi"}))

	require.NoError(t, s.FoodPolls().UpsertVote(ctx, &models.FoodVote{EventID: "e1", FoodOptionID: "o2", UserID: "u1"}))

	votes, err := s.FoodPolls().ListVotes(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, "o2", votes[0].FoodOptionID)

	require.NoError(t, s.FoodPolls().DeleteOption(ctx, "o2"))
	votes, err = s.FoodPolls().ListVotes(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestEventUpdateKeepsOwnership(t *testing.T) {
	s, ctx := seed(t)

	require.NoError(t, s.Events().Update(ctx, &models.Event{ID: "e1", Title: "Renamed", Status: models.StatusCompleted, BirthdayPersonID: "u1", CreatedBy: "u1"}))

	e, err := s.Events().GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", e.Title)
	assert.Equal(t, "u2", e.BirthdayPersonID)
	assert.Equal(t, "", e.CreatedBy)
	assert.Equal(t, models.StatusCompleted, e.Status)
}

func TestListOrdering(t *testing.T) {
	s, ctx := seed(t)
	early := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Events().Create(ctx, &models.Event{ID: "e2", Date: "2026-05-01", Status: models.StatusCancelled, CreatedAt: early}))
	require.NoError(t, s.Events().Create(ctx, &models.Event{ID: "e3", Date: "2026-01-01", Status: models.StatusUpcoming, CreatedAt: early}))

	events, err := s.Events().List(ctx, models.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"e2", "e1", "e3"}, []string{events[0].ID, events[1].ID, events[2].ID})

	events, err = s.Events().List(ctx, models.EventFilter{Status: models.StatusUpcoming})
	require.NoError(t, err)
	assert.Len(t, events, 2)

	users, err := s.Users().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "One", users[0].Name)
}

func TestContributionListByEvents(t *testing.T) {
	s, ctx := seed(t)
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Events().Create(ctx, &models.Event{ID: "e2", Date: "2026-04-01", Status: models.StatusUpcoming, BirthdayPersonID: "u1", CreatedAt: now}))
	require.NoError(t, s.Contributions().Create(ctx, &models.Contribution{ID: "c2", EventID: "e2", UserID: "u2", SplitAmount: 500, CreatedAt: now}))

	only, err := s.Contributions().ListByEvents(ctx, []string{"e2"})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "c2", only[0].ID)

	both, err := s.Contributions().ListByEvents(ctx, []string{"e1", "e2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, []string{both[0].ID, both[1].ID})

	none, err := s.Contributions().ListByEvents(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
