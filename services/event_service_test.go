package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

func TestCreateEventWithGifts_ScenarioA_FourParticipants(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2", "u3", "u4")

	result, err := f.svc.Events.CreateEventWithGifts(f.ctx, f.admin, models.CreateEventInput{
		Title:            "Asha turns 30",
		Date:             "2026-03-20",
		BirthdayPersonID: "bday",
		Gifts:            gifts(60000, 40000),
		ParticipantIDs:   []string{"u1", "u2", "u3", "u4"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100000), result.TotalAmount)
	assert.Equal(t, int64(25000), result.PerPerson)
	assert.Equal(t, 2, result.GiftsCount)
	assert.Equal(t, 4, result.ParticipantsCount)
	assert.Equal(t, "created with 2 gifts and 4 participants", result.Message)

	rows := f.contributions(result.EventID)
	require.Len(t, rows, 4)
	var sum int64
	for _, c := range rows {
		assert.Equal(t, int64(25000), c.SplitAmount)
		assert.Nil(t, c.GiftID)
		assert.False(t, c.Paid)
		assert.Nil(t, c.PaymentTime)
		sum += c.SplitAmount
	}
	assert.Equal(t, int64(100000), sum)

	event, err := f.store.Events().GetByID(f.ctx, result.EventID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpcoming, event.Status)
	assert.Equal(t, "admin", event.CreatedBy)
}

func TestCreateEventWithGifts_ScenarioB_RemainderNotRedistributed(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2", "u3")

	id := f.createEvent(models.CreateEventInput{
		BirthdayPersonID: "bday",
		Gifts:            gifts(60000, 40000),
		ParticipantIDs:   []string{"u1", "u2", "u3"},
	})

	rows := f.contributions(id)
	require.Len(t, rows, 3)
	var sum int64
	for _, c := range rows {
		assert.Equal(t, int64(33333), c.SplitAmount)
		sum += c.SplitAmount
	}
	assert.Equal(t, int64(99999), sum)
}

func TestCreateEventWithGifts_ScenarioD_ExcludedUserGetsNoShare(t *testing.T) {
	// admin plus u1..u4 are the five eligible users
	f := newFixture(t, "bday", "u1", "u2", "u3", "u4")

	id := f.createEvent(models.CreateEventInput{
		BirthdayPersonID: "bday",
		ExcludedUserIDs:  []string{"u3"},
	})

	rows := f.contributions(id)
	require.Len(t, rows, 4)
	for _, c := range rows {
		assert.NotEqual(t, "u3", c.UserID)
		assert.NotEqual(t, "bday", c.UserID)
	}

	excluded, err := f.svc.Exclusions.IsExcluded(f.ctx, id, "u3")
	require.NoError(t, err)
	assert.True(t, excluded)
}

func TestCreateEventWithGifts_BirthdayPersonNeverPays(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2")

	id := f.createEvent(models.CreateEventInput{
		BirthdayPersonID: "bday",
		ParticipantIDs:   []string{"bday", "u1", "u2", "u1"},
	})

	rows := f.contributions(id)
	require.Len(t, rows, 2)
	for _, c := range rows {
		assert.NotEqual(t, "bday", c.UserID)
	}
}

func TestCreateEventWithGifts_ExplicitListHonoursExclusions(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2", "u3")

	id := f.createEvent(models.CreateEventInput{
		BirthdayPersonID: "bday",
		ParticipantIDs:   []string{"u1", "u2", "u3"},
		ExcludedUserIDs:  []string{"u2"},
	})

	rows := f.contributions(id)
	require.Len(t, rows, 2)
	for _, c := range rows {
		assert.NotEqual(t, "u2", c.UserID)
	}
}

func TestCreateEventWithGifts_NoParticipantsWritesNothing(t *testing.T) {
	f := newFixture(t, "bday")

	_, err := f.svc.Events.CreateEventWithGifts(f.ctx, f.admin, models.CreateEventInput{
		Title:            "Lonely",
		Date:             "2026-03-20",
		BirthdayPersonID: "bday",
		Gifts:            gifts(1000),
		ExcludedUserIDs:  []string{"admin"},
	})
	require.Error(t, err)
	assert.True(t, utils.IsReason(err, utils.ReasonValidation))

	events, err := f.store.Events().List(f.ctx, models.EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, events)
	all, err := f.store.Contributions().List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateEventWithGifts_StorageFailureRollsBack(t *testing.T) {
	f := newFixture(t, "bday", "u1")
	svc := New(failingStore{Store: f.store}, f.svc.Events.log, f.clock.Now)

	_, err := svc.Events.CreateEventWithGifts(f.ctx, f.admin, models.CreateEventInput{
		Title:            "Doomed",
		Date:             "2026-03-20",
		BirthdayPersonID: "bday",
		Gifts:            gifts(60000, 40000),
		FoodOptions:      []string{"Pizza"},
	})
	require.Error(t, err)
	assert.True(t, utils.IsReason(err, utils.ReasonStorage))

	events, err := f.store.Events().List(f.ctx, models.EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCreateEventWithGifts_Validation(t *testing.T) {
	f := newFixture(t, "bday", "u1")

	base := models.CreateEventInput{
		Title:            "Party",
		Date:             "2026-03-20",
		BirthdayPersonID: "bday",
		Gifts:            gifts(1000),
	}

	tests := []struct {
		name   string
		mutate func(in *models.CreateEventInput)
		reason string
	}{
		{"blank title", func(in *models.CreateEventInput) { in.Title = "  " }, utils.ReasonValidation},
		{"bad date", func(in *models.CreateEventInput) { in.Date = "20/03/2026" }, utils.ReasonValidation},
		{"no gifts", func(in *models.CreateEventInput) { in.Gifts = nil }, utils.ReasonValidation},
		{"zero cost gift", func(in *models.CreateEventInput) { in.Gifts = gifts(0) }, utils.ReasonValidation},
		{"bad gift link", func(in *models.CreateEventInput) {
			in.Gifts = []models.GiftInput{{Name: "Watch", Link: "not a url", Amount: 100}}
		}, utils.ReasonValidation},
		{"unknown birthday person", func(in *models.CreateEventInput) { in.BirthdayPersonID = "ghost" }, utils.ReasonNotFound},
		{"unknown participant", func(in *models.CreateEventInput) { in.ParticipantIDs = []string{"ghost"} }, utils.ReasonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := f.svc.Events.CreateEventWithGifts(f.ctx, f.admin, in)
			assert.True(t, utils.IsReason(err, tt.reason), "got %v", err)
		})
	}
}

func TestCreateEventWithGifts_AdminOnly(t *testing.T) {
	f := newFixture(t, "bday", "u1")

	_, err := f.svc.Events.CreateEventWithGifts(f.ctx, f.user("u1"), models.CreateEventInput{
		Title: "Party", Date: "2026-03-20", BirthdayPersonID: "bday", Gifts: gifts(1000),
	})
	assert.True(t, utils.IsReason(err, utils.ReasonForbidden))

	_, err = f.svc.Events.CreateEventWithGifts(f.ctx, nil, models.CreateEventInput{})
	assert.True(t, utils.IsReason(err, utils.ReasonUnauthenticated))
}

func TestGetEvent(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2", "outsider")
	id := f.createEvent(models.CreateEventInput{
		BirthdayPersonID: "bday",
		Gifts:            gifts(60000, 40000),
		ParticipantIDs:   []string{"u1", "u2"},
		ExcludedUserIDs:  []string{"outsider"},
	})
	_, err := f.svc.Contributions.MarkPaid(f.ctx, f.user("u1"), id)
	require.NoError(t, err)

	detail, err := f.svc.Events.GetEvent(f.ctx, f.user("u2"), id)
	require.NoError(t, err)
	assert.Equal(t, "Name bday", detail.BirthdayPersonName)
	assert.Len(t, detail.Gifts, 2)
	assert.Len(t, detail.Contributions, 2)
	assert.Equal(t, int64(50000), detail.Summary.TotalCollected)
	assert.Equal(t, int64(50000), detail.Summary.TotalPending)
	assert.Equal(t, 1, detail.Summary.PaidCount)
	assert.Equal(t, 50, detail.Summary.CollectionPercentage)
	require.Len(t, detail.GiftBreakdown, 2)
	for _, share := range detail.GiftBreakdown {
		assert.Equal(t, 2, share.Participants)
	}

	_, err = f.svc.Events.GetEvent(f.ctx, f.user("outsider"), id)
	assert.True(t, utils.IsReason(err, utils.ReasonNotFound))

	_, err = f.svc.Events.GetEvent(f.ctx, f.admin, "missing")
	assert.True(t, utils.IsReason(err, utils.ReasonNotFound))
}

func TestEventStatusTransitions(t *testing.T) {
	f := newFixture(t, "bday", "u1")

	completed := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday"})
	event, err := f.svc.Events.CompleteEvent(f.ctx, f.admin, completed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, event.Status)

	_, err = f.svc.Events.CancelEvent(f.ctx, f.admin, completed)
	assert.True(t, utils.IsReason(err, utils.ReasonConflict))
	_, err = f.svc.Events.CompleteEvent(f.ctx, f.admin, completed)
	assert.True(t, utils.IsReason(err, utils.ReasonConflict))

	upcoming := models.StatusUpcoming
	_, err = f.svc.Events.UpdateEvent(f.ctx, f.admin, completed, models.EventPatch{Status: &upcoming})
	assert.True(t, utils.IsReason(err, utils.ReasonConflict))

	cancelled := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday"})
	event, err = f.svc.Events.CancelEvent(f.ctx, f.admin, cancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, event.Status)
}

func TestCancelEvent_RequiresCreator(t *testing.T) {
	f := newFixture(t, "bday", "u1")
	id := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday"})

	_, err := f.svc.Events.CancelEvent(f.ctx, f.user("u1"), id)
	assert.True(t, utils.IsReason(err, utils.ReasonForbidden))
	_, err = f.svc.Events.CompleteEvent(f.ctx, f.user("u1"), id)
	assert.True(t, utils.IsReason(err, utils.ReasonForbidden))

	// the creator keeps the right after losing the admin role
	organiser := f.user("admin")
	event, err := f.svc.Events.CancelEvent(f.ctx, organiser, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, event.Status)
}

func TestUpdateEvent(t *testing.T) {
	f := newFixture(t, "bday", "u1")
	id := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday", UPIID: "admin@upi"})

	title := "  New title "
	note := "Bring cards"
	date := "2026-04-01"
	phone := ""
	event, err := f.svc.Events.UpdateEvent(f.ctx, f.admin, id, models.EventPatch{
		Title: &title, Note: &note, Date: &date, Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", event.Title)
	assert.Equal(t, "Bring cards", event.Note)
	assert.Equal(t, "2026-04-01", event.Date)
	assert.Nil(t, event.Phone)
	require.NotNil(t, event.UPIID)
	assert.Equal(t, "admin@upi", *event.UPIID)

	bad := "tomorrow"
	_, err = f.svc.Events.UpdateEvent(f.ctx, f.admin, id, models.EventPatch{Date: &bad})
	assert.True(t, utils.IsReason(err, utils.ReasonValidation))

	_, err = f.svc.Events.UpdateEvent(f.ctx, f.user("u1"), id, models.EventPatch{Title: &title})
	assert.True(t, utils.IsReason(err, utils.ReasonForbidden))

	completed := models.StatusCompleted
	event, err = f.svc.Events.UpdateEvent(f.ctx, f.admin, id, models.EventPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, event.Status)
}

func TestBulkUpdateStatus_AllOrNothing(t *testing.T) {
	f := newFixture(t, "bday", "u1")
	first := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday"})
	second := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday"})
	done := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday"})
	_, err := f.svc.Events.CompleteEvent(f.ctx, f.admin, done)
	require.NoError(t, err)

	_, err = f.svc.Events.BulkUpdateStatus(f.ctx, f.admin, []string{first, second, done}, models.StatusCancelled)
	assert.True(t, utils.IsReason(err, utils.ReasonConflict))

	event, err := f.store.Events().GetByID(f.ctx, first)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpcoming, event.Status)

	updated, err := f.svc.Events.BulkUpdateStatus(f.ctx, f.admin, []string{first, second, first}, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	_, err = f.svc.Events.BulkUpdateStatus(f.ctx, f.user("u1"), []string{first}, models.StatusCancelled)
	assert.True(t, utils.IsReason(err, utils.ReasonForbidden))
}

func TestDeleteEvent_CascadesEverything(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2", "u3")
	id := f.createEvent(models.CreateEventInput{
		BirthdayPersonID: "bday",
		Gifts:            gifts(60000, 40000),
		ExcludedUserIDs:  []string{"u3"},
		FoodOptions:      []string{"Pizza", "Sushi"},
	})
	other := f.createEvent(models.CreateEventInput{BirthdayPersonID: "u1"})

	options, err := f.store.FoodPolls().ListOptions(f.ctx, id)
	require.NoError(t, err)
	require.Len(t, options, 2)
	_, err = f.svc.FoodPolls.Vote(f.ctx, f.user("u1"), id, options[0].ID)
	require.NoError(t, err)

	err = f.svc.Events.DeleteEvent(f.ctx, f.user("u1"), id)
	assert.True(t, utils.IsReason(err, utils.ReasonForbidden))

	require.NoError(t, f.svc.Events.DeleteEvent(f.ctx, f.admin, id))

	_, err = f.store.Events().GetByID(f.ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	remainingGifts, err := f.store.Gifts().ListByEvent(f.ctx, id)
	require.NoError(t, err)
	assert.Empty(t, remainingGifts)
	assert.Empty(t, f.contributions(id))
	exclusions, err := f.store.Exclusions().ListByEvent(f.ctx, id)
	require.NoError(t, err)
	assert.Empty(t, exclusions)
	options, err = f.store.FoodPolls().ListOptions(f.ctx, id)
	require.NoError(t, err)
	assert.Empty(t, options)
	votes, err := f.store.FoodPolls().ListVotes(f.ctx, id)
	require.NoError(t, err)
	assert.Empty(t, votes)

	// the other event is untouched
	assert.Len(t, f.contributions(other), 4)

	err = f.svc.Events.DeleteEvent(f.ctx, f.admin, id)
	assert.True(t, utils.IsReason(err, utils.ReasonNotFound))
}

func TestCloneEvent_CopiesGiftsOnly(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2")
	source := f.createEvent(models.CreateEventInput{
		BirthdayPersonID: "bday",
		Gifts:            gifts(60000, 40000),
		UPIID:            "pay@upi",
	})

	clone, err := f.svc.Events.CloneEvent(f.ctx, f.admin, source, "2027-03-20")
	require.NoError(t, err)
	assert.NotEqual(t, source, clone.ID)
	assert.Equal(t, "2027-03-20", clone.Date)
	assert.Equal(t, models.StatusUpcoming, clone.Status)
	assert.Equal(t, "bday", clone.BirthdayPersonID)
	assert.Equal(t, "admin", clone.CreatedBy)
	require.NotNil(t, clone.UPIID)
	assert.Equal(t, "pay@upi", *clone.UPIID)

	copied, err := f.store.Gifts().ListByEvent(f.ctx, clone.ID)
	require.NoError(t, err)
	require.Len(t, copied, 2)
	assert.Equal(t, int64(100000), copied[0].TotalAmount+copied[1].TotalAmount)
	assert.Empty(t, f.contributions(clone.ID))

	_, err = f.svc.Events.CloneEvent(f.ctx, f.admin, source, "next year")
	assert.True(t, utils.IsReason(err, utils.ReasonValidation))
	_, err = f.svc.Events.CloneEvent(f.ctx, f.admin, "missing", "2027-03-20")
	assert.True(t, utils.IsReason(err, utils.ReasonNotFound))
	_, err = f.svc.Events.CloneEvent(f.ctx, f.user("u1"), source, "2027-03-20")
	assert.True(t, utils.IsReason(err, utils.ReasonForbidden))
}

func TestAddGift(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2")
	id := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday", Gifts: gifts(10000)})

	gift, err := f.svc.Events.AddGift(f.ctx, f.admin, id, models.GiftInput{Name: " Cake ", Amount: 5000})
	require.NoError(t, err)
	assert.Equal(t, "Cake", gift.Name)
	assert.Equal(t, id, gift.EventID)

	all, err := f.store.Gifts().ListByEvent(f.ctx, id)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// shares are not re-split
	for _, c := range f.contributions(id) {
		assert.Equal(t, int64(3333), c.SplitAmount)
	}

	_, err = f.svc.Events.AddGift(f.ctx, f.admin, id, models.GiftInput{Name: "Free", Amount: 0})
	assert.True(t, utils.IsReason(err, utils.ReasonValidation))
	_, err = f.svc.Events.AddGift(f.ctx, f.user("u1"), id, models.GiftInput{Name: "Card", Amount: 100})
	assert.True(t, utils.IsReason(err, utils.ReasonForbidden))

	_, err = f.svc.Events.CompleteEvent(f.ctx, f.admin, id)
	require.NoError(t, err)
	_, err = f.svc.Events.AddGift(f.ctx, f.admin, id, models.GiftInput{Name: "Late", Amount: 100})
	assert.True(t, utils.IsReason(err, utils.ReasonConflict))
}

func TestAmountCeilings(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2")

	_, err := f.svc.Events.CreateEventWithGifts(f.ctx, f.admin, models.CreateEventInput{
		Title: "Huge", Date: "2026-03-20", BirthdayPersonID: "bday",
		Gifts: gifts(6_000_000_000_000_000_000),
	})
	assert.True(t, utils.IsReason(err, utils.ReasonValidation))

	many := make([]int64, 11)
	for i := range many {
		many[i] = utils.MaxGiftAmount
	}
	_, err = f.svc.Events.CreateEventWithGifts(f.ctx, f.admin, models.CreateEventInput{
		Title: "Many", Date: "2026-03-20", BirthdayPersonID: "bday",
		Gifts: gifts(many...),
	})
	assert.True(t, utils.IsReason(err, utils.ReasonValidation))

	events, err := f.store.Events().List(f.ctx, models.EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, events)

	id := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday", Gifts: gifts(many[:10]...)})
	for _, c := range f.contributions(id) {
		assert.Equal(t, int64(500_000_000_000), c.SplitAmount)
	}

	_, err = f.svc.Events.AddGift(f.ctx, f.admin, id, models.GiftInput{Name: "One more", Amount: 1})
	assert.True(t, utils.IsReason(err, utils.ReasonValidation))
	all, err := f.store.Gifts().ListByEvent(f.ctx, id)
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestPaymentContact(t *testing.T) {
	f := newFixture(t, "bday", "u1")
	id := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday"})

	upi := " admin@upi "
	event, err := f.svc.Events.UpdatePaymentContact(f.ctx, f.admin, id, &upi, nil)
	require.NoError(t, err)
	require.NotNil(t, event.UPIID)
	assert.Equal(t, "admin@upi", *event.UPIID)
	assert.Nil(t, event.Phone)

	phone := "+91 98765 43210"
	event, err = f.svc.Events.UpdatePaymentContact(f.ctx, f.admin, id, nil, &phone)
	require.NoError(t, err)
	require.NotNil(t, event.UPIID)
	require.NotNil(t, event.Phone)

	event, err = f.svc.Events.ClearPaymentContact(f.ctx, f.admin, id)
	require.NoError(t, err)
	assert.Nil(t, event.UPIID)
	assert.Nil(t, event.Phone)

	_, err = f.svc.Events.ClearPaymentContact(f.ctx, f.user("u1"), id)
	assert.True(t, utils.IsReason(err, utils.ReasonForbidden))
}

func TestListEventsWithStats(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2")
	first := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday", Date: "2026-03-10"})
	second := f.createEvent(models.CreateEventInput{BirthdayPersonID: "u1", Date: "2026-04-10", Gifts: gifts(1000, 2000)})
	_, err := f.svc.Contributions.MarkPaid(f.ctx, f.user("u1"), first)
	require.NoError(t, err)
	_, err = f.svc.Events.CancelEvent(f.ctx, f.admin, second)
	require.NoError(t, err)

	rows, err := f.svc.Events.ListEventsWithStats(f.ctx, f.admin, models.EventFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second, rows[0].ID)
	assert.Equal(t, "Name u1", rows[0].BirthdayPersonName)
	assert.Equal(t, 2, rows[0].GiftsCount)
	assert.Equal(t, first, rows[1].ID)
	assert.Equal(t, 3, rows[1].TotalContributions)
	assert.Equal(t, 1, rows[1].PaidCount)
	assert.Equal(t, 33, rows[1].CollectionPercentage)

	rows, err = f.svc.Events.ListEventsWithStats(f.ctx, f.admin, models.EventFilter{Status: models.StatusCancelled})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second, rows[0].ID)

	_, err = f.svc.Events.ListEventsWithStats(f.ctx, f.admin, models.EventFilter{Status: "archived"})
	assert.True(t, utils.IsReason(err, utils.ReasonValidation))
	_, err = f.svc.Events.ListEventsWithStats(f.ctx, f.user("u1"), models.EventFilter{})
	assert.True(t, utils.IsReason(err, utils.ReasonForbidden))
}

func TestListUpcomingForUser(t *testing.T) {
	f := newFixture(t, "bday", "u1", "u2")
	later := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday", Date: "2026-05-01"})
	sooner := f.createEvent(models.CreateEventInput{BirthdayPersonID: "u2", Date: "2026-04-01"})
	f.createEvent(models.CreateEventInput{BirthdayPersonID: "u1", Date: "2026-03-15"})
	f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday", Date: "2026-03-25", ExcludedUserIDs: []string{"u1"}})
	done := f.createEvent(models.CreateEventInput{BirthdayPersonID: "u2", Date: "2026-03-05"})
	_, err := f.svc.Events.CompleteEvent(f.ctx, f.admin, done)
	require.NoError(t, err)

	rows, err := f.svc.Events.ListUpcomingForUser(f.ctx, f.user("u1"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, sooner, rows[0].ID)
	assert.Equal(t, later, rows[1].ID)
	assert.Equal(t, "Name u2", rows[0].BirthdayPersonName)
	require.NotNil(t, rows[0].Contribution)
	assert.Equal(t, "u1", rows[0].Contribution.UserID)
	assert.Len(t, rows[0].Gifts, 1)
}

func TestListUserContributions(t *testing.T) {
	f := newFixture(t, "bday", "u1")
	id := f.createEvent(models.CreateEventInput{BirthdayPersonID: "bday", Title: "Cake day"})

	rows, err := f.svc.Events.ListUserContributions(f.ctx, f.user("u1"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].EventID)
	assert.Equal(t, "Cake day", rows[0].EventTitle)
	assert.Equal(t, models.StatusUpcoming, rows[0].EventStatus)

	rows, err = f.svc.Events.ListUserContributions(f.ctx, f.user("bday"))
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = f.svc.Events.ListUserContributions(f.ctx, nil)
	assert.True(t, utils.IsReason(err, utils.ReasonUnauthenticated))
}
