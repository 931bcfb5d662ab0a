package models

// ContributionSummary aggregates a set of contributions. Amounts are subunits.
type ContributionSummary struct {
	TotalAmount          int64 `json:"total_amount"`
	TotalCollected       int64 `json:"total_collected"`
	TotalPending         int64 `json:"total_pending"`
	ContributionsCount   int   `json:"contributions_count"`
	PaidCount            int   `json:"paid_count"`
	CollectionPercentage int   `json:"collection_percentage"`
}

// EventWithStats is an admin listing row
type EventWithStats struct {
	Event
	BirthdayPersonName   string `json:"birthday_person_name"`
	TotalContributions   int    `json:"total_contributions"`
	PaidCount            int    `json:"paid_count"`
	TotalCollected       int64  `json:"total_collected"`
	TotalPending         int64  `json:"total_pending"`
	GiftsCount           int    `json:"gifts_count"`
	CollectionPercentage int    `json:"collection_percentage"`
}

// ContributionWithUser joins a contribution with the contributor's name
type ContributionWithUser struct {
	Contribution
	UserName string  `json:"user_name"`
	UserUPI  *string `json:"user_upi_id"`
}

// GiftShare is the per-gift view of what each participant funds
type GiftShare struct {
	GiftID         string `json:"gift_id"`
	GiftName       string `json:"gift_name"`
	TotalAmount    int64  `json:"total_amount"`
	PerParticipant int64  `json:"per_participant"`
	Participants   int    `json:"participants"`
}

// EventDetail is the full view of one event
type EventDetail struct {
	Event              Event                  `json:"event"`
	BirthdayPersonName string                 `json:"birthday_person_name"`
	Gifts              []Gift                 `json:"gifts"`
	Contributions      []ContributionWithUser `json:"contributions"`
	Summary            ContributionSummary    `json:"summary"`
	GiftBreakdown      []GiftShare            `json:"gift_breakdown"`
}

// UserEvent is an upcoming event as seen from a participant's dashboard
type UserEvent struct {
	Event
	BirthdayPersonName string        `json:"birthday_person_name"`
	Gifts              []Gift        `json:"gifts"`
	Contribution       *Contribution `json:"contribution"`
}

// UserContribution is one history row of a participant
type UserContribution struct {
	Contribution
	EventTitle  string      `json:"event_title"`
	EventDate   string      `json:"event_date"`
	EventStatus EventStatus `json:"event_status"`
}

// AdminContributionRow is one row in the admin contributions table
type AdminContributionRow struct {
	Contribution
	UserName   string `json:"user_name"`
	EventTitle string `json:"event_title"`
	EventDate  string `json:"event_date"`
	GiftNames  string `json:"gift_names"`
}

// ExclusionWithUser joins an exclusion with the excluded user's name
type ExclusionWithUser struct {
	EventExclusion
	UserName string `json:"user_name"`
}

// DashboardStats is the system-wide rollup for the admin dashboard
type DashboardStats struct {
	TotalEvents          int   `json:"total_events"`
	UpcomingEvents       int   `json:"upcoming_events"`
	CompletedEvents      int   `json:"completed_events"`
	CancelledEvents      int   `json:"cancelled_events"`
	TotalCollected       int64 `json:"total_collected"`
	TotalPending         int64 `json:"total_pending"`
	TotalContributions   int   `json:"total_contributions"`
	PaidContributions    int   `json:"paid_contributions"`
	UniqueMembers        int   `json:"unique_members"`
	CollectionPercentage int   `json:"collection_percentage"`
	ParticipationRate    int   `json:"participation_rate"`
}

// FoodOptionResult is one option of a food poll with its voters
type FoodOptionResult struct {
	FoodOption
	Votes  int      `json:"votes"`
	Voters []string `json:"voters"`
}

// FoodPollResult is the tally of an event's food poll
type FoodPollResult struct {
	EventID  string             `json:"event_id"`
	Options  []FoodOptionResult `json:"options"`
	Winners  []string           `json:"winners"`
	UserVote *string            `json:"user_vote"`
	Open     bool               `json:"open"`
}

// UpcomingBirthday is a user whose birthday falls in the lookahead window
type UpcomingBirthday struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
	NextDate string `json:"next_date"`
	DaysLeft int    `json:"days_left"`
}

// CreateEventResult is returned after an event is created with its split
type CreateEventResult struct {
	EventID           string `json:"event_id"`
	GiftsCount        int    `json:"gifts_count"`
	ParticipantsCount int    `json:"participants_count"`
	TotalAmount       int64  `json:"total_amount"`
	PerPerson         int64  `json:"per_person"`
	Message           string `json:"message"`
}
