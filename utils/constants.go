package utils

const (
	// Date layout for event dates and birthdays
	DateLayout = "2006-01-02"

	// Resource names used in not-found messages
	ResourceEvent        = "Event"
	ResourceUser         = "User"
	ResourceContribution = "Contribution"
	ResourceFoodOption   = "Food option"
	ResourceExclusion    = "Exclusion"

	// HTTP status messages
	ErrInvalidRequest     = "Invalid request"
	ErrNotAuthenticated   = "Not authenticated"
	ErrAdminOnly          = "Only admins can perform this action"
	ErrOrganizerOnly      = "Only the event creator can perform this action"
	ErrEventFinalized     = "Event is finalized; contributions are frozen"
	ErrNoParticipants     = "At least one user must participate in cost splitting"
	ErrPollClosed         = "Voting is disabled for this event"
	ErrUnpayOrganizerOnly = "Only the event creator can clear a payment"
	ErrGiftTooLarge       = "Gift cost exceeds the maximum allowed amount"
	ErrTotalTooLarge      = "Event total exceeds the maximum allowed amount"

	// Subunits per major currency unit (paise per rupee)
	SubunitsPerUnit = 100

	// Amount ceilings in subunits
	MaxGiftAmount int64 = 100_000_000_000
	MaxEventTotal int64 = 1_000_000_000_000

	// Upcoming birthday lookahead when the caller gives none
	DefaultBirthdayWindowDays = 30
)
