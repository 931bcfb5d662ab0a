package models

// GiftRequest is a gift as submitted by the create-event form.
// EstimatedCost is in major units; Amount (subunits) wins when both are set.
type GiftRequest struct {
	Name          string  `json:"name" binding:"required"`
	Link          string  `json:"link"`
	EstimatedCost float64 `json:"estimatedCost" binding:"min=0"`
	Amount        int64   `json:"amount" binding:"min=0"`
}

// CreateEventRequest request model
type CreateEventRequest struct {
	Title            string        `json:"title" binding:"required"`
	Date             string        `json:"date" binding:"required"`
	BirthdayPersonID string        `json:"birthdayPersonId" binding:"required"`
	Gifts            []GiftRequest `json:"gifts" binding:"required,min=1,dive"`
	UPIID            string        `json:"upiId"`
	PhoneNumber      string        `json:"phoneNumber"`
	ParticipantIDs   []string      `json:"participantIds"`
	ExcludedUserIDs  []string      `json:"excludedUserIds"`
	FoodOptions      []string      `json:"foodOptions"`
}

// CloneEventRequest request model
type CloneEventRequest struct {
	Date string `json:"date" binding:"required"`
}

// BulkStatusRequest request model
type BulkStatusRequest struct {
	EventIDs []string    `json:"eventIds" binding:"required,min=1"`
	Status   EventStatus `json:"status" binding:"required"`
}

// PaymentContactRequest request model
type PaymentContactRequest struct {
	UPIID *string `json:"upi_id"`
	Phone *string `json:"phone"`
}

// ExcludeUserRequest request model
type ExcludeUserRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// FoodOptionRequest request model
type FoodOptionRequest struct {
	Title string `json:"title" binding:"required"`
}

// GiftInput is a gift with its cost already converted to subunits
type GiftInput struct {
	Name   string
	Link   string
	Amount int64
}

// CreateEventInput is the ledger-side form of CreateEventRequest
type CreateEventInput struct {
	Title            string
	Date             string
	BirthdayPersonID string
	Gifts            []GiftInput
	UPIID            string
	Phone            string
	ParticipantIDs   []string
	ExcludedUserIDs  []string
	FoodOptions      []string
}

// EventPatch holds the optional fields of an event update
type EventPatch struct {
	Title  *string      `json:"title"`
	Date   *string      `json:"date"`
	Note   *string      `json:"note"`
	UPIID  *string      `json:"upi_id"`
	Phone  *string      `json:"phone"`
	Status *EventStatus `json:"status"`
}

// ContributionPatch holds the optional fields of a contribution update
type ContributionPatch struct {
	SplitAmount *int64 `json:"split_amount"`
	Paid        *bool  `json:"paid"`
}

// ProfileInput is the self-service profile form
type ProfileInput struct {
	Name     string  `json:"name"`
	Birthday *string `json:"birthday"`
	UPIID    *string `json:"upi_id"`
	Phone    *string `json:"phone"`
}

// CreateUserRequest request model
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required"`
	Birthday *string `json:"birthday"`
	UPIID    *string `json:"upi_id"`
	Phone    *string `json:"phone"`
	Role     Role    `json:"role"`
}

// UserPatch holds the optional fields of a user update
type UserPatch struct {
	Name     *string `json:"name"`
	Birthday *string `json:"birthday"`
	UPIID    *string `json:"upi_id"`
	Phone    *string `json:"phone"`
	Role     *Role   `json:"role"`
}
