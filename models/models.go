// models/models.go
package models

import "time"

// Role is the system-wide role claim stored on a user row
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// EventStatus is the lifecycle state of an event
type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s EventStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s
func (s EventStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// User is a team member. IDs are issued by the identity provider.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Birthday  *string   `json:"birthday"`
	UPIID     *string   `json:"upi_id"`
	Phone     *string   `json:"phone"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the stored role is admin
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Event is a single birthday celebration
type Event struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Date             string      `json:"date"`
	Status           EventStatus `json:"status"`
	BirthdayPersonID string      `json:"birthday_person_id"`
	CreatedBy        string      `json:"created_by"`
	Note             string      `json:"note"`
	UPIID            *string     `json:"upi_id"`
	Phone            *string     `json:"phone"`
	CreatedAt        time.Time   `json:"created_at"`
}

// Gift is a purchasable item funded by the event's participants
type Gift struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"gift_name"`
	Link        string    `json:"gift_link"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// Contribution is one participant's share of an event.
// GiftID is nil when the share pools every gift of the event.
type Contribution struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	UserID      string     `json:"user_id"`
	GiftID      *string    `json:"gift_id"`
	SplitAmount int64      `json:"split_amount"`
	Paid        bool       `json:"paid"`
	PaymentTime *time.Time `json:"payment_time"`
	CreatedAt   time.Time  `json:"created_at"`
}

// EventExclusion removes a user from an event's split
type EventExclusion struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	ExcludedUserID string    `json:"excluded_user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// FoodOption is one choice in an event's food poll
type FoodOption struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// FoodVote records a user's single vote in an event's food poll
type FoodVote struct {
	EventID      string    `json:"event_id"`
	FoodOptionID string    `json:"food_option_id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// EventFilter narrows event listings
type EventFilter struct {
	Status EventStatus
}
