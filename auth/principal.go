// Package auth resolves the caller of a request into a capability that the
// services consult for every authorization decision.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
)

// Principal is the authenticated caller as seen by the services
type Principal interface {
	UserID() string
	IsAdmin() bool
	OwnsEvent(event *models.Event) bool
}

// Capability is the Principal resolved once per request from the users table
type Capability struct {
	userID string
	role   models.Role
}

var _ Principal = Capability{}

func NewCapability(userID string, role models.Role) Capability {
	if !role.Valid() {
		role = models.RoleUser
	}
	return Capability{userID: userID, role: role}
}

func (c Capability) UserID() string { return c.userID }

func (c Capability) IsAdmin() bool { return c.role == models.RoleAdmin }

func (c Capability) OwnsEvent(event *models.Event) bool {
	return event != nil && c.userID != "" && event.CreatedBy == c.userID
}

// Resolve looks up the caller's stored role. A caller without a profile yet
// resolves to a plain user so that they can create one.
func Resolve(ctx context.Context, users repository.UserRepository, userID string) (Capability, error) {
	user, err := users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return NewCapability(userID, models.RoleUser), nil
	}
	if err != nil {
		return Capability{}, fmt.Errorf("resolve principal: %w", err)
	}
	return NewCapability(user.ID, user.Role), nil
}

// CanManageEvent reports whether p is the event's organiser or a system admin
func CanManageEvent(p Principal, event *models.Event) bool {
	return p != nil && (p.IsAdmin() || p.OwnsEvent(event))
}
