// services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

const maxBirthdayWindowDays = 366

// UserService handles profiles and admin user management
type UserService struct {
	base
}

// UpsertProfile creates the caller's profile on first login or updates it.
// The stored role is never changed here.
func (s *UserService) UpsertProfile(ctx context.Context, p auth.Principal, in models.ProfileInput) (*models.User, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(in.Name, "name"); err != nil {
		return nil, err
	}
	birthday, err := normalizeBirthday(in.Birthday)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		existing, err := tx.Users().GetByID(ctx, p.UserID())
		switch {
		case errors.Is(err, repository.ErrNotFound):
			user = &models.User{
				ID:        p.UserID(),
				Name:      strings.TrimSpace(in.Name),
				Birthday:  birthday,
				UPIID:     utils.TrimPtr(in.UPIID),
				Phone:     utils.TrimPtr(in.Phone),
				Role:      models.RoleUser,
				CreatedAt: s.now(),
			}
			return storageError("insert user", tx.Users().Create(ctx, user))
		case err != nil:
			return storageError("get user", err)
		}

		existing.Name = strings.TrimSpace(in.Name)
		existing.Birthday = birthday
		existing.UPIID = utils.TrimPtr(in.UPIID)
		existing.Phone = utils.TrimPtr(in.Phone)
		user = existing
		return notFoundOr(utils.ResourceUser, "update user", tx.Users().Update(ctx, existing))
	})
	if err != nil {
		s.logFailure("upsert profile", err, "user_id", p.UserID())
		return nil, storageError("upsert profile", err)
	}

	s.log.Info("profile saved", "user_id", user.ID)
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, p auth.Principal) (*models.User, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	user, err := s.store.Users().GetByID(ctx, p.UserID())
	if err != nil {
		return nil, notFoundOr(utils.ResourceUser, "get user", err)
	}
	return user, nil
}

// UpdateUser edits a user. Users may edit themselves; role changes are admin only.
func (s *UserService) UpdateUser(ctx context.Context, p auth.Principal, userID string, patch models.UserPatch) (*models.User, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	if !p.IsAdmin() && p.UserID() != userID {
		return nil, utils.NewForbiddenError(utils.ErrAdminOnly)
	}
	if patch.Role != nil {
		if !p.IsAdmin() {
			return nil, utils.NewForbiddenError(utils.ErrAdminOnly)
		}
		if !patch.Role.Valid() {
			return nil, utils.NewValidationError(fmt.Sprintf("unknown role %q", *patch.Role))
		}
	}
	if patch.Name != nil {
		if err := utils.ValidateRequired(*patch.Name, "name"); err != nil {
			return nil, err
		}
	}
	birthday, err := normalizeBirthday(patch.Birthday)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		user, err = tx.Users().GetByID(ctx, userID)
		if err != nil {
			return notFoundOr(utils.ResourceUser, "get user", err)
		}
		if patch.Name != nil {
			user.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Birthday != nil {
			user.Birthday = birthday
		}
		if patch.UPIID != nil {
			user.UPIID = utils.TrimPtr(patch.UPIID)
		}
		if patch.Phone != nil {
			user.Phone = utils.TrimPtr(patch.Phone)
		}
		if patch.Role != nil {
			user.Role = *patch.Role
		}
		return notFoundOr(utils.ResourceUser, "update user", tx.Users().Update(ctx, user))
	})
	if err != nil {
		s.logFailure("update user", err, "user_id", userID)
		return nil, storageError("update user", err)
	}

	s.log.Info("user updated", "user_id", userID, "role", user.Role, "by", p.UserID())
	return user, nil
}

// CreateUser adds a user on an admin's behalf with a generated id
func (s *UserService) CreateUser(ctx context.Context, p auth.Principal, req models.CreateUserRequest) (*models.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(req.Name, "name"); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}
	birthday, err := normalizeBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        utils.GenerateUserID(),
		Name:      strings.TrimSpace(req.Name),
		Birthday:  birthday,
		UPIID:     utils.TrimPtr(req.UPIID),
		Phone:     utils.TrimPtr(req.Phone),
		Role:      role,
		CreatedAt: s.now(),
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		err = storageError("insert user", err)
		s.logFailure("create user", err)
		return nil, err
	}

	s.log.Info("user created", "user_id", user.ID, "role", user.Role, "by", p.UserID())
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, p auth.Principal) ([]models.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, storageError("list users", err)
	}
	return users, nil
}

// DeleteUser removes a user with their contributions, exclusions and votes.
// Events they organise or celebrate are kept.
func (s *UserService) DeleteUser(ctx context.Context, p auth.Principal, userID string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if userID == p.UserID() {
		return utils.NewValidationError("You cannot delete your own account")
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			return notFoundOr(utils.ResourceUser, "get user", err)
		}
		if err := tx.FoodPolls().DeleteVotesByUser(ctx, userID); err != nil {
			return storageError("delete votes", err)
		}
		if err := tx.Exclusions().DeleteByUser(ctx, userID); err != nil {
			return storageError("delete exclusions", err)
		}
		if err := tx.Contributions().DeleteByUser(ctx, userID); err != nil {
			return storageError("delete contributions", err)
		}
		return notFoundOr(utils.ResourceUser, "delete user", tx.Users().Delete(ctx, userID))
	})
	if err != nil {
		s.logFailure("delete user", err, "user_id", userID)
		return storageError("delete user", err)
	}

	s.log.Info("user deleted", "user_id", userID, "by", p.UserID())
	return nil
}

// UpcomingBirthdays lists users whose next birthday is at most days away, soonest first
func (s *UserService) UpcomingBirthdays(ctx context.Context, p auth.Principal, days int) ([]models.UpcomingBirthday, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = utils.DefaultBirthdayWindowDays
	}
	if days > maxBirthdayWindowDays {
		return nil, utils.NewValidationError(fmt.Sprintf("days cannot exceed %d", maxBirthdayWindowDays))
	}

	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, storageError("list users", err)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	result := []models.UpcomingBirthday{}
	for _, u := range users {
		if u.Birthday == nil {
			continue
		}
		next, ok := nextBirthday(*u.Birthday, today)
		if !ok {
			continue
		}
		daysLeft := int(next.Sub(today).Hours() / 24)
		if daysLeft > days {
			continue
		}
		result = append(result, models.UpcomingBirthday{
			UserID:   u.ID,
			Name:     u.Name,
			Birthday: *u.Birthday,
			NextDate: next.Format(utils.DateLayout),
			DaysLeft: daysLeft,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].DaysLeft != result[j].DaysLeft {
			return result[i].DaysLeft < result[j].DaysLeft
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// nextBirthday returns the first anniversary of birthday on or after today.
// A 29 February birthday falls on 1 March in common years.
func nextBirthday(birthday string, today time.Time) (time.Time, bool) {
	born, err := time.Parse(utils.DateLayout, birthday)
	if err != nil {
		return time.Time{}, false
	}
	next := time.Date(today.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next, true
}

// normalizeBirthday trims an optional birthday and checks its format
func normalizeBirthday(value *string) (*string, error) {
	birthday := utils.TrimPtr(value)
	if birthday == nil {
		return nil, nil
	}
	if err := utils.ValidateDate(*birthday, "birthday"); err != nil {
		return nil, err
	}
	return birthday, nil
}
