package services

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/perdb/perdir-backend/internal/logger"
	"github.com/perdb/perdir-backend/internal/repos"
	"github.com/perdb/perdir-backend/internal/schemas"
	"github.com/perdb/perdir-backend/internal/types"
)

type UserService interface {
	Create(ctx context.Context, in schemas.UserInput) (*types.User, error)
	GetByID(ctx context.Context, userID int64) (*types.User, error)
	List(ctx context.Context, filters map[string]string) ([]*types.User, error)
	Replace(ctx context.Context, userID int64, in schemas.UserInput) (*types.User, error)
	Delete(ctx context.Context, userID int64) error
}

type userService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	emailRepo repos.EmailRepo
	phoneRepo repos.PhoneNumberRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, emailRepo repos.EmailRepo, phoneRepo repos.PhoneNumberRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:        db,
		log:       serviceLog,
		userRepo:  userRepo,
		emailRepo: emailRepo,
		phoneRepo: phoneRepo,
	}
}

// Filterable query keys, wire name to column name. Anything else is rejected
// rather than ignored.
var userFilterColumns = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
}

// Create persists the user and one child row per submitted entry in a single
// transaction. Submitted child ids are ignored; the store assigns new ones.
func (us *userService) Create(ctx context.Context, in schemas.UserInput) (*types.User, error) {
	user := buildUser(in)

	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := us.userRepo.Create(ctx, tx, user)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		out = created
		return nil
	}); err != nil {
		us.log.Warn("Create user failed", "error", err)
		return nil, err
	}
	return out, nil
}

func (us *userService) GetByID(ctx context.Context, userID int64) (*types.User, error) {
	return us.userRepo.GetByID(ctx, nil, userID)
}

func (us *userService) List(ctx context.Context, filters map[string]string) ([]*types.User, error) {
	mapped := make(map[string]any, len(filters))
	for key, value := range filters {
		column, ok := userFilterColumns[key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, key)
		}
		if column == "id" {
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: id must be numeric", ErrInvalidFilter)
			}
			mapped[column] = id
			continue
		}
		mapped[column] = value
	}
	return us.userRepo.List(ctx, nil, mapped)
}

// Replace swaps the user's entire child set for the submitted one: every
// currently owned email and phone number is deleted, the name fields are
// overwritten, and fresh child rows are inserted, all in one transaction.
// Previously issued child ids never survive a replace. Two concurrent
// replaces of the same user serialize arbitrarily; the last commit wins.
func (us *userService) Replace(ctx context.Context, userID int64, in schemas.UserInput) (*types.User, error) {
	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := us.userRepo.GetByID(ctx, tx, userID); err != nil {
			return err
		}
		if err := us.emailRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete emails: %w", err)
		}
		if err := us.phoneRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete phone numbers: %w", err)
		}
		if err := us.userRepo.UpdateName(ctx, tx, userID, in.FirstName, in.LastName); err != nil {
			return fmt.Errorf("update name: %w", err)
		}
		for _, e := range *in.Emails {
			if _, err := us.emailRepo.Create(ctx, tx, &types.Email{Email: e.Email, UserID: userID}); err != nil {
				return fmt.Errorf("insert email: %w", err)
			}
		}
		for _, p := range *in.PhoneNumbers {
			if _, err := us.phoneRepo.Create(ctx, tx, &types.PhoneNumber{Number: p.Number, UserID: userID}); err != nil {
				return fmt.Errorf("insert phone number: %w", err)
			}
		}
		reloaded, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		out = reloaded
		return nil
	}); err != nil {
		us.log.Warn("Replace user failed", "user_id", userID, "error", err)
		return nil, err
	}
	return out, nil
}

// Delete removes the user and every owned child row in one transaction. The
// cascade is issued explicitly here rather than left to a store-level hook.
func (us *userService) Delete(ctx context.Context, userID int64) error {
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := us.userRepo.GetByID(ctx, tx, userID); err != nil {
			return err
		}
		if err := us.emailRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete emails: %w", err)
		}
		if err := us.phoneRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete phone numbers: %w", err)
		}
		if err := us.userRepo.Delete(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	}); err != nil {
		us.log.Warn("Delete user failed", "user_id", userID, "error", err)
		return err
	}
	return nil
}

// buildUser copies only the value fields out of the validated input. Any ids
// present in the payload are dropped.
func buildUser(in schemas.UserInput) *types.User {
	emails := make([]types.Email, 0, len(*in.Emails))
	for _, e := range *in.Emails {
		emails = append(emails, types.Email{Email: e.Email})
	}
	phones := make([]types.PhoneNumber, 0, len(*in.PhoneNumbers))
	for _, p := range *in.PhoneNumbers {
		phones = append(phones, types.PhoneNumber{Number: p.Number})
	}
	return &types.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Emails:       emails,
		PhoneNumbers: phones,
	}
}
