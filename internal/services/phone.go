package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/perdb/perdir-backend/internal/logger"
	"github.com/perdb/perdir-backend/internal/repos"
	"github.com/perdb/perdir-backend/internal/schemas"
	"github.com/perdb/perdir-backend/internal/types"
)

type PhoneService interface {
	Add(ctx context.Context, userID int64, in schemas.PhoneInput) (*types.PhoneNumber, error)
	ListByUserID(ctx context.Context, userID int64) ([]*types.PhoneNumber, error)
	Update(ctx context.Context, phoneID int64, in schemas.PhoneInput) (*types.PhoneNumber, error)
	Delete(ctx context.Context, phoneID int64) error
}

type phoneService struct {
	db        *gorm.DB
	log       *logger.Logger
	phoneRepo repos.PhoneNumberRepo
}

func NewPhoneService(db *gorm.DB, log *logger.Logger, phoneRepo repos.PhoneNumberRepo) PhoneService {
	serviceLog := log.With("service", "PhoneService")
	return &phoneService{db: db, log: serviceLog, phoneRepo: phoneRepo}
}

// Add persists a new phone number under the given user id. As with emails,
// the user id is not checked for existence.
func (ps *phoneService) Add(ctx context.Context, userID int64, in schemas.PhoneInput) (*types.PhoneNumber, error) {
	phone := &types.PhoneNumber{Number: in.Number, UserID: userID}

	var out *types.PhoneNumber
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := ps.phoneRepo.Create(ctx, tx, phone)
		if err != nil {
			return fmt.Errorf("create phone number: %w", err)
		}
		out = created
		return nil
	}); err != nil {
		ps.log.Warn("Add phone number failed", "user_id", userID, "error", err)
		return nil, err
	}
	return out, nil
}

// ListByUserID returns every phone number owned by the user id. An unknown
// user id yields an empty list, not a failure.
func (ps *phoneService) ListByUserID(ctx context.Context, userID int64) ([]*types.PhoneNumber, error) {
	return ps.phoneRepo.ListByUserID(ctx, nil, userID)
}

// Update looks the row up by its own id only; ownership is not re-checked
// against the path's user id.
func (ps *phoneService) Update(ctx context.Context, phoneID int64, in schemas.PhoneInput) (*types.PhoneNumber, error) {
	var out *types.PhoneNumber
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ps.phoneRepo.GetByID(ctx, tx, phoneID)
		if err != nil {
			return err
		}
		if err := ps.phoneRepo.UpdateNumber(ctx, tx, phoneID, in.Number); err != nil {
			return fmt.Errorf("update phone number: %w", err)
		}
		existing.Number = in.Number
		out = existing
		return nil
	}); err != nil {
		ps.log.Warn("Update phone number failed", "phone_id", phoneID, "error", err)
		return nil, err
	}
	return out, nil
}

func (ps *phoneService) Delete(ctx context.Context, phoneID int64) error {
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.phoneRepo.GetByID(ctx, tx, phoneID); err != nil {
			return err
		}
		return ps.phoneRepo.Delete(ctx, tx, phoneID)
	}); err != nil {
		ps.log.Warn("Delete phone number failed", "phone_id", phoneID, "error", err)
		return err
	}
	return nil
}
