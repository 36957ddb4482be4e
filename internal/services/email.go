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

type EmailService interface {
	Add(ctx context.Context, userID int64, in schemas.EmailInput) (*types.Email, error)
	Update(ctx context.Context, emailID int64, in schemas.EmailInput) (*types.Email, error)
	Delete(ctx context.Context, emailID int64) error
}

type emailService struct {
	db        *gorm.DB
	log       *logger.Logger
	emailRepo repos.EmailRepo
}

func NewEmailService(db *gorm.DB, log *logger.Logger, emailRepo repos.EmailRepo) EmailService {
	serviceLog := log.With("service", "EmailService")
	return &emailService{db: db, log: serviceLog, emailRepo: emailRepo}
}

// Add persists a new email under the given user id. The user id is taken
// from the path as-is and is not checked for existence, so an orphaned row
// can be created.
func (es *emailService) Add(ctx context.Context, userID int64, in schemas.EmailInput) (*types.Email, error) {
	email := &types.Email{Email: in.Email, UserID: userID}

	var out *types.Email
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := es.emailRepo.Create(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("create email: %w", err)
		}
		out = created
		return nil
	}); err != nil {
		es.log.Warn("Add email failed", "user_id", userID, "error", err)
		return nil, err
	}
	return out, nil
}

// Update looks the row up by its own id only; ownership is not re-checked
// against the path's user id.
func (es *emailService) Update(ctx context.Context, emailID int64, in schemas.EmailInput) (*types.Email, error) {
	var out *types.Email
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := es.emailRepo.GetByID(ctx, tx, emailID)
		if err != nil {
			return err
		}
		if err := es.emailRepo.UpdateAddress(ctx, tx, emailID, in.Email); err != nil {
			return fmt.Errorf("update email: %w", err)
		}
		existing.Email = in.Email
		out = existing
		return nil
	}); err != nil {
		es.log.Warn("Update email failed", "email_id", emailID, "error", err)
		return nil, err
	}
	return out, nil
}

func (es *emailService) Delete(ctx context.Context, emailID int64) error {
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := es.emailRepo.GetByID(ctx, tx, emailID); err != nil {
			return err
		}
		return es.emailRepo.Delete(ctx, tx, emailID)
	}); err != nil {
		es.log.Warn("Delete email failed", "email_id", emailID, "error", err)
		return err
	}
	return nil
}
