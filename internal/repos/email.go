package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/perdb/perdir-backend/internal/logger"
	"github.com/perdb/perdir-backend/internal/types"
)

type EmailRepo interface {
	Create(ctx context.Context, tx *gorm.DB, email *types.Email) (*types.Email, error)
	GetByID(ctx context.Context, tx *gorm.DB, emailID int64) (*types.Email, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.Email, error)
	UpdateAddress(ctx context.Context, tx *gorm.DB, emailID int64, address string) error
	Delete(ctx context.Context, tx *gorm.DB, emailID int64) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID int64) error
}

type emailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmailRepo(db *gorm.DB, baseLog *logger.Logger) EmailRepo {
	repoLog := baseLog.With("repo", "EmailRepo")
	return &emailRepo{db: db, log: repoLog}
}

func (er *emailRepo) Create(ctx context.Context, tx *gorm.DB, email *types.Email) (*types.Email, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if err := transaction.WithContext(ctx).Create(email).Error; err != nil {
		return nil, err
	}
	return email, nil
}

func (er *emailRepo) GetByID(ctx context.Context, tx *gorm.DB, emailID int64) (*types.Email, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.Email
	if err := transaction.WithContext(ctx).
		First(&result, "id = ?", emailID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *emailRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.Email, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	results := []*types.Email{}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *emailRepo) UpdateAddress(ctx context.Context, tx *gorm.DB, emailID int64, address string) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Email{}).
		Where("id = ?", emailID).
		Update("email", address).Error
}

func (er *emailRepo) Delete(ctx context.Context, tx *gorm.DB, emailID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	return transaction.WithContext(ctx).
		Delete(&types.Email{}, "id = ?", emailID).Error
}

func (er *emailRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Email{}).Error
}
