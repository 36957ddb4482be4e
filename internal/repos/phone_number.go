package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/perdb/perdir-backend/internal/logger"
	"github.com/perdb/perdir-backend/internal/types"
)

type PhoneNumberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, phone *types.PhoneNumber) (*types.PhoneNumber, error)
	GetByID(ctx context.Context, tx *gorm.DB, phoneID int64) (*types.PhoneNumber, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.PhoneNumber, error)
	UpdateNumber(ctx context.Context, tx *gorm.DB, phoneID int64, number string) error
	Delete(ctx context.Context, tx *gorm.DB, phoneID int64) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID int64) error
}

type phoneNumberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhoneNumberRepo(db *gorm.DB, baseLog *logger.Logger) PhoneNumberRepo {
	repoLog := baseLog.With("repo", "PhoneNumberRepo")
	return &phoneNumberRepo{db: db, log: repoLog}
}

func (pr *phoneNumberRepo) Create(ctx context.Context, tx *gorm.DB, phone *types.PhoneNumber) (*types.PhoneNumber, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Create(phone).Error; err != nil {
		return nil, err
	}
	return phone, nil
}

func (pr *phoneNumberRepo) GetByID(ctx context.Context, tx *gorm.DB, phoneID int64) (*types.PhoneNumber, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.PhoneNumber
	if err := transaction.WithContext(ctx).
		First(&result, "id = ?", phoneID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *phoneNumberRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID int64) ([]*types.PhoneNumber, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.PhoneNumber{}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *phoneNumberRepo) UpdateNumber(ctx context.Context, tx *gorm.DB, phoneID int64, number string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.PhoneNumber{}).
		Where("id = ?", phoneID).
		Update("number", number).Error
}

func (pr *phoneNumberRepo) Delete(ctx context.Context, tx *gorm.DB, phoneID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Delete(&types.PhoneNumber{}, "id = ?", phoneID).Error
}

func (pr *phoneNumberRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.PhoneNumber{}).Error
}
