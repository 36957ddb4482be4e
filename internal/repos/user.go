package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/perdb/perdir-backend/internal/logger"
	"github.com/perdb/perdir-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID int64) (*types.User, error)
	List(ctx context.Context, tx *gorm.DB, filters map[string]any) ([]*types.User, error)
	UpdateName(ctx context.Context, tx *gorm.DB, userID int64, firstName, lastName string) error
	Delete(ctx context.Context, tx *gorm.DB, userID int64) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

// Create inserts the user row and one row per attached child in a single
// statement batch. Child ids are populated on return.
func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if err := transaction.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID int64) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	if err := withChildren(transaction.WithContext(ctx)).
		First(&result, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	normalizeChildren(&result)
	return &result, nil
}

func (ur *userRepo) List(ctx context.Context, tx *gorm.DB, filters map[string]any) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	query := withChildren(transaction.WithContext(ctx)).Order("id ASC")
	if len(filters) > 0 {
		query = query.Where(filters)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	for _, u := range results {
		normalizeChildren(u)
	}
	return results, nil
}

func (ur *userRepo) UpdateName(ctx context.Context, tx *gorm.DB, userID int64, firstName, lastName string) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"first_name": firstName, "last_name": lastName}).Error
}

func (ur *userRepo) Delete(ctx context.Context, tx *gorm.DB, userID int64) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Delete(&types.User{}, "id = ?", userID).Error
}

// withChildren preloads both owned collections in insertion order.
func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Emails", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("PhoneNumbers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

// normalizeChildren keeps empty collections serializing as [] rather than null.
func normalizeChildren(u *types.User) {
	if u.Emails == nil {
		u.Emails = []types.Email{}
	}
	if u.PhoneNumbers == nil {
		u.PhoneNumbers = []types.PhoneNumber{}
	}
}
