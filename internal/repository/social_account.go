package repository

import (
	"context"
	"errors"

	"crosspost/internal/models"

	"gorm.io/gorm"
)

// SocialAccountRepository defines persistence operations for social accounts.
// All lookups are scoped by owning user id.
type SocialAccountRepository interface {
	Create(ctx context.Context, account *models.SocialAccount) error
	ListByUser(ctx context.Context, userID uint) ([]models.SocialAccount, error)
	GetByID(ctx context.Context, id, userID uint) (*models.SocialAccount, error)
	// GetActiveByPlatform reports whether the user already holds an active
	// account for the platform. Returns (nil, nil) when none exists.
	GetActiveByPlatform(ctx context.Context, userID uint, platform string) (*models.SocialAccount, error)
	// FirstActive returns the user's first active account regardless of
	// platform, or (nil, nil) when the user has none. Publishing uses
	// whichever account this yields.
	FirstActive(ctx context.Context, userID uint) (*models.SocialAccount, error)
	Delete(ctx context.Context, id, userID uint) error
}

type socialAccountRepository struct {
	db *gorm.DB
}

// NewSocialAccountRepository returns a new SocialAccountRepository implementation.
func NewSocialAccountRepository(db *gorm.DB) SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

func (r *socialAccountRepository) Create(ctx context.Context, account *models.SocialAccount) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialAccountRepository) ListByUser(ctx context.Context, userID uint) ([]models.SocialAccount, error) {
	var accounts []models.SocialAccount
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return accounts, nil
}

func (r *socialAccountRepository) GetByID(ctx context.Context, id, userID uint) (*models.SocialAccount, error) {
	var account models.SocialAccount
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Social account", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *socialAccountRepository) GetActiveByPlatform(ctx context.Context, userID uint, platform string) (*models.SocialAccount, error) {
	var account models.SocialAccount
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ? AND active = ?", userID, platform, true).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *socialAccountRepository) FirstActive(ctx context.Context, userID uint) (*models.SocialAccount, error) {
	var account models.SocialAccount
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("id").
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *socialAccountRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SocialAccount{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Social account", id)
	}
	return nil
}
