package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

// PasswordResetRepository persists single-use reset tokens.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
	GetByToken(ctx context.Context, token string) (models.PasswordReset, error)
	MarkUsed(ctx context.Context, id uint, usedAt time.Time) error
	InvalidateForUser(ctx context.Context, userID uint) error
}

type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository constructs the reset token repository.
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *models.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

func (r *passwordResetRepository) GetByToken(ctx context.Context, token string) (models.PasswordReset, error) {
	var reset models.PasswordReset
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&reset).Error; err != nil {
		return models.PasswordReset{}, err
	}
	return reset, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id uint, usedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.PasswordReset{}).
		Where("id = ?", id).
		Update("used_at", usedAt).Error
}

// InvalidateForUser expires any outstanding tokens before issuing a new one.
func (r *passwordResetRepository) InvalidateForUser(ctx context.Context, userID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.PasswordReset{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Update("used_at", now).Error
}
