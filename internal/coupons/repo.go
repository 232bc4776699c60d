package coupons

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
)

// Repository exposes persistence helpers for coupons.
type Repository interface {
	FindActiveByCode(ctx context.Context, code string, now time.Time) (*models.Coupon, error)
	IncrementUsage(ctx context.Context, code string) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a coupon repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// FindActiveByCode looks up an enabled coupon by its uppercased code whose
// window contains the given instant. Returns gorm.ErrRecordNotFound when no
// such coupon exists.
func (r *repositoryImpl) FindActiveByCode(ctx context.Context, code string, now time.Time) (*models.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	var coupon models.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ? AND start_date <= ? AND end_date >= ?", normalized, true, now, now).
		First(&coupon).
		Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// IncrementUsage bumps used_count for a redeemed coupon. Called when an order
// is placed, not at apply time.
func (r *repositoryImpl) IncrementUsage(ctx context.Context, code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	return r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("code = ?", normalized).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).
		Error
}
