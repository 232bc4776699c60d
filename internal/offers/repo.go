package offers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
)

// Repository encapsulates offer persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an offer repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns offers that are enabled and inside their window at the
// given instant, oldest first so tie-breaking stays stable across calls.
func (r *Repository) ListActive(ctx context.Context, now time.Time) ([]models.Offer, error) {
	var rows []models.Offer
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
