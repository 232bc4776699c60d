package content

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
)

// Repository reads marketing content. The storefront never writes these
// tables; they are managed out of band.
type Repository interface {
	ListActiveHeroSlides(ctx context.Context, now time.Time) ([]models.HeroSlide, error)
	ListActiveAnnouncements(ctx context.Context, now time.Time) ([]models.Announcement, error)
	ListActiveEditorialTiles(ctx context.Context) ([]models.EditorialTile, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a content repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// windowClause matches rows whose optional window contains now. A null bound
// leaves that side open.
const windowClause = "(start_date IS NULL OR start_date <= ?) AND (end_date IS NULL OR end_date >= ?)"

func (r *repositoryImpl) ListActiveHeroSlides(ctx context.Context, now time.Time) ([]models.HeroSlide, error) {
	var slides []models.HeroSlide
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(windowClause, now, now).
		Order("position ASC, created_at ASC").
		Find(&slides).
		Error
	if err != nil {
		return nil, err
	}
	return slides, nil
}

func (r *repositoryImpl) ListActiveAnnouncements(ctx context.Context, now time.Time) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(windowClause, now, now).
		Order("position ASC, created_at ASC").
		Find(&announcements).
		Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *repositoryImpl) ListActiveEditorialTiles(ctx context.Context) ([]models.EditorialTile, error) {
	var tiles []models.EditorialTile
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("grid_position ASC, created_at ASC").
		Find(&tiles).
		Error
	if err != nil {
		return nil, err
	}
	return tiles, nil
}
