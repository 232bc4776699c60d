package content

import (
	"context"
	"time"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
)

// HomeContent is everything the landing page needs in one response.
type HomeContent struct {
	HeroSlides     []models.HeroSlide     `json:"hero_slides"`
	Announcement   *models.Announcement   `json:"announcement,omitempty"`
	EditorialTiles []models.EditorialTile `json:"editorial_tiles"`
}

// Service assembles marketing content for the storefront.
type Service interface {
	Home(ctx context.Context) (*HomeContent, error)
	Announcements(ctx context.Context) ([]models.Announcement, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires content dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content repository is required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Home returns the active hero carousel, the current banner and the editorial
// grid. The banner is the lowest-position active announcement.
func (s *service) Home(ctx context.Context) (*HomeContent, error) {
	now := s.now().UTC()

	slides, err := s.repo.ListActiveHeroSlides(ctx, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list hero slides")
	}

	announcements, err := s.repo.ListActiveAnnouncements(ctx, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list announcements")
	}

	tiles, err := s.repo.ListActiveEditorialTiles(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list editorial tiles")
	}

	home := &HomeContent{
		HeroSlides:     slides,
		EditorialTiles: tiles,
	}
	if len(announcements) > 0 {
		home.Announcement = &announcements[0]
	}
	return home, nil
}

// Announcements returns every currently active banner in display order.
func (s *service) Announcements(ctx context.Context) ([]models.Announcement, error) {
	rows, err := s.repo.ListActiveAnnouncements(ctx, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list announcements")
	}
	return rows, nil
}
