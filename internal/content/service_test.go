package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
)

type stubRepo struct {
	slides        []models.HeroSlide
	announcements []models.Announcement
	tiles         []models.EditorialTile
	slidesNow     time.Time
}

func (s *stubRepo) ListActiveHeroSlides(_ context.Context, now time.Time) ([]models.HeroSlide, error) {
	s.slidesNow = now
	return s.slides, nil
}

func (s *stubRepo) ListActiveAnnouncements(_ context.Context, _ time.Time) ([]models.Announcement, error) {
	return s.announcements, nil
}

func (s *stubRepo) ListActiveEditorialTiles(_ context.Context) ([]models.EditorialTile, error) {
	return s.tiles, nil
}

func TestHomeAssemblesContent(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		slides: []models.HeroSlide{
			{ID: uuid.New(), Title: "Fall Collection", Position: 0},
			{ID: uuid.New(), Title: "Archive Sale", Position: 1},
		},
		announcements: []models.Announcement{
			{ID: uuid.New(), Message: "Free shipping over 150", Position: 0},
			{ID: uuid.New(), Message: "New arrivals weekly", Position: 1},
		},
		tiles: []models.EditorialTile{
			{ID: uuid.New(), Heading: "The Lookbook", GridPosition: 0},
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	home, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if len(home.HeroSlides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(home.HeroSlides))
	}
	if home.Announcement == nil || home.Announcement.Message != "Free shipping over 150" {
		t.Fatalf("expected lowest-position banner, got %+v", home.Announcement)
	}
	if len(home.EditorialTiles) != 1 {
		t.Fatalf("expected 1 tile, got %d", len(home.EditorialTiles))
	}
	if repo.slidesNow.IsZero() {
		t.Fatal("expected current time passed to repository")
	}
}

func TestHomeWithoutAnnouncement(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubRepo{})
	home, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if home.Announcement != nil {
		t.Fatalf("expected nil banner, got %+v", home.Announcement)
	}
}

func TestAnnouncementsReturnsAllActive(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{announcements: []models.Announcement{
		{ID: uuid.New(), Message: "one"},
		{ID: uuid.New(), Message: "two"},
	}}
	svc, _ := NewService(repo)

	rows, err := svc.Announcements(context.Background())
	if err != nil {
		t.Fatalf("announcements: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 banners, got %d", len(rows))
	}
}
