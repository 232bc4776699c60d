package offers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/ateliernoir/ateliernoir-backend/internal/pricing"
	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
)

type offerCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ActiveOffersKey() string
}

// ServiceParams groups dependencies for the offers service.
type ServiceParams struct {
	Repo     *Repository
	Cache    offerCache
	Logger   *logger.Logger
	CacheTTL time.Duration
}

// Service exposes the active offer list and price resolution against it.
type Service interface {
	ListActive(ctx context.Context) ([]models.Offer, error)
	ResolvePrice(ctx context.Context, basePriceCents int, variantAdjustmentCents *int, productID uuid.UUID, variantID *uuid.UUID) (pricing.ResolvedPrice, error)
}

type service struct {
	repo     *Repository
	cache    offerCache
	logg     *logger.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService builds an offers service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offers repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &service{
		repo:     params.Repo,
		cache:    params.Cache,
		logg:     params.Logger,
		cacheTTL: ttl,
		now:      time.Now,
	}, nil
}

// ListActive returns the currently live offers, served from the Redis cache
// when fresh. Cache failures fall through to the database.
func (s *service) ListActive(ctx context.Context) ([]models.Offer, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	rows, err := s.repo.ListActive(ctx, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active offers")
	}

	s.fillCache(ctx, rows)
	return rows, nil
}

// ResolvePrice runs the pricing resolver against the live offer set.
func (s *service) ResolvePrice(ctx context.Context, basePriceCents int, variantAdjustmentCents *int, productID uuid.UUID, variantID *uuid.UUID) (pricing.ResolvedPrice, error) {
	if productID == uuid.Nil {
		return pricing.ResolvedPrice{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	active, err := s.ListActive(ctx)
	if err != nil {
		return pricing.ResolvedPrice{}, err
	}
	return pricing.Resolve(basePriceCents, variantAdjustmentCents, active, productID, variantID, s.now().UTC()), nil
}

func (s *service) fromCache(ctx context.Context) ([]models.Offer, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.ActiveOffersKey())
	if err != nil {
		if !errors.Is(err, redislib.Nil) {
			s.logg.Warn(ctx, "offers cache read failed")
		}
		return nil, false
	}
	var rows []models.Offer
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		s.logg.Warn(ctx, "offers cache payload corrupt")
		return nil, false
	}
	return rows, true
}

func (s *service) fillCache(ctx context.Context, rows []models.Offer) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.ActiveOffersKey(), string(payload), s.cacheTTL); err != nil {
		s.logg.Warn(ctx, "offers cache write failed")
	}
}
