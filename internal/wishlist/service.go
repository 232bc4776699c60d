package wishlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
	"github.com/ateliernoir/ateliernoir-backend/pkg/metrics"
)

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo     Repository
	Blobs    blobStore
	Products productFinder
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	TTL      time.Duration
}

// Service exposes the optimistic local wishlist with best-effort remote sync.
// The local set commits first and never rolls back on remote failure.
type Service interface {
	Get(ctx context.Context, ownerKey string) ([]uuid.UUID, error)
	AddItem(ctx context.Context, ownerKey string, customerID *uuid.UUID, productID uuid.UUID) ([]uuid.UUID, error)
	RemoveItem(ctx context.Context, ownerKey string, customerID *uuid.UUID, productID uuid.UUID) ([]uuid.UUID, error)
	Sync(ctx context.Context, ownerKey string, customerID uuid.UUID) ([]uuid.UUID, error)
}

type service struct {
	repo     Repository
	local    *localSet
	products productFinder
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.Blobs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "blob store is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &service{
		repo:     params.Repo,
		local:    newLocalSet(params.Blobs, ttl),
		products: params.Products,
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// Get returns the local membership set.
func (s *service) Get(ctx context.Context, ownerKey string) ([]uuid.UUID, error) {
	if err := requireOwner(ownerKey); err != nil {
		return nil, err
	}
	ids, err := s.local.load(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddItem commits the like locally, then mirrors it remotely when a customer
// identity is present. Remote failures are logged only.
func (s *service) AddItem(ctx context.Context, ownerKey string, customerID *uuid.UUID, productID uuid.UUID) ([]uuid.UUID, error) {
	if err := requireOwner(ownerKey); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	ids, err := s.local.load(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	if !containsID(ids, productID) {
		ids = append(ids, productID)
		if err := s.local.save(ctx, ownerKey, ids); err != nil {
			return nil, err
		}
	}

	if customerID != nil {
		if err := s.repo.AddItem(ctx, *customerID, productID); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", productID.String()), "remote wishlist insert failed")
		}
	}
	return ids, nil
}

// RemoveItem drops the like locally, then best-effort remotely.
func (s *service) RemoveItem(ctx context.Context, ownerKey string, customerID *uuid.UUID, productID uuid.UUID) ([]uuid.UUID, error) {
	if err := requireOwner(ownerKey); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	ids, err := s.local.load(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	if containsID(ids, productID) {
		ids = removeID(ids, productID)
		if err := s.local.save(ctx, ownerKey, ids); err != nil {
			return nil, err
		}
	}

	if customerID != nil {
		if err := s.repo.RemoveItem(ctx, *customerID, productID); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", productID.String()), "remote wishlist delete failed")
		}
	}
	return ids, nil
}

// Sync reconciles the local and remote sets by union. Remote-only ids join
// the local set; local-only ids are pushed to the remote store with conflicts
// treated as already present. The union is never destructive in either
// direction.
func (s *service) Sync(ctx context.Context, ownerKey string, customerID uuid.UUID) ([]uuid.UUID, error) {
	if err := requireOwner(ownerKey); err != nil {
		return nil, err
	}
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	local, err := s.local.load(ctx, ownerKey)
	if err != nil {
		return nil, err
	}

	remote, err := s.repo.ListProductIDs(ctx, customerID)
	if err != nil {
		s.metrics.IncWishlistSync("remote_fetch_failed")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch remote wishlist")
	}

	union := make([]uuid.UUID, 0, len(local)+len(remote))
	union = append(union, local...)
	for _, id := range remote {
		if !containsID(union, id) {
			union = append(union, id)
		}
	}

	if len(union) != len(local) {
		if err := s.local.save(ctx, ownerKey, union); err != nil {
			return nil, err
		}
	}

	var pushErr error
	for _, id := range union {
		if containsID(remote, id) {
			continue
		}
		if err := s.repo.AddItem(ctx, customerID, id); err != nil {
			pushErr = multierr.Append(pushErr, err)
		}
	}
	if pushErr != nil {
		s.logg.Error(ctx, "wishlist remote push incomplete", pushErr)
		s.metrics.IncWishlistSync("partial")
	} else {
		s.metrics.IncWishlistSync("merged")
	}

	return union, nil
}

func requireOwner(ownerKey string) error {
	if strings.TrimSpace(ownerKey) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "wishlist owner is required")
	}
	return nil
}
