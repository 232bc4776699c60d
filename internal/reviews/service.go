package reviews

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
	"github.com/ateliernoir/ateliernoir-backend/pkg/pagination"
)

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// SubmitRequest is one review submission.
type SubmitRequest struct {
	ProductID  uuid.UUID
	CustomerID uuid.UUID
	Rating     int
	Title      string
	Body       string
}

// ListParams configures one page of a product's reviews.
type ListParams struct {
	ProductID uuid.UUID
	Cursor    string
	Limit     int
}

// ListResult is one page of reviews plus the product aggregate.
type ListResult struct {
	Items     []models.Review `json:"items"`
	Cursor    string          `json:"cursor"`
	Aggregate *Aggregate      `json:"aggregate"`
}

// ServiceParams bundles review service dependencies.
type ServiceParams struct {
	Repo     Repository
	Products productFinder
	Logger   *logger.Logger
}

// Service covers review submission and browsing.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*models.Review, error)
	ListByProduct(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo     Repository
	products productFinder
	logger   *logger.Logger
}

// NewService constructs the review service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repository is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product finder is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		logger:   params.Logger,
	}, nil
}

// Submit records a review, replacing the customer's earlier review of the
// same product if one exists.
func (s *service) Submit(ctx context.Context, req SubmitRequest) (*models.Review, error) {
	if req.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if req.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review body is required")
	}

	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	review := &models.Review{
		ID:         uuid.New(),
		ProductID:  req.ProductID,
		CustomerID: req.CustomerID,
		Rating:     req.Rating,
		Body:       body,
	}
	if title := strings.TrimSpace(req.Title); title != "" {
		review.Title = &title
	}

	if err := s.repo.Upsert(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save review")
	}

	logCtx := s.logger.WithCustomerID(ctx, req.CustomerID.String())
	logCtx = s.logger.WithField(logCtx, "product_id", req.ProductID.String())
	s.logger.Info(logCtx, "review submitted")

	return review, nil
}

// ListByProduct returns one review page alongside the score aggregate.
func (s *service) ListByProduct(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	var cursor *pagination.Cursor
	if params.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	rows, next, err := s.repo.ListByProduct(ctx, params.ProductID, cursor, params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}

	agg, err := s.repo.AggregateByProduct(ctx, params.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate reviews")
	}

	encoded := ""
	if next != nil {
		encoded = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: encoded, Aggregate: agg}, nil
}
