package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/pagination"
)

// TrackedOrder is an order plus its rendered fulfillment timeline.
type TrackedOrder struct {
	Order    *models.Order  `json:"order"`
	Timeline []TimelineStep `json:"timeline"`
}

// ListParams configures the customer order history page.
type ListParams struct {
	CustomerID uuid.UUID
	Cursor     string
	Limit      int
}

// ListResult wraps one history page and the next cursor.
type ListResult struct {
	Items  []models.Order `json:"items"`
	Cursor string         `json:"cursor"`
}

// Service exposes order tracking and history.
type Service interface {
	Track(ctx context.Context, orderNumber, email string) (*TrackedOrder, error)
	ListMine(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo Repository
}

// NewService wires order dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repository is required")
	}
	return &service{repo: repo}, nil
}

// Track resolves an order for the tracking page. The email check keeps guest
// lookups from enumerating order numbers.
func (s *service) Track(ctx context.Context, orderNumber, email string) (*TrackedOrder, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	order, err := s.repo.FindByNumberAndEmail(ctx, orderNumber, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup order")
	}

	return &TrackedOrder{
		Order:    order,
		Timeline: BuildTimeline(order),
	}, nil
}

// ListMine returns the signed-in customer's order history.
func (s *service) ListMine(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	var cursor *pagination.Cursor
	if params.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	rows, next, err := s.repo.ListByCustomer(ctx, params.CustomerID, cursor, params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	encoded := ""
	if next != nil {
		encoded = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: encoded}, nil
}
