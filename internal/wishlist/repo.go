package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
)

// Repository exposes the remote wishlist persistence keyed by customer.
type Repository interface {
	AddItem(ctx context.Context, customerID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, customerID, productID uuid.UUID) error
	ListProductIDs(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a wishlist repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// AddItem inserts a wishlist entry and ignores duplicates.
func (r *repositoryImpl) AddItem(ctx context.Context, customerID, productID uuid.UUID) error {
	if customerID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_items (customer_id, product_id) VALUES (?, ?) ON CONFLICT (customer_id, product_id) DO NOTHING`, customerID, productID).
		Error
}

// RemoveItem deletes the customer-product like if it exists.
func (r *repositoryImpl) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&models.WishlistItem{}).
		Error
}

// ListProductIDs returns every product the customer has liked remotely.
func (r *repositoryImpl) ListProductIDs(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Pluck("product_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
