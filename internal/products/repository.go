package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
	"github.com/ateliernoir/ateliernoir-backend/pkg/pagination"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows the catalog listing.
type ListFilter struct {
	Category     *enums.ProductCategory
	FeaturedOnly bool
	Search       string
	Cursor       string
	Limit        int
}

// FindByID loads one active product with its variants and images.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindVariant resolves the variant for a product's size/color combination.
func (r *Repository) FindVariant(ctx context.Context, productID uuid.UUID, size, color string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		First(&variant).
		Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// List returns a cursor-paginated page of active products, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, string, error) {
	normalized := pagination.NormalizeLimit(filter.Limit)
	buffered := pagination.LimitWithBuffer(filter.Limit)

	decoded, err := pagination.ParseCursor(strings.TrimSpace(filter.Cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("is_active = ?", true)

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR subtitle ILIKE ?", pattern, pattern)
	}
	if decoded != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decoded.CreatedAt, decoded.CreatedAt, decoded.ID)
	}

	var rows []models.Product
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(buffered).
		Find(&rows).
		Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return rows, next, nil
}
