package reviews

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	"github.com/ateliernoir/ateliernoir-backend/pkg/pagination"
	"github.com/ateliernoir/ateliernoir-backend/pkg/types"
)

// Aggregate summarizes review scores for a product.
type Aggregate struct {
	Average float64       `json:"average"`
	Count   int64         `json:"count"`
	Stars   types.Ratings `json:"stars"`
}

// Repository exposes review persistence.
type Repository interface {
	Upsert(ctx context.Context, review *models.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Review, *pagination.Cursor, error)
	AggregateByProduct(ctx context.Context, productID uuid.UUID) (*Aggregate, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a review repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// Upsert keeps one review per customer and product. A repeat submission
// replaces the earlier rating, title and body in place.
func (r *repositoryImpl) Upsert(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "customer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "title", "body", "updated_at"}),
		}).
		Create(review).
		Error
}

func (r *repositoryImpl) ListByProduct(ctx context.Context, productID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Review, *pagination.Cursor, error) {
	buffered := pagination.LimitWithBuffer(limit)
	normalized := pagination.NormalizeLimit(limit)

	query := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("product_id = ?", productID)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Review
	if err := query.Order("created_at DESC, id DESC").Limit(buffered).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

func (r *repositoryImpl) AggregateByProduct(ctx context.Context, productID uuid.UUID) (*Aggregate, error) {
	var buckets []struct {
		Rating int
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("rating, count(*) AS count").
		Where("product_id = ?", productID).
		Group("rating").
		Scan(&buckets).
		Error
	if err != nil {
		return nil, err
	}

	return aggregateFromBuckets(buckets), nil
}

func aggregateFromBuckets(buckets []struct {
	Rating int
	Count  int64
}) *Aggregate {
	agg := &Aggregate{Stars: make(types.Ratings)}
	var sum int64
	for _, bucket := range buckets {
		agg.Count += bucket.Count
		sum += int64(bucket.Rating) * bucket.Count
		agg.Stars[strconv.Itoa(bucket.Rating)] = int(bucket.Count)
	}
	if agg.Count > 0 {
		agg.Average = float64(sum) / float64(agg.Count)
	}
	return agg
}
