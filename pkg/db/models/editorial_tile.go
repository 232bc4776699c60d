package models

import (
	"time"

	"github.com/google/uuid"
)

// EditorialTile is a curated grid cell on the landing page (lookbook imagery,
// collection links). GridPosition is the cell index in the rendered grid.
type EditorialTile struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Heading      string    `gorm:"column:heading;not null"`
	Subheading   *string   `gorm:"column:subheading"`
	ImageURL     string    `gorm:"column:image_url;not null"`
	LinkURL      *string   `gorm:"column:link_url"`
	GridPosition int       `gorm:"column:grid_position;not null;default:0"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
