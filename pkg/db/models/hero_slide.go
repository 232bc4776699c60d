package models

import (
	"time"

	"github.com/google/uuid"
)

// HeroSlide is a homepage hero carousel entry, shown while inside its window.
type HeroSlide struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string     `gorm:"column:title;not null"`
	Subtitle  *string    `gorm:"column:subtitle"`
	ImageURL  string     `gorm:"column:image_url;not null"`
	LinkURL   *string    `gorm:"column:link_url"`
	CTALabel  *string    `gorm:"column:cta_label"`
	Position  int        `gorm:"column:position;not null;default:0"`
	StartDate *time.Time `gorm:"column:start_date"`
	EndDate   *time.Time `gorm:"column:end_date"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
