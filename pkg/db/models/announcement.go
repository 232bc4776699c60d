package models

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is the rotating text banner above the storefront header.
type Announcement struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Message   string     `gorm:"column:message;not null"`
	LinkURL   *string    `gorm:"column:link_url"`
	Position  int        `gorm:"column:position;not null;default:0"`
	StartDate *time.Time `gorm:"column:start_date"`
	EndDate   *time.Time `gorm:"column:end_date"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
