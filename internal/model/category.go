package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryImage is an opaque handle into the external blob store. The API
// only moves these values around; the binary itself lives elsewhere.
type CategoryImage struct {
	PublicID string `gorm:"column:image_public_id"`
	Width    int    `gorm:"column:image_width"`
	Height   int    `gorm:"column:image_height"`
	Format   string `gorm:"column:image_format"`
	URL      string `gorm:"column:image_url"`
}

// Category classifies products in a tree: level 0 categories at the root,
// children pointing at their MainCategory. Order is a 1-based sequential
// position among siblings, maintained by the service on insert and move.
type Category struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MainCategoryID *uuid.UUID `gorm:"type:uuid;index"`
	Subcategories  []Category `gorm:"foreignKey:MainCategoryID"`
	Name           string     `gorm:"type:varchar(45);not null"`
	Description    *string
	Image          *CategoryImage `gorm:"embedded"`
	Level          int            `gorm:"not null;default:0"`
	Order          int            `gorm:"column:sort_order;not null;default:1"`
	IsEnabled      bool           `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Category) TableName() string { return "categories" }
