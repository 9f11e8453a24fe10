package dto

import "time"

// ImagePayload carries the opaque blob-store handle for an uploaded image.
type ImagePayload struct {
	PublicID string `json:"publicId" validate:"required"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	URL      string `json:"url"      validate:"omitempty,url"`
}

type StoreCategoryRequest struct {
	Name        string        `json:"name" validate:"required,min=3,max=45"`
	Description *string       `json:"description" validate:"omitempty,max=255"`
	Image       *ImagePayload `json:"image"`
}

type UpdateCategoryRequest struct {
	Name        string        `json:"name" validate:"required,min=3,max=45"`
	Description *string       `json:"description" validate:"omitempty,max=255"`
	Image       *ImagePayload `json:"image"`
	IsEnabled   *bool         `json:"isEnabled"`
	Order       *int          `json:"order" validate:"omitempty,min=1"`
}

type CategoryResponse struct {
	ID             string             `json:"id"`
	MainCategory   *string            `json:"mainCategory"`
	Subcategories  []CategoryResponse `json:"subcategories,omitempty"`
	Name           string             `json:"name"`
	Description    *string            `json:"description"`
	Image          *ImagePayload      `json:"image"`
	Level          int                `json:"level"`
	Order          int                `json:"order"`
	IsEnabled      bool               `json:"isEnabled"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}
