package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/infra"
	"github.com/jesusfb/carmu-api/internal/model"
	"github.com/jesusfb/carmu-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CategoryService maintains the category tree and its per-group display order.
type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	// Create appends the category at the tail of its sibling group. A nil
	// parentID creates a root category.
	Create(ctx context.Context, parentID *uuid.UUID, req dto.StoreCategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo  repository.CategoryRepository
	blobs infra.BlobStore
}

func NewCategoryService(repo repository.CategoryRepository, blobs infra.BlobStore) CategoryService {
	return &categoryService{repo: repo, blobs: blobs}
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// The repository returns the whole table; only roots go at the top level,
	// children hang off their parent's Subcategories preload.
	list := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		if cats[i].MainCategoryID == nil {
			list = append(list, mapCategory(&cats[i]))
		}
	}
	return list, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, categoryNotFound(err)
	}
	resp := mapCategory(cat)
	return &resp, nil
}

func (s *categoryService) Create(ctx context.Context, parentID *uuid.UUID, req dto.StoreCategoryRequest) (*dto.CategoryResponse, error) {
	level := 0
	if parentID != nil {
		parent, err := s.repo.FindByID(ctx, *parentID)
		if err != nil {
			return nil, NotFound("Categoría principal no encontrada")
		}
		level = parent.Level + 1
	}

	siblings, err := s.repo.CountSiblings(ctx, parentID)
	if err != nil {
		return nil, err
	}

	cat := &model.Category{
		MainCategoryID: parentID,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Image:          imageFromPayload(req.Image),
		Level:          level,
		Order:          int(siblings) + 1,
		IsEnabled:      true,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		s.destroyImage(ctx, cat.Image)
		return nil, err
	}
	resp := mapCategory(cat)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, categoryNotFound(err)
	}

	var replaced *model.CategoryImage
	cat.Name = strings.TrimSpace(req.Name)
	cat.Description = req.Description
	if req.Image != nil {
		if cat.Image != nil && cat.Image.PublicID != req.Image.PublicID {
			replaced = cat.Image
		}
		cat.Image = imageFromPayload(req.Image)
	}
	if req.IsEnabled != nil {
		cat.IsEnabled = *req.IsEnabled
	}

	if req.Order != nil && *req.Order != cat.Order {
		err = s.repo.UpdateWithOrder(ctx, cat, *req.Order)
	} else {
		err = s.repo.Update(ctx, cat)
	}
	if err != nil {
		return nil, err
	}

	// The old blob is unreferenced once the row is saved.
	s.destroyImage(ctx, replaced)
	resp := mapCategory(cat)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return categoryNotFound(err)
	}
	if len(cat.Subcategories) > 0 {
		return InvalidState("La categoría tiene subcategorías asociadas")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.destroyImage(ctx, cat.Image)
	return nil
}

func (s *categoryService) destroyImage(ctx context.Context, img *model.CategoryImage) {
	if img == nil || img.PublicID == "" || s.blobs == nil {
		return
	}
	if err := s.blobs.Destroy(ctx, img.PublicID); err != nil {
		log.Warn().Err(err).Str("public_id", img.PublicID).Msg("failed to destroy category image")
	}
}

func categoryNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Categoría no encontrada")
	}
	return err
}

func imageFromPayload(p *dto.ImagePayload) *model.CategoryImage {
	if p == nil {
		return nil
	}
	return &model.CategoryImage{
		PublicID: p.PublicID,
		Width:    p.Width,
		Height:   p.Height,
		Format:   p.Format,
		URL:      p.URL,
	}
}

func mapCategory(c *model.Category) dto.CategoryResponse {
	resp := dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Level:       c.Level,
		Order:       c.Order,
		IsEnabled:   c.IsEnabled,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.MainCategoryID != nil {
		id := c.MainCategoryID.String()
		resp.MainCategory = &id
	}
	if c.Image != nil && c.Image.PublicID != "" {
		resp.Image = &dto.ImagePayload{
			PublicID: c.Image.PublicID,
			Width:    c.Image.Width,
			Height:   c.Image.Height,
			Format:   c.Image.Format,
			URL:      c.Image.URL,
		}
	}
	for i := range c.Subcategories {
		resp.Subcategories = append(resp.Subcategories, mapCategory(&c.Subcategories[i]))
	}
	return resp
}
