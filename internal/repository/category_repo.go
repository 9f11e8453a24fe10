package repository

import (
	"context"

	"github.com/jesusfb/carmu-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository defines data access for categories, including the
// sibling-order renumbering that keeps `sort_order` sequential inside a
// main-category group.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	CountSiblings(ctx context.Context, mainCategoryID *uuid.UUID) (int64, error)
	Update(ctx context.Context, c *model.Category) error
	// UpdateWithOrder moves the category to newOrder among its siblings,
	// shifting the others, all inside one transaction.
	UpdateWithOrder(ctx context.Context, c *model.Category, newOrder int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

// siblingScope returns a fresh query over the sibling group of mainCategoryID.
func siblingScope(tx *gorm.DB, mainCategoryID *uuid.UUID) *gorm.DB {
	q := tx.Model(&model.Category{})
	if mainCategoryID == nil {
		return q.Where("main_category_id IS NULL")
	}
	return q.Where("main_category_id = ?", *mainCategoryID)
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories").
		Order("sort_order asc, level asc").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Preload("Subcategories").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) CountSiblings(ctx context.Context, mainCategoryID *uuid.UUID) (int64, error) {
	var count int64
	err := siblingScope(r.db.WithContext(ctx), mainCategoryID).Count(&count).Error
	return count, err
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Omit("Subcategories").Save(c).Error
}

func (r *categoryRepo) UpdateWithOrder(ctx context.Context, c *model.Category, newOrder int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Pull everyone above the vacated slot down one position.
		if err := siblingScope(tx, c.MainCategoryID).
			Where("sort_order > ?", c.Order).
			Update("sort_order", gorm.Expr("sort_order - 1")).Error; err != nil {
			return err
		}

		var max int64
		if err := siblingScope(tx, c.MainCategoryID).Count(&max).Error; err != nil {
			return err
		}

		// Open a slot at the target position unless it is the tail.
		if newOrder < int(max) {
			if err := siblingScope(tx, c.MainCategoryID).
				Where("id <> ? AND sort_order >= ?", c.ID, newOrder).
				Update("sort_order", gorm.Expr("sort_order + 1")).Error; err != nil {
				return err
			}
		}

		if newOrder <= int(max) {
			c.Order = newOrder
		} else {
			c.Order = int(max)
		}
		return tx.Omit("Subcategories").Save(c).Error
	})
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Category
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Category{}, "id = ?", id).Error; err != nil {
			return err
		}
		// Keep sibling order contiguous after the removal.
		return siblingScope(tx, c.MainCategoryID).
			Where("sort_order > ?", c.Order).
			Update("sort_order", gorm.Expr("sort_order - 1")).Error
	})
}
