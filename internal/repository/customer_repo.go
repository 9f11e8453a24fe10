package repository

import (
	"context"

	"github.com/jesusfb/carmu-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerRepository defines CRUD operations for customers and their contacts.
type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	List(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddContact(ctx context.Context, contact *model.CustomerContact) error
	FindContact(ctx context.Context, customerID, contactID uuid.UUID) (*model.CustomerContact, error)
	RemoveContact(ctx context.Context, customerID, contactID uuid.UUID) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) List(ctx context.Context) ([]model.Customer, error) {
	var list []model.Customer
	err := r.db.WithContext(ctx).
		Preload("Contacts").
		Order("first_name asc").
		Find(&list).Error
	return list, err
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Preload("Contacts").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Omit("Contacts").Save(c).Error
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.CustomerContact{}, "customer_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Customer{}, "id = ?", id).Error
	})
}

func (r *customerRepo) AddContact(ctx context.Context, contact *model.CustomerContact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *customerRepo) FindContact(ctx context.Context, customerID, contactID uuid.UUID) (*model.CustomerContact, error) {
	var contact model.CustomerContact
	err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", contactID, customerID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *customerRepo) RemoveContact(ctx context.Context, customerID, contactID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&model.CustomerContact{}, "id = ? AND customer_id = ?", contactID, customerID).Error
}
