package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/model"
	"github.com/jesusfb/carmu-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerService interface {
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	Create(ctx context.Context, req dto.StoreCustomerRequest) (*dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddContact(ctx context.Context, customerID uuid.UUID, req dto.ContactPayload) (*dto.CustomerResponse, error)
	RemoveContact(ctx context.Context, customerID, contactID uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]dto.CustomerResponse, len(customers))
	for i := range customers {
		list[i] = mapCustomer(&customers[i])
	}
	return list, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, customerNotFound(err)
	}
	resp := mapCustomer(customer)
	return &resp, nil
}

func (s *customerService) Create(ctx context.Context, req dto.StoreCustomerRequest) (*dto.CustomerResponse, error) {
	customer := &model.Customer{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       req.LastName,
		Alias:          req.Alias,
		Observation:    req.Observation,
		Email:          normalizeEmail(req.Email),
		Address:        req.Address,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		BirthDate:      req.BirthDate,
	}
	for _, c := range req.Contacts {
		customer.Contacts = append(customer.Contacts, model.CustomerContact{
			Phone:       strings.TrimSpace(c.Phone),
			Description: strings.TrimSpace(c.Description),
		})
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	resp := mapCustomer(customer)
	return &resp, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, customerNotFound(err)
	}
	customer.FirstName = strings.TrimSpace(req.FirstName)
	customer.LastName = req.LastName
	customer.Alias = req.Alias
	customer.Observation = req.Observation
	customer.Email = normalizeEmail(req.Email)
	customer.Address = req.Address
	customer.DocumentType = req.DocumentType
	customer.DocumentNumber = req.DocumentNumber
	customer.BirthDate = req.BirthDate

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	resp := mapCustomer(customer)
	return &resp, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return customerNotFound(err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *customerService) AddContact(ctx context.Context, customerID uuid.UUID, req dto.ContactPayload) (*dto.CustomerResponse, error) {
	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		return nil, customerNotFound(err)
	}
	contact := &model.CustomerContact{
		CustomerID:  customerID,
		Phone:       strings.TrimSpace(req.Phone),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.AddContact(ctx, contact); err != nil {
		return nil, err
	}
	return s.Get(ctx, customerID)
}

func (s *customerService) RemoveContact(ctx context.Context, customerID, contactID uuid.UUID) error {
	if _, err := s.repo.FindContact(ctx, customerID, contactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Contacto no encontrado")
		}
		return err
	}
	return s.repo.RemoveContact(ctx, customerID, contactID)
}

func customerNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Cliente no encontrado")
	}
	return err
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*email))
	if v == "" {
		return nil
	}
	return &v
}

func mapCustomer(c *model.Customer) dto.CustomerResponse {
	resp := dto.CustomerResponse{
		ID:             c.ID.String(),
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Alias:          c.Alias,
		Observation:    c.Observation,
		Email:          c.Email,
		Address:        c.Address,
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
		BirthDate:      c.BirthDate,
		Contacts:       make([]dto.ContactResponse, len(c.Contacts)),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	for i, ct := range c.Contacts {
		resp.Contacts[i] = dto.ContactResponse{
			ID:          ct.ID.String(),
			Phone:       ct.Phone,
			Description: ct.Description,
		}
	}
	return resp
}
