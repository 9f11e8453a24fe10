package service_test

import (
	"context"
	"testing"

	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/model"
	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory CustomerRepository ─────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Contacts {
		if c.Contacts[i].ID == uuid.Nil {
			c.Contacts[i].ID = uuid.New()
		}
		c.Contacts[i].CustomerID = c.ID
	}
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	return &out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	stored, ok := r.customers[c.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	contacts := stored.Contacts
	updated := *c
	updated.Contacts = contacts
	r.customers[c.ID] = &updated
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) AddContact(_ context.Context, contact *model.CustomerContact) error {
	c, ok := r.customers[contact.CustomerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	c.Contacts = append(c.Contacts, *contact)
	return nil
}

func (r *fakeCustomerRepo) FindContact(_ context.Context, customerID, contactID uuid.UUID) (*model.CustomerContact, error) {
	c, ok := r.customers[customerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range c.Contacts {
		if c.Contacts[i].ID == contactID {
			return &c.Contacts[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) RemoveContact(_ context.Context, customerID, contactID uuid.UUID) error {
	c, ok := r.customers[customerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range c.Contacts {
		if c.Contacts[i].ID == contactID {
			c.Contacts = append(c.Contacts[:i], c.Contacts[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreateCustomerWithContacts(t *testing.T) {
	svc := service.NewCustomerService(newFakeCustomerRepo())
	ctx := context.Background()

	email := "  MARIA@Gmail.com "
	resp, err := svc.Create(ctx, dto.StoreCustomerRequest{
		FirstName: " María ",
		Email:     &email,
		Contacts: []dto.ContactPayload{
			{Phone: "3001234567", Description: "Celular personal"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "María", resp.FirstName)
	require.NotNil(t, resp.Email)
	assert.Equal(t, "maria@gmail.com", *resp.Email)
	require.Len(t, resp.Contacts, 1)
	assert.Equal(t, "3001234567", resp.Contacts[0].Phone)
}

func TestAddAndRemoveContact(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := service.NewCustomerService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.StoreCustomerRequest{FirstName: "María"})
	require.NoError(t, err)
	customerID := mustParseUUID(t, created.ID)

	withContact, err := svc.AddContact(ctx, customerID, dto.ContactPayload{
		Phone: "3009876543", Description: "Trabajo",
	})
	require.NoError(t, err)
	require.Len(t, withContact.Contacts, 1)

	contactID := mustParseUUID(t, withContact.Contacts[0].ID)
	require.NoError(t, svc.RemoveContact(ctx, customerID, contactID))

	after, err := svc.Get(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, after.Contacts)
}

func TestRemoveMissingContact(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := service.NewCustomerService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.StoreCustomerRequest{FirstName: "María"})
	require.NoError(t, err)

	err = svc.RemoveContact(ctx, mustParseUUID(t, created.ID), uuid.New())
	var notFound *service.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateCustomerKeepsContacts(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := service.NewCustomerService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.StoreCustomerRequest{
		FirstName: "María",
		Contacts:  []dto.ContactPayload{{Phone: "3001234567", Description: "Celular"}},
	})
	require.NoError(t, err)
	customerID := mustParseUUID(t, created.ID)

	alias := "Mari"
	_, err = svc.Update(ctx, customerID, dto.UpdateCustomerRequest{FirstName: "María", Alias: &alias})
	require.NoError(t, err)

	after, err := svc.Get(ctx, customerID)
	require.NoError(t, err)
	require.NotNil(t, after.Alias)
	assert.Equal(t, "Mari", *after.Alias)
	assert.Len(t, after.Contacts, 1, "contacts survive a profile update")
}
