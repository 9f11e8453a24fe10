package dto

import "time"

type ContactPayload struct {
	Phone       string `json:"phone"       validate:"required,min=5,max=20"`
	Description string `json:"description" validate:"required,min=3,max=45"`
}

type StoreCustomerRequest struct {
	FirstName      string           `json:"firstName" validate:"required,min=2,max=90"`
	LastName       *string          `json:"lastName" validate:"omitempty,max=90"`
	Alias          *string          `json:"alias" validate:"omitempty,max=90"`
	Observation    *string          `json:"observation"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Contacts       []ContactPayload `json:"contacts" validate:"omitempty,dive"`
	Address        *string          `json:"address"`
	DocumentType   *string          `json:"documentType" validate:"omitempty,oneof=CC CE NIT TI PAP"`
	DocumentNumber *string          `json:"documentNumber"`
	BirthDate      *time.Time       `json:"birthDate"`
}

type UpdateCustomerRequest struct {
	FirstName      string     `json:"firstName" validate:"required,min=2,max=90"`
	LastName       *string    `json:"lastName" validate:"omitempty,max=90"`
	Alias          *string    `json:"alias" validate:"omitempty,max=90"`
	Observation    *string    `json:"observation"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	Address        *string    `json:"address"`
	DocumentType   *string    `json:"documentType" validate:"omitempty,oneof=CC CE NIT TI PAP"`
	DocumentNumber *string    `json:"documentNumber"`
	BirthDate      *time.Time `json:"birthDate"`
}

type ContactResponse struct {
	ID          string `json:"id"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

type CustomerResponse struct {
	ID             string            `json:"id"`
	FirstName      string            `json:"firstName"`
	LastName       *string           `json:"lastName"`
	Alias          *string           `json:"alias"`
	Observation    *string           `json:"observation"`
	Email          *string           `json:"email"`
	Contacts       []ContactResponse `json:"contacts"`
	Address        *string           `json:"address"`
	DocumentType   *string           `json:"documentType"`
	DocumentNumber *string           `json:"documentNumber"`
	BirthDate      *time.Time        `json:"birthDate"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
