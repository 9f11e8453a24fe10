package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a person the store sells to on credit or keeps on file.
type Customer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName      string    `gorm:"not null"`
	LastName       *string
	Alias          *string
	Observation    *string
	Email          *string `gorm:"index"`
	Address        *string
	DocumentType   *string `gorm:"type:varchar(10)"`
	DocumentNumber *string
	BirthDate      *time.Time
	Contacts       []CustomerContact `gorm:"foreignKey:CustomerID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Customer) TableName() string { return "customers" }

// CustomerContact is one phone number attached to a customer.
type CustomerContact struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Phone       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	CreatedAt   time.Time
}

func (CustomerContact) TableName() string { return "customer_contacts" }
