package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account of the admin back office.
// Role: "admin" | "user" — admins manage boxes, categories and reports;
// regular users only operate the cashboxes they are assigned to.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'"`
	Enabled      bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
