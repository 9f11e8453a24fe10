package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cashbox is one physical register. Lifecycle: created closed (no cashier, no
// base, no timestamps) → opened with a cash base → closed by reconciliation.
// Exactly one of "OpenedAt set and ClosedAt nil" (open) or anything else
// (closed) holds at any time.
type Cashbox struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string     `gorm:"type:varchar(45);not null"`
	CashierID   *uuid.UUID `gorm:"type:uuid"`
	Cashier     *User      `gorm:"foreignKey:CashierID"`
	CashierName *string
	// Users are the accounts allowed to operate this box, distinct from
	// the cashier assigned for the current session.
	Users []User `gorm:"many2many:cashbox_users"`
	// Base is the starting cash declared at open time.
	Base decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// Balance = base + incomes − expenses for the current session only.
	// Not trusted across sessions; reset to zero on close.
	Balance  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OpenedAt *time.Time
	ClosedAt *time.Time
	// Transactions holds only the live session; on close they are
	// re-parented to the closing record and this list empties.
	Transactions   []CashboxTransaction `gorm:"foreignKey:CashboxID"`
	ClosingRecords []CashClosingRecord  `gorm:"foreignKey:CashboxID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Cashbox) TableName() string { return "cashboxes" }

// IsOpen reports whether the box currently holds an open session.
func (c *Cashbox) IsOpen() bool { return c.OpenedAt != nil && c.ClosedAt == nil }

// CashboxTransaction is an immutable ledger entry. Amount is signed: incomes
// positive, expenses negative. Entries are NEVER updated or deleted.
type CashboxTransaction struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// CashboxID points at the live session; cleared when ClosingRecordID
	// is set at close time (the record becomes the owner).
	CashboxID       *uuid.UUID `gorm:"type:uuid;index"`
	ClosingRecordID *uuid.UUID `gorm:"type:uuid;index"`
	TransactionDate time.Time  `gorm:"not null"`
	Description     string     `gorm:"not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// IsTransfer marks movements between boxes rather than to/from the till.
	IsTransfer bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

func (CashboxTransaction) TableName() string { return "cashbox_transactions" }

// DenominationCount is an advisory breakdown of a physical count by
// denomination ("50000" → 3). Stored as JSONB, never part of the
// reconciliation arithmetic.
type DenominationCount map[string]int

func (d DenominationCount) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *DenominationCount) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("model: tipo incompatible para DenominationCount")
	}
	return json.Unmarshal(raw, d)
}

// CashClosingRecord seals the outcome of one session. It is the only durable
// record of the session's activity once the live transaction list is cleared,
// so names are denormalized here: renaming a user or box later must not alter
// history.
type CashClosingRecord struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CashboxID *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_closing_session"`
	UserID    *uuid.UUID `gorm:"type:uuid"`
	CashierID *uuid.UUID `gorm:"type:uuid"`

	BoxName     string `gorm:"not null"`
	UserName    string `gorm:"not null"`
	CashierName string `gorm:"not null"`

	// Opened/ClosingDate delimit the session. The (cashbox, opened) pair is
	// unique: one closing record per session, which makes a close retry
	// idempotent.
	Opened      time.Time `gorm:"not null;uniqueIndex:idx_closing_session"`
	ClosingDate time.Time `gorm:"not null"`

	Base     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Incomes  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Expenses decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Cash is the physically counted amount reported by the operator.
	Cash     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Leftover decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Missing  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Coin  DenominationCount `gorm:"type:jsonb"`
	Bills DenominationCount `gorm:"type:jsonb"`

	Observation *string

	Transactions []CashboxTransaction `gorm:"foreignKey:ClosingRecordID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CashClosingRecord) TableName() string { return "cash_closing_records" }
