package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type NewCashboxRequest struct {
	Name    string   `json:"name"    validate:"required,min=3,max=45"`
	UserIDs []string `json:"userIds" validate:"omitempty,dive,uuid"`
}

type UpdateCashboxRequest struct {
	Name string `json:"name" validate:"required,min=3,max=45"`
}

type AssignUsersRequest struct {
	UserIDs []string `json:"userIds" validate:"required,dive,uuid"`
}

type OpenBoxRequest struct {
	CashierID string          `json:"cashierId" validate:"required,uuid"`
	Base      decimal.Decimal `json:"base"      validate:"min=0"`
}

type NewTransactionRequest struct {
	Date        *time.Time      `json:"date"`
	Description string          `json:"description" validate:"required,min=1"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Kind        string          `json:"kind"        validate:"required,oneof=income expense"`
	IsTransfer  bool            `json:"isTransfer"`
}

type CloseBoxRequest struct {
	// Cash is the counted cash; a pointer so an absent field is rejected
	// instead of binding to zero.
	Cash        *decimal.Decimal `json:"cash"  validate:"required"`
	Coin        map[string]int   `json:"coin"  validate:"omitempty,dive,min=0"`
	Bills       map[string]int   `json:"bills" validate:"omitempty,dive,min=0"`
	Observation *string          `json:"observation"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CashierRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CashboxLite struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Cashier     *CashierRef     `json:"cashier"`
	CashierName *string         `json:"cashierName"`
	Users       []string        `json:"users"`
	Base        decimal.Decimal `json:"base"`
	Balance     decimal.Decimal `json:"balance"`
	OpenBox     *time.Time      `json:"openBox"`
	Closed      *time.Time      `json:"closed"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type CashboxResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Cashier        *CashierRef           `json:"cashier"`
	Users          []string              `json:"users"`
	Base           decimal.Decimal       `json:"base"`
	Balance        decimal.Decimal       `json:"balance"`
	OpenBox        *time.Time            `json:"openBox"`
	Closed         *time.Time            `json:"closed"`
	LastClosing    *time.Time            `json:"lastClosing"`
	Transactions   []TransactionResponse `json:"transactions"`
	ClosingRecords []string              `json:"closingRecords"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

type TransactionResponse struct {
	ID              string          `json:"id"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	IsTransfer      bool            `json:"isTransfer"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type ClosingRecordResponse struct {
	ID          string                `json:"id"`
	Cashbox     *string               `json:"cashbox"`
	User        *string               `json:"user"`
	Cashier     *string               `json:"cashier"`
	BoxName     string                `json:"boxName"`
	UserName    string                `json:"userName"`
	CashierName string                `json:"cashierName"`
	Opened      time.Time             `json:"opened"`
	ClosingDate time.Time             `json:"closingDate"`
	Base        decimal.Decimal       `json:"base"`
	Incomes     decimal.Decimal       `json:"incomes"`
	Expenses    decimal.Decimal       `json:"expenses"`
	Cash        decimal.Decimal       `json:"cash"`
	Coin        map[string]int        `json:"coin,omitempty"`
	Bills       map[string]int        `json:"bills,omitempty"`
	Leftover    decimal.Decimal       `json:"leftover"`
	Missing     decimal.Decimal       `json:"missing"`
	Observation *string               `json:"observation"`
	Transaction []TransactionResponse `json:"transactions"`
	CreatedAt   time.Time             `json:"createdAt"`
}

type CloseBoxResponse struct {
	Cashbox CashboxResponse       `json:"cashbox"`
	Closing ClosingRecordResponse `json:"closing"`
}
