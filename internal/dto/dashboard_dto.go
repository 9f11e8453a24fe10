package dto

import "github.com/shopspring/decimal"

// CashReportBox is one row of the live cash report.
type CashReportBox struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CashierName *string         `json:"cashierName"`
	Open        bool            `json:"open"`
	Base        decimal.Decimal `json:"base"`
	Balance     decimal.Decimal `json:"balance"`
}

type CashReportResponse struct {
	OpenBoxes    int             `json:"openBoxes"`
	ClosedBoxes  int             `json:"closedBoxes"`
	TotalBase    decimal.Decimal `json:"totalBase"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
	Boxes        []CashReportBox `json:"boxes"`
}

// MonthlyAmounts is one month of the annual report, 1-based Month.
type MonthlyAmounts struct {
	Month    int             `json:"month"`
	Incomes  decimal.Decimal `json:"incomes"`
	Expenses decimal.Decimal `json:"expenses"`
}

type AnnualReportResponse struct {
	Year     int              `json:"year"`
	Months   []MonthlyAmounts `json:"months"`
	Incomes  decimal.Decimal  `json:"incomes"`
	Expenses decimal.Decimal  `json:"expenses"`
}
