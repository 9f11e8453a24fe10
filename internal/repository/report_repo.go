package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyFlow is one month of aggregated ledger movement. Incomes and
// expenses come back as positive magnitudes.
type MonthlyFlow struct {
	Month    int
	Incomes  decimal.Decimal
	Expenses decimal.Decimal
}

// ReportRepository runs the aggregate queries behind the dashboard.
type ReportRepository interface {
	// MonthlyFlows aggregates every ledger entry of the given year by month,
	// both live-session entries and those already owned by closing records.
	// Transfers move money between boxes and are excluded.
	MonthlyFlows(ctx context.Context, year int) ([]MonthlyFlow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) MonthlyFlows(ctx context.Context, year int) ([]MonthlyFlow, error) {
	var rows []MonthlyFlow
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(MONTH FROM transaction_date)::int AS month,
		       COALESCE(SUM(CASE WHEN amount >= 0 THEN amount ELSE 0 END), 0)  AS incomes,
		       COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS expenses
		FROM cashbox_transactions
		WHERE EXTRACT(YEAR FROM transaction_date) = ?
		  AND is_transfer = false
		GROUP BY 1
		ORDER BY 1`, year).Scan(&rows).Error
	return rows, err
}
