package service

import (
	"github.com/jesusfb/carmu-api/internal/model"

	"github.com/shopspring/decimal"
)

// Reconciliation is the arithmetic outcome of closing a session. Expenses
// come out as a positive magnitude; exactly one of Leftover/Missing is
// non-zero unless the count matched the expectation to the cent.
type Reconciliation struct {
	Incomes  decimal.Decimal
	Expenses decimal.Decimal
	Expected decimal.Decimal
	Leftover decimal.Decimal
	Missing  decimal.Decimal
}

// Reconcile derives the closing figures for a session: its declared base,
// the session ledger (signed amounts) and the physically counted cash.
// Pure arithmetic — no persistence, no clock, fully deterministic.
func Reconcile(base decimal.Decimal, ledger []model.CashboxTransaction, counted decimal.Decimal) Reconciliation {
	incomes := decimal.Zero
	expenses := decimal.Zero
	for _, tx := range ledger {
		if tx.Amount.IsNegative() {
			expenses = expenses.Add(tx.Amount.Neg())
		} else {
			incomes = incomes.Add(tx.Amount)
		}
	}

	expected := base.Add(incomes).Sub(expenses)
	delta := counted.Sub(expected)

	leftover := decimal.Zero
	missing := decimal.Zero
	if delta.IsPositive() {
		leftover = delta
	} else if delta.IsNegative() {
		missing = delta.Neg()
	}

	return Reconciliation{
		Incomes:  incomes,
		Expenses: expenses,
		Expected: expected,
		Leftover: leftover,
		Missing:  missing,
	}
}
