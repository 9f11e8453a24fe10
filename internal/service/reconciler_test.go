package service_test

import (
	"testing"

	"github.com/jesusfb/carmu-api/internal/model"
	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/stretchr/testify/assert"
)

func ledgerOf(amounts ...string) []model.CashboxTransaction {
	txs := make([]model.CashboxTransaction, len(amounts))
	for i, a := range amounts {
		txs[i] = model.CashboxTransaction{Amount: dec(a)}
	}
	return txs
}

func TestReconcileExactCount(t *testing.T) {
	rec := service.Reconcile(dec("100000"), ledgerOf("50000", "-20000"), dec("130000"))

	assert.True(t, dec("50000").Equal(rec.Incomes))
	assert.True(t, dec("20000").Equal(rec.Expenses))
	assert.True(t, dec("130000").Equal(rec.Expected))
	assert.True(t, rec.Leftover.IsZero())
	assert.True(t, rec.Missing.IsZero())
}

func TestReconcileMissingCash(t *testing.T) {
	rec := service.Reconcile(dec("100000"), ledgerOf("50000", "-20000"), dec("120000"))

	assert.True(t, dec("10000").Equal(rec.Missing))
	assert.True(t, rec.Leftover.IsZero())
}

func TestReconcileLeftoverCash(t *testing.T) {
	rec := service.Reconcile(dec("100000"), ledgerOf("50000", "-20000"), dec("131500"))

	assert.True(t, dec("1500").Equal(rec.Leftover))
	assert.True(t, rec.Missing.IsZero())
}

func TestReconcileEmptyLedger(t *testing.T) {
	rec := service.Reconcile(dec("25000"), nil, dec("25000"))

	assert.True(t, rec.Incomes.IsZero())
	assert.True(t, rec.Expenses.IsZero())
	assert.True(t, dec("25000").Equal(rec.Expected))
	assert.True(t, rec.Leftover.IsZero())
	assert.True(t, rec.Missing.IsZero())
}

func TestReconcileCentPrecision(t *testing.T) {
	rec := service.Reconcile(dec("0.10"), ledgerOf("0.20"), dec("0.25"))

	assert.True(t, dec("0.30").Equal(rec.Expected))
	assert.True(t, dec("0.05").Equal(rec.Missing))
}

func TestReconcileLeftoverAndMissingAreExclusive(t *testing.T) {
	for _, counted := range []string{"0", "99999.99", "130000", "130000.01", "500000"} {
		rec := service.Reconcile(dec("100000"), ledgerOf("50000", "-20000"), dec(counted))
		assert.True(t, rec.Leftover.IsZero() || rec.Missing.IsZero(),
			"counted %s must not produce both leftover and missing", counted)
	}
}
