package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jesusfb/carmu-api/internal/model"
	"github.com/jesusfb/carmu-api/internal/repository"
	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	flows map[int][]repository.MonthlyFlow
	calls int
}

func (r *fakeReportRepo) MonthlyFlows(_ context.Context, year int) ([]repository.MonthlyFlow, error) {
	r.calls++
	return r.flows[year], nil
}

func TestCashReportAggregatesOpenBoxes(t *testing.T) {
	boxes := newFakeCashboxRepo()
	ctx := context.Background()

	now := time.Now()
	name := "Carolina"
	require.NoError(t, boxes.Create(ctx, &model.Cashbox{
		Name: "Caja 1", Base: dec("100000"), Balance: dec("150000"),
		OpenedAt: &now, CashierName: &name,
	}))
	require.NoError(t, boxes.Create(ctx, &model.Cashbox{
		Name: "Caja 2", Base: dec("50000"), Balance: dec("40000"),
		OpenedAt: &now,
	}))
	require.NoError(t, boxes.Create(ctx, &model.Cashbox{Name: "Caja 3"}))

	svc := service.NewDashboardService(boxes, &fakeReportRepo{}, nil)
	resp, err := svc.CashReport(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.OpenBoxes)
	assert.Equal(t, 1, resp.ClosedBoxes)
	assert.True(t, dec("150000").Equal(resp.TotalBase))
	assert.True(t, dec("190000").Equal(resp.TotalBalance))
	assert.Len(t, resp.Boxes, 3)
}

func TestAnnualReportFillsTwelveMonths(t *testing.T) {
	reports := &fakeReportRepo{flows: map[int][]repository.MonthlyFlow{
		2025: {
			{Month: 1, Incomes: dec("300000"), Expenses: dec("120000")},
			{Month: 7, Incomes: dec("90000"), Expenses: dec("10000")},
		},
	}}
	svc := service.NewDashboardService(newFakeCashboxRepo(), reports, nil)

	resp, err := svc.AnnualReport(context.Background(), 2025, "")
	require.NoError(t, err)

	require.Len(t, resp.Months, 12)
	assert.True(t, dec("300000").Equal(resp.Months[0].Incomes))
	assert.True(t, resp.Months[1].Incomes.IsZero(), "months without movement stay at zero")
	assert.True(t, dec("90000").Equal(resp.Months[6].Incomes))
	assert.True(t, dec("390000").Equal(resp.Incomes))
	assert.True(t, dec("130000").Equal(resp.Expenses))
}

func TestAnnualReportFiltersByOperation(t *testing.T) {
	reports := &fakeReportRepo{flows: map[int][]repository.MonthlyFlow{
		2025: {
			{Month: 3, Incomes: dec("200000"), Expenses: dec("80000")},
		},
	}}
	svc := service.NewDashboardService(newFakeCashboxRepo(), reports, nil)

	resp, err := svc.AnnualReport(context.Background(), 2025, "income")
	require.NoError(t, err)
	assert.True(t, dec("200000").Equal(resp.Incomes))
	assert.True(t, resp.Expenses.IsZero())
	assert.True(t, resp.Months[2].Expenses.IsZero())

	_, err = svc.AnnualReport(context.Background(), 2025, "ventas")
	var validation *service.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestAnnualReportRejectsOutOfRangeYear(t *testing.T) {
	svc := service.NewDashboardService(newFakeCashboxRepo(), &fakeReportRepo{}, nil)

	_, err := svc.AnnualReport(context.Background(), 1995, "")
	var validation *service.ValidationError
	assert.ErrorAs(t, err, &validation)
}
