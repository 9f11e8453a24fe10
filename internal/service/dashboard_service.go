package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// annualReportTTL bounds staleness of the cached annual report. The report
// aggregates the whole year, so a few minutes of lag is acceptable.
const annualReportTTL = 5 * time.Minute

type DashboardService interface {
	CashReport(ctx context.Context) (*dto.CashReportResponse, error)
	AnnualReport(ctx context.Context, year int, operation string) (*dto.AnnualReportResponse, error)
}

type dashboardService struct {
	boxes   repository.CashboxRepository
	reports repository.ReportRepository
	rdb     *redis.Client
}

func NewDashboardService(boxes repository.CashboxRepository, reports repository.ReportRepository, rdb *redis.Client) DashboardService {
	return &dashboardService{boxes: boxes, reports: reports, rdb: rdb}
}

func (s *dashboardService) CashReport(ctx context.Context) (*dto.CashReportResponse, error) {
	boxes, err := s.boxes.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.CashReportResponse{
		TotalBase:    decimal.Zero,
		TotalBalance: decimal.Zero,
		Boxes:        make([]dto.CashReportBox, len(boxes)),
	}
	for i := range boxes {
		box := &boxes[i]
		open := box.IsOpen()
		if open {
			resp.OpenBoxes++
			resp.TotalBase = resp.TotalBase.Add(box.Base)
			resp.TotalBalance = resp.TotalBalance.Add(box.Balance)
		} else {
			resp.ClosedBoxes++
		}
		resp.Boxes[i] = dto.CashReportBox{
			ID:          box.ID.String(),
			Name:        box.Name,
			CashierName: box.CashierName,
			Open:        open,
			Base:        box.Base,
			Balance:     box.Balance,
		}
	}
	return resp, nil
}

// AnnualReport aggregates closing records by month. operation narrows the
// report to a single flow ("income" or "expense"); empty means both.
func (s *dashboardService) AnnualReport(ctx context.Context, year int, operation string) (*dto.AnnualReportResponse, error) {
	if year < 2000 || year > time.Now().Year() {
		return nil, Invalid("year", "Año fuera de rango")
	}
	switch operation {
	case "", "income", "expense":
	default:
		return nil, Invalid("operation", "Operación inválida")
	}

	cacheKey := fmt.Sprintf("dashboard:annual:%d:%s", year, operation)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	flows, err := s.reports.MonthlyFlows(ctx, year)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnnualReportResponse{
		Year:     year,
		Months:   make([]dto.MonthlyAmounts, 12),
		Incomes:  decimal.Zero,
		Expenses: decimal.Zero,
	}
	for i := range resp.Months {
		resp.Months[i] = dto.MonthlyAmounts{
			Month:    i + 1,
			Incomes:  decimal.Zero,
			Expenses: decimal.Zero,
		}
	}
	for _, f := range flows {
		if f.Month < 1 || f.Month > 12 {
			continue
		}
		m := &resp.Months[f.Month-1]
		if operation != "expense" {
			m.Incomes = f.Incomes
			resp.Incomes = resp.Incomes.Add(f.Incomes)
		}
		if operation != "income" {
			m.Expenses = f.Expenses
			resp.Expenses = resp.Expenses.Add(f.Expenses)
		}
	}

	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// cacheGet returns nil on any miss or cache failure; the dashboard never fails
// because Redis is down.
func (s *dashboardService) cacheGet(ctx context.Context, key string) *dto.AnnualReportResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("annual report cache read failed")
		}
		return nil
	}
	var resp dto.AnnualReportResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *dashboardService) cacheSet(ctx context.Context, key string, resp *dto.AnnualReportResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, annualReportTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("annual report cache write failed")
	}
}
