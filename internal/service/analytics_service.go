package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"
	"foodcart360/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// topItemsLimit caps the best-sellers list in the daily summary.
const topItemsLimit = 5

// maxRangeDays bounds the range report: each day in the span is folded
// separately, so an unbounded range would grind the request goroutine.
const maxRangeDays = 366

// AnalyticsService computes read-only aggregates from orders, expenses and
// inventory. Summaries are never persisted — always recomputed on demand.
type AnalyticsService interface {
	DailySummary(ctx context.Context, date string) (*dto.DailySummaryResponse, error)
	RangeSummary(ctx context.Context, start, end string) (*dto.RangeSummaryResponse, error)
}

type analyticsService struct {
	orderRepo     repository.OrderRepository
	expenseRepo   repository.ExpenseRepository
	inventoryRepo repository.InventoryRepository
}

func NewAnalyticsService(
	orderRepo repository.OrderRepository,
	expenseRepo repository.ExpenseRepository,
	inventoryRepo repository.InventoryRepository,
) AnalyticsService {
	return &analyticsService{
		orderRepo:     orderRepo,
		expenseRepo:   expenseRepo,
		inventoryRepo: inventoryRepo,
	}
}

// normalizeDate parses a YYYY-MM-DD string and returns it re-formatted.
// The bool is false for absent or malformed dates — callers treat those as
// non-matching rather than failing the whole computation.
func normalizeDate(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// ComputeDailySummary folds one day's orders and expenses into totals and
// rankings. Pure: no side effects, no storage access.
//
// Rules:
//   - Orders/expenses with absent or malformed dates are excluded, never a parse error.
//   - Cancelled orders do not count toward revenue or item totals.
//   - AverageOrderValue is 0 when there are no orders (explicit guard, no NaN).
//   - TopItems ties keep first-seen order across the day's line items
//     (stable sort over grouping-insertion order).
//   - LowStock is inclusive at the boundary: stock == minStock is low.
func ComputeDailySummary(
	orders []model.Order,
	expenses []model.Expense,
	inventory []model.InventoryItem,
	referenceDate string,
) *dto.DailySummaryResponse {
	refDate, refOK := normalizeDate(referenceDate)

	summary := &dto.DailySummaryResponse{
		Date:              refDate,
		Revenue:           decimal.Zero,
		ExpenseTotal:      decimal.Zero,
		Profit:            decimal.Zero,
		AverageOrderValue: decimal.Zero,
		TopItems:          []dto.ItemAggregate{},
		LowStock:          []dto.LowStockAlertResponse{},
		PaymentBreakdown:  map[string]decimal.Decimal{},
	}

	// Item aggregates keyed by menu item id; aggOrder preserves first-seen
	// order so the quantity sort can break ties stably.
	aggs := make(map[string]*dto.ItemAggregate)
	var aggOrder []string

	for i := range orders {
		o := &orders[i]
		date, ok := normalizeDate(o.BusinessDate)
		if !ok || !refOK || date != refDate {
			continue
		}
		if o.Status == model.OrderStatusCancelled {
			continue
		}

		summary.Revenue = summary.Revenue.Add(o.Total)
		summary.OrderCount++
		summary.PaymentBreakdown[o.PaymentMethod] = summary.PaymentBreakdown[o.PaymentMethod].Add(o.Total)

		for _, item := range o.Items {
			key := item.MenuItemID.String()
			agg, exists := aggs[key]
			if !exists {
				agg = &dto.ItemAggregate{MenuItemID: key, Name: item.Name, Revenue: decimal.Zero}
				aggs[key] = agg
				aggOrder = append(aggOrder, key)
			}
			agg.Quantity += item.Quantity
			agg.Revenue = agg.Revenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	for i := range expenses {
		e := &expenses[i]
		date, ok := normalizeDate(e.BusinessDate)
		if !ok || !refOK || date != refDate {
			continue
		}
		summary.ExpenseTotal = summary.ExpenseTotal.Add(e.Amount)
	}

	summary.Profit = summary.Revenue.Sub(summary.ExpenseTotal)

	// Division-by-zero guard: an empty day reports 0, never NaN/Infinity.
	if summary.OrderCount > 0 {
		summary.AverageOrderValue = summary.Revenue.
			Div(decimal.NewFromInt(int64(summary.OrderCount))).Round(2)
	}

	ranked := make([]dto.ItemAggregate, 0, len(aggOrder))
	for _, key := range aggOrder {
		ranked = append(ranked, *aggs[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})
	if len(ranked) > topItemsLimit {
		ranked = ranked[:topItemsLimit]
	}
	summary.TopItems = ranked

	summary.LowStock = rankLowStock(inventory)

	return summary
}

// rankLowStock filters items at or below threshold and orders them by how far
// below threshold they are, worst first. Equal deficits keep input order.
func rankLowStock(inventory []model.InventoryItem) []dto.LowStockAlertResponse {
	alerts := []dto.LowStockAlertResponse{}
	for i := range inventory {
		item := &inventory[i]
		if !item.IsLowStock() {
			continue
		}
		alerts = append(alerts, dto.LowStockAlertResponse{
			ID:       item.ID.String(),
			Name:     item.Name,
			Stock:    item.Stock,
			MinStock: item.MinStock,
			Unit:     item.Unit,
			Deficit:  item.MinStock.Sub(item.Stock),
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Deficit.GreaterThan(alerts[j].Deficit)
	})
	return alerts
}

// ComputePeakHours buckets orders into 24 hour-of-day slots and returns the
// non-empty buckets ordered by hour.
func ComputePeakHours(orders []model.Order) []dto.PeakHourBucket {
	var buckets [24]dto.PeakHourBucket
	for h := range buckets {
		buckets[h].Hour = h
		buckets[h].Revenue = decimal.Zero
	}
	for i := range orders {
		o := &orders[i]
		if o.Status == model.OrderStatusCancelled {
			continue
		}
		h := o.CreatedAt.Hour()
		buckets[h].OrderCount++
		buckets[h].Revenue = buckets[h].Revenue.Add(o.Total)
	}
	result := []dto.PeakHourBucket{}
	for h := range buckets {
		if buckets[h].OrderCount > 0 {
			result = append(result, buckets[h])
		}
	}
	return result
}

// ── Service implementation ────────────────────────────────────────────────────

// DailySummary loads the day's collections and folds them. Storage-read
// failures degrade to empty collections so the report renders "no data"
// instead of erroring.
func (s *analyticsService) DailySummary(ctx context.Context, date string) (*dto.DailySummaryResponse, error) {
	if _, ok := normalizeDate(date); !ok {
		return nil, errors.New("invalid date, expected YYYY-MM-DD")
	}

	orders, err := s.orderRepo.ListByDate(ctx, date)
	if err != nil {
		log.Warn().Err(err).Str("date", date).Msg("analytics: orders read failed, using empty set")
		orders = nil
	}
	expenses, err := s.expenseRepo.ListByDate(ctx, date)
	if err != nil {
		log.Warn().Err(err).Str("date", date).Msg("analytics: expenses read failed, using empty set")
		expenses = nil
	}
	inventory, err := s.inventoryRepo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("analytics: inventory read failed, using empty set")
		inventory = nil
	}

	return ComputeDailySummary(orders, expenses, inventory, date), nil
}

func (s *analyticsService) RangeSummary(ctx context.Context, start, end string) (*dto.RangeSummaryResponse, error) {
	startDay, okStart := normalizeDate(start)
	endDay, okEnd := normalizeDate(end)
	if !okStart || !okEnd || startDay > endDay {
		return nil, errors.New("invalid date range, expected start <= end in YYYY-MM-DD")
	}
	startT, _ := time.Parse("2006-01-02", startDay)
	endT, _ := time.Parse("2006-01-02", endDay)
	if endT.Sub(startT) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("date range too large, maximum is %d days", maxRangeDays)
	}

	orders, err := s.orderRepo.ListByDateRange(ctx, startDay, endDay)
	if err != nil {
		log.Warn().Err(err).Msg("analytics: range orders read failed, using empty set")
		orders = nil
	}
	expenses, err := s.expenseRepo.ListByDateRange(ctx, startDay, endDay)
	if err != nil {
		log.Warn().Err(err).Msg("analytics: range expenses read failed, using empty set")
		expenses = nil
	}
	inventory, err := s.inventoryRepo.List(ctx)
	if err != nil {
		inventory = nil
	}

	resp := &dto.RangeSummaryResponse{
		StartDate:    startDay,
		EndDate:      endDay,
		Revenue:      decimal.Zero,
		ExpenseTotal: decimal.Zero,
		PeakHours:    ComputePeakHours(orders),
	}

	for d := startT; !d.After(endT); d = d.AddDate(0, 0, 1) {
		day := ComputeDailySummary(orders, expenses, inventory, d.Format("2006-01-02"))
		resp.Days = append(resp.Days, *day)
		resp.Revenue = resp.Revenue.Add(day.Revenue)
		resp.ExpenseTotal = resp.ExpenseTotal.Add(day.ExpenseTotal)
		resp.OrderCount += day.OrderCount
	}
	resp.Profit = resp.Revenue.Sub(resp.ExpenseTotal)

	return resp, nil
}
