package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"foodcart360/internal/model"
	"foodcart360/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDay = "2026-08-30"

func makeOrder(date string, total float64, payment string, items ...model.OrderItem) model.Order {
	return model.Order{
		ID:            uuid.New(),
		Status:        model.OrderStatusCompleted,
		PaymentMethod: payment,
		Total:         decimal.NewFromFloat(total),
		BusinessDate:  date,
		Items:         items,
	}
}

func makeLine(id uuid.UUID, name string, price float64, qty int) model.OrderItem {
	p := decimal.NewFromFloat(price)
	return model.OrderItem{
		MenuItemID: id,
		Name:       name,
		UnitPrice:  p,
		Quantity:   qty,
		Subtotal:   p.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestDailySummaryTotals(t *testing.T) {
	vadaPav := uuid.New()
	chai := uuid.New()
	orders := []model.Order{
		makeOrder(testDay, 100, model.PaymentCash, makeLine(vadaPav, "Vada Pav", 25, 4)),
		makeOrder(testDay, 50, model.PaymentUPI, makeLine(chai, "Chai", 10, 5)),
	}
	expenses := []model.Expense{
		{ID: uuid.New(), Category: model.ExpenseRawMaterial, Amount: decimal.NewFromInt(40), BusinessDate: testDay},
	}

	s := service.ComputeDailySummary(orders, expenses, nil, testDay)

	assert.True(t, s.Revenue.Equal(decimal.NewFromInt(150)), "revenue: %s", s.Revenue)
	assert.True(t, s.ExpenseTotal.Equal(decimal.NewFromInt(40)))
	assert.True(t, s.Profit.Equal(decimal.NewFromInt(110)), "profit must equal revenue minus expenses")
	assert.Equal(t, 2, s.OrderCount)
	assert.True(t, s.AverageOrderValue.Equal(decimal.NewFromInt(75)))
	assert.True(t, s.PaymentBreakdown[model.PaymentCash].Equal(decimal.NewFromInt(100)))
	assert.True(t, s.PaymentBreakdown[model.PaymentUPI].Equal(decimal.NewFromInt(50)))
}

func TestDailySummaryEmptyDay(t *testing.T) {
	s := service.ComputeDailySummary(nil, nil, nil, testDay)

	assert.Equal(t, 0, s.OrderCount)
	assert.True(t, s.Revenue.IsZero())
	// No orders must yield 0, not a division error.
	assert.True(t, s.AverageOrderValue.IsZero())
	assert.Empty(t, s.TopItems)
	assert.Empty(t, s.LowStock)
}

func TestDailySummaryExcludesCancelled(t *testing.T) {
	item := uuid.New()
	cancelled := makeOrder(testDay, 500, model.PaymentCash, makeLine(item, "Dosa", 50, 10))
	cancelled.Status = model.OrderStatusCancelled
	kept := makeOrder(testDay, 60, model.PaymentCash, makeLine(item, "Dosa", 50, 1))

	s := service.ComputeDailySummary([]model.Order{cancelled, kept}, nil, nil, testDay)

	assert.Equal(t, 1, s.OrderCount)
	assert.True(t, s.Revenue.Equal(decimal.NewFromInt(60)))
	require.Len(t, s.TopItems, 1)
	assert.Equal(t, 1, s.TopItems[0].Quantity, "cancelled order lines must not count")
}

func TestDailySummarySkipsMalformedDates(t *testing.T) {
	orders := []model.Order{
		makeOrder(testDay, 100, model.PaymentCash),
		makeOrder("30/08/2026", 999, model.PaymentCash),
		makeOrder("", 999, model.PaymentCash),
	}
	expenses := []model.Expense{
		{Amount: decimal.NewFromInt(10), BusinessDate: testDay},
		{Amount: decimal.NewFromInt(999), BusinessDate: "not-a-date"},
	}

	s := service.ComputeDailySummary(orders, expenses, nil, testDay)

	assert.Equal(t, 1, s.OrderCount)
	assert.True(t, s.Revenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.ExpenseTotal.Equal(decimal.NewFromInt(10)))
}

func TestTopItemsTruncationAndStableTies(t *testing.T) {
	// Seven distinct items; two of them tie on quantity. The tie must keep
	// first-seen order and the list must stop at five.
	var lines []model.OrderItem
	ids := make([]uuid.UUID, 7)
	for i := range ids {
		ids[i] = uuid.New()
	}
	// quantities: 10, 9, 5, 5, 4, 3, 2 — "Tie A" is seen before "Tie B"
	lines = append(lines,
		makeLine(ids[0], "Pav Bhaji", 60, 10),
		makeLine(ids[1], "Samosa", 15, 9),
		makeLine(ids[2], "Tie A", 20, 5),
		makeLine(ids[3], "Tie B", 20, 5),
		makeLine(ids[4], "Chai", 10, 4),
		makeLine(ids[5], "Lassi", 30, 3),
		makeLine(ids[6], "Jalebi", 25, 2),
	)
	s := service.ComputeDailySummary([]model.Order{makeOrder(testDay, 800, model.PaymentCash, lines...)}, nil, nil, testDay)

	require.Len(t, s.TopItems, 5)
	assert.Equal(t, "Pav Bhaji", s.TopItems[0].Name)
	assert.Equal(t, "Tie A", s.TopItems[2].Name)
	assert.Equal(t, "Tie B", s.TopItems[3].Name)
	assert.Equal(t, "Chai", s.TopItems[4].Name)
}

func TestTopItemsAggregateAcrossOrders(t *testing.T) {
	chai := uuid.New()
	orders := []model.Order{
		makeOrder(testDay, 30, model.PaymentCash, makeLine(chai, "Chai", 10, 3)),
		makeOrder(testDay, 20, model.PaymentUPI, makeLine(chai, "Chai", 10, 2)),
	}
	s := service.ComputeDailySummary(orders, nil, nil, testDay)

	require.Len(t, s.TopItems, 1)
	assert.Equal(t, 5, s.TopItems[0].Quantity)
	assert.True(t, s.TopItems[0].Revenue.Equal(decimal.NewFromInt(50)))
}

func TestLowStockBoundaryInclusive(t *testing.T) {
	inventory := []model.InventoryItem{
		{ID: uuid.New(), Name: "Oil", Stock: decimal.NewFromInt(5), MinStock: decimal.NewFromInt(5), Unit: "l"},
		{ID: uuid.New(), Name: "Flour", Stock: decimal.NewFromFloat(5.001), MinStock: decimal.NewFromInt(5), Unit: "kg"},
		{ID: uuid.New(), Name: "Cups", Stock: decimal.NewFromInt(0), MinStock: decimal.NewFromInt(100), Unit: "pcs"},
	}
	s := service.ComputeDailySummary(nil, nil, inventory, testDay)

	require.Len(t, s.LowStock, 2)
	// Worst deficit first: Cups are 100 short, Oil exactly at threshold.
	assert.Equal(t, "Cups", s.LowStock[0].Name)
	assert.True(t, s.LowStock[0].Deficit.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Oil", s.LowStock[1].Name)
	assert.True(t, s.LowStock[1].Deficit.IsZero())
}

func TestComputePeakHours(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 8, 30, hour, 15, 0, 0, time.UTC)
	}
	o1 := makeOrder(testDay, 100, model.PaymentCash)
	o1.CreatedAt = at(13)
	o2 := makeOrder(testDay, 50, model.PaymentCash)
	o2.CreatedAt = at(13)
	o3 := makeOrder(testDay, 30, model.PaymentUPI)
	o3.CreatedAt = at(19)
	skipped := makeOrder(testDay, 999, model.PaymentCash)
	skipped.CreatedAt = at(13)
	skipped.Status = model.OrderStatusCancelled

	buckets := service.ComputePeakHours([]model.Order{o1, o2, o3, skipped})

	require.Len(t, buckets, 2)
	assert.Equal(t, 13, buckets[0].Hour)
	assert.Equal(t, 2, buckets[0].OrderCount)
	assert.True(t, buckets[0].Revenue.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 19, buckets[1].Hour)
	assert.Equal(t, 1, buckets[1].OrderCount)
}

func TestDailySummaryServiceRejectsBadDate(t *testing.T) {
	svc := service.NewAnalyticsService(newStubOrderRepo(), newStubExpenseRepo(), newStubInventoryRepo())

	_, err := svc.DailySummary(context.Background(), "30-08-2026")
	assert.Error(t, err)
}

func TestRangeSummaryAggregatesDays(t *testing.T) {
	orderRepo := newStubOrderRepo()
	expenseRepo := newStubExpenseRepo()
	for i, day := range []string{"2026-08-28", "2026-08-29", "2026-08-30"} {
		o := makeOrder(day, float64(100*(i+1)), model.PaymentCash)
		require.NoError(t, orderRepo.Create(context.Background(), nil, &o))
		require.NoError(t, expenseRepo.Create(context.Background(), &model.Expense{
			Category:     model.ExpenseWages,
			Amount:       decimal.NewFromInt(50),
			BusinessDate: day,
		}))
	}
	svc := service.NewAnalyticsService(orderRepo, expenseRepo, newStubInventoryRepo())

	got, err := svc.RangeSummary(context.Background(), "2026-08-28", "2026-08-30")
	require.NoError(t, err)

	assert.True(t, got.Revenue.Equal(decimal.NewFromInt(600)), "revenue: %s", got.Revenue)
	assert.True(t, got.ExpenseTotal.Equal(decimal.NewFromInt(150)))
	assert.True(t, got.Profit.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, 3, got.OrderCount)
	require.Len(t, got.Days, 3)
	for i, day := range got.Days {
		assert.Equal(t, fmt.Sprintf("2026-08-%d", 28+i), day.Date)
	}
}

func TestRangeSummaryRejectsOversizedRange(t *testing.T) {
	svc := service.NewAnalyticsService(newStubOrderRepo(), newStubExpenseRepo(), newStubInventoryRepo())

	_, err := svc.RangeSummary(context.Background(), "2020-01-01", "2026-12-31")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date range too large")

	// A full year is still served.
	got, err := svc.RangeSummary(context.Background(), "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	assert.Len(t, got.Days, 365)
}
