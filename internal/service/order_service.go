package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodcart360/internal/dto"
	"foodcart360/internal/infra"
	"foodcart360/internal/model"
	"foodcart360/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	Checkout(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	ReceiptPDF(ctx context.Context, id uuid.UUID, storagePath string) (string, error)
}

type orderService struct {
	repo         repository.OrderRepository
	menuRepo     repository.MenuRepository
	settingsRepo repository.SettingsRepository
	// now is injected for deterministic token dates in tests.
	now func() time.Time
}

func NewOrderService(
	repo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	settingsRepo repository.SettingsRepository,
) OrderService {
	return &orderService{repo: repo, menuRepo: menuRepo, settingsRepo: settingsRepo, now: time.Now}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Checkout ──────────────────────────────────────────────────────────────────
// Full transaction:
//   1. Resolve menu items, snapshot name+price, calc line subtotals
//   2. Apply tax from settings (rate fixed at sale time)
//   3. BEGIN TX: nextval token, create order+items, decrement menu stock
//   4. COMMIT

func (s *orderService) Checkout(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	// 1. Resolve menu items and calculate totals (pre-flight, outside TX)
	type resolvedItem struct {
		menuItemID uuid.UUID
		name       string
		price      decimal.Decimal
		quantity   int
		subtotal   decimal.Decimal
	}

	var resolved []resolvedItem
	subtotal := decimal.Zero

	for _, item := range req.Items {
		mid, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid menu_item_id: %w", err)
		}
		m, err := s.menuRepo.FindByID(ctx, mid)
		if err != nil {
			return nil, fmt.Errorf("menu item %s not found", item.MenuItemID)
		}
		if !m.Active {
			return nil, fmt.Errorf("menu item %s is inactive and cannot be sold", m.Name)
		}
		lineSubtotal := m.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineSubtotal)
		resolved = append(resolved, resolvedItem{
			menuItemID: mid,
			name:       m.Name,
			price:      m.Price,
			quantity:   item.Quantity,
			subtotal:   lineSubtotal,
		})
	}

	// 2. Tax rate comes from settings at checkout time; the stored total is
	// final and never re-derived from configuration on read.
	taxRate := decimal.Zero
	if settings, err := s.settingsRepo.GetSettings(ctx); err == nil {
		taxRate = settings.TaxRatePct
	}
	taxAmount := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(taxAmount)

	// 3. Transaction
	var order model.Order
	businessDate := s.now().Format("2006-01-02")
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		token, err := s.repo.NextTokenNumber(ctx, tx)
		if err != nil {
			return err
		}

		order = model.Order{
			TokenNumber:   token,
			Status:        model.OrderStatusPending,
			OrderType:     req.OrderType,
			PaymentMethod: req.PaymentMethod,
			CustomerName:  req.CustomerName,
			Note:          req.Note,
			Subtotal:      subtotal,
			TaxAmount:     taxAmount,
			Total:         total,
			BusinessDate:  businessDate,
			PrepMinutes:   req.PrepMinutes,
		}
		for _, r := range resolved {
			order.Items = append(order.Items, model.OrderItem{
				MenuItemID: r.menuItemID,
				Name:       r.name,
				UnitPrice:  r.price,
				Quantity:   r.quantity,
				Subtotal:   r.subtotal,
			})
		}

		if err := s.repo.Create(ctx, tx, &order); err != nil {
			return err
		}

		// Decrement menu stock. Street carts sell through rushes faster than
		// they restock counts, so stock may go negative rather than block sales.
		for _, r := range resolved {
			if err := s.menuRepo.UpdateStockTx(tx, r.menuItemID, -r.quantity); err != nil {
				return fmt.Errorf("stock update for %s: %w", r.name, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return orderToResponse(&order), nil
}

// ── Status lifecycle ──────────────────────────────────────────────────────────

// validTransitions lists the legal status moves made by staff action.
var validTransitions = map[string][]string{
	model.OrderStatusPending:   {model.OrderStatusPreparing, model.OrderStatusCompleted, model.OrderStatusCancelled},
	model.OrderStatusPreparing: {model.OrderStatusCompleted, model.OrderStatusCancelled},
	model.OrderStatusCompleted: {},
	model.OrderStatusCancelled: {},
}

func canTransition(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if !canTransition(order.Status, status) {
		return nil, fmt.Errorf("cannot move order from %s to %s", order.Status, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status
	return orderToResponse(order), nil
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("order not found")
	}
	return s.repo.Delete(ctx, id)
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("order not found")
	}
	return orderToResponse(order), nil
}

// List returns a paginated list of orders, filtered by date, status and type.
// Default filter: today's orders, all statuses.
func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ReceiptPDF renders the thermal-format receipt for an order and returns the
// file path. Cart name and currency come from the stored profile/settings.
func (s *orderService) ReceiptPDF(ctx context.Context, id uuid.UUID, storagePath string) (string, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("order not found")
	}
	cartName := "FoodCart360"
	currency := "INR"
	if profile, err := s.settingsRepo.GetProfile(ctx); err == nil {
		cartName = profile.CartName
	}
	if settings, err := s.settingsRepo.GetSettings(ctx); err == nil {
		currency = settings.Currency
	}
	return infra.GenerateReceiptPDF(order, cartName, currency, storagePath)
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			Subtotal:   item.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID.String(),
		TokenNumber:   o.TokenNumber,
		Status:        o.Status,
		OrderType:     o.OrderType,
		PaymentMethod: o.PaymentMethod,
		CustomerName:  o.CustomerName,
		Note:          o.Note,
		Items:         items,
		Subtotal:      o.Subtotal,
		TaxAmount:     o.TaxAmount,
		Total:         o.Total,
		BusinessDate:  o.BusinessDate,
		PrepMinutes:   o.PrepMinutes,
		CreatedAt:     o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
