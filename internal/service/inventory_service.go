package service

import (
	"context"
	"errors"
	"fmt"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"
	"foodcart360/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInventoryNotFound = errors.New("inventory item not found")

type InventoryService interface {
	Create(ctx context.Context, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error)
	AdjustStock(ctx context.Context, id string, req dto.AdjustStockRequest) (*dto.InventoryItemResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]dto.InventoryItemResponse, error)
	LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertResponse, error)
}

type inventoryService struct {
	repo repository.InventoryRepository
}

func NewInventoryService(repo repository.InventoryRepository) InventoryService {
	return &inventoryService{repo: repo}
}

func (s *inventoryService) Create(ctx context.Context, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item := &model.InventoryItem{
		Name:      req.Name,
		Stock:     req.Stock,
		Unit:      req.Unit,
		MinStock:  req.MinStock,
		CostPrice: req.CostPrice,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create inventory item: %w", err)
	}
	return inventoryToResponse(item), nil
}

// Update applies only the fields present in the request.
func (s *inventoryService) Update(ctx context.Context, id string, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid inventory id: %w", err)
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, ErrInventoryNotFound
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}
	if req.CostPrice != nil {
		item.CostPrice = *req.CostPrice
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return inventoryToResponse(item), nil
}

// AdjustStock adds a signed delta atomically. The result is clamped at zero:
// usage can never drive raw-material stock negative.
func (s *inventoryService) AdjustStock(ctx context.Context, id string, req dto.AdjustStockRequest) (*dto.InventoryItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid inventory id: %w", err)
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, ErrInventoryNotFound
	}
	delta := req.Delta
	if item.Stock.Add(delta).IsNegative() {
		delta = item.Stock.Neg()
	}
	if err := s.repo.AdjustStock(ctx, itemID, delta); err != nil {
		return nil, err
	}
	item.Stock = item.Stock.Add(delta)
	return inventoryToResponse(item), nil
}

func (s *inventoryService) Delete(ctx context.Context, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid inventory id: %w", err)
	}
	if _, err := s.repo.FindByID(ctx, itemID); err != nil {
		return ErrInventoryNotFound
	}
	return s.repo.Delete(ctx, itemID)
}

func (s *inventoryService) List(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, *inventoryToResponse(&items[i]))
	}
	return resp, nil
}

func (s *inventoryService) LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertResponse, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlertResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		deficit := item.MinStock.Sub(item.Stock)
		if deficit.IsNegative() {
			deficit = decimal.Zero
		}
		alerts = append(alerts, dto.LowStockAlertResponse{
			ID:       item.ID.String(),
			Name:     item.Name,
			Stock:    item.Stock,
			MinStock: item.MinStock,
			Unit:     item.Unit,
			Deficit:  deficit,
		})
	}
	return alerts, nil
}

func inventoryToResponse(i *model.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:        i.ID.String(),
		Name:      i.Name,
		Stock:     i.Stock,
		Unit:      i.Unit,
		MinStock:  i.MinStock,
		CostPrice: i.CostPrice,
		LowStock:  i.IsLowStock(),
		CreatedAt: i.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
