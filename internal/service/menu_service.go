package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"
	"foodcart360/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

const (
	menuCacheKey = "menu:active"
	menuCacheTTL = 5 * time.Minute
	// menuCacheLimit is the handler's default page size. Only that exact
	// page is cached; a request with a custom limit must never overwrite
	// the shared key with a truncated menu.
	menuCacheLimit = 100
)

type MenuService interface {
	Create(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	Delete(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) (*dto.MenuItemResponse, error)
	GetByID(ctx context.Context, id string) (*dto.MenuItemResponse, error)
	List(ctx context.Context, filter dto.MenuFilter) (*dto.MenuListResponse, error)
}

type menuService struct {
	repo repository.MenuRepository
	rdb  *redis.Client
}

func NewMenuService(repo repository.MenuRepository, rdb *redis.Client) MenuService {
	return &menuService{repo: repo, rdb: rdb}
}

func (s *menuService) Create(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item := &model.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Stock:       req.Stock,
		Active:      true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	s.invalidateCache(ctx)
	return menuToResponse(item), nil
}

func (s *menuService) Update(ctx context.Context, id string, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid menu item id: %w", err)
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return menuToResponse(item), nil
}

// Delete deactivates instead of removing: old orders keep referencing the row.
func (s *menuService) Delete(ctx context.Context, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid menu item id: %w", err)
	}
	if _, err := s.repo.FindByID(ctx, itemID); err != nil {
		return ErrMenuItemNotFound
	}
	if err := s.repo.SoftDelete(ctx, itemID); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *menuService) Reactivate(ctx context.Context, id string) (*dto.MenuItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid menu item id: %w", err)
	}
	if err := s.repo.Reactivate(ctx, itemID); err != nil {
		return nil, ErrMenuItemNotFound
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}
	s.invalidateCache(ctx)
	return menuToResponse(item), nil
}

func (s *menuService) GetByID(ctx context.Context, id string) (*dto.MenuItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid menu item id: %w", err)
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}
	return menuToResponse(item), nil
}

// List serves the POS order screen on every sale, so the unfiltered
// active-menu page is cached in Redis and invalidated on any menu write.
func (s *menuService) List(ctx context.Context, filter dto.MenuFilter) (*dto.MenuListResponse, error) {
	cacheable := s.rdb != nil &&
		filter.Category == "" && filter.Name == "" && filter.Active == "" &&
		filter.Page == 1 && filter.Limit == menuCacheLimit

	if cacheable {
		if raw, err := s.rdb.Get(ctx, menuCacheKey).Bytes(); err == nil {
			var cached dto.MenuListResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		data = append(data, *menuToResponse(&items[i]))
	}
	resp := &dto.MenuListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}

	if cacheable {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, menuCacheKey, raw, menuCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("menu cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *menuService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, menuCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("menu cache invalidation failed")
	}
}

func menuToResponse(m *model.MenuItem) *dto.MenuItemResponse {
	return &dto.MenuItemResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Price:       m.Price,
		Category:    m.Category,
		Description: m.Description,
		Stock:       m.Stock,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
