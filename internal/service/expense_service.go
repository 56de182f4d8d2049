package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"
	"foodcart360/internal/repository"

	"github.com/google/uuid"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
	now  func() time.Time
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo, now: time.Now}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	date := req.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	expense := &model.Expense{
		Category:     req.Category,
		Amount:       req.Amount,
		Description:  req.Description,
		BusinessDate: date,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expenseToResponse(expense), nil
}

func (s *expenseService) Delete(ctx context.Context, id string) error {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid expense id: %w", err)
	}
	if _, err := s.repo.FindByID(ctx, expenseID); err != nil {
		return errors.New("expense not found")
	}
	return s.repo.Delete(ctx, expenseID)
}

func (s *expenseService) List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	if filter.Date != "" {
		if _, ok := normalizeDate(filter.Date); !ok {
			return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", filter.Date)
		}
	}
	expenses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		data = append(data, *expenseToResponse(&expenses[i]))
	}
	return &dto.ExpenseListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:           e.ID.String(),
		Category:     e.Category,
		Amount:       e.Amount,
		Description:  e.Description,
		BusinessDate: e.BusinessDate,
		CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
