package service

import (
	"context"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"
	"foodcart360/internal/repository"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	GetProfile(ctx context.Context) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if req.Currency != nil {
		settings.Currency = *req.Currency
	}
	if req.TaxRatePct != nil {
		settings.TaxRatePct = *req.TaxRatePct
	}
	if req.LowStockAlerts != nil {
		settings.LowStockAlerts = *req.LowStockAlerts
	}
	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func (s *settingsService) GetProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	profile, err := s.repo.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	return profileToResponse(profile), nil
}

func (s *settingsService) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.repo.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if req.CartName != nil {
		profile.CartName = *req.CartName
	}
	if req.OwnerName != nil {
		profile.OwnerName = *req.OwnerName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.Email != nil {
		profile.Email = req.Email
	}
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profileToResponse(profile), nil
}

func settingsToResponse(s *model.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Currency:       s.Currency,
		TaxRatePct:     s.TaxRatePct,
		LowStockAlerts: s.LowStockAlerts,
	}
}

func profileToResponse(p *model.BusinessProfile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		CartName:  p.CartName,
		OwnerName: p.OwnerName,
		Phone:     p.Phone,
		Address:   p.Address,
		Email:     p.Email,
	}
}
