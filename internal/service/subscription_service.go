package service

import (
	"context"
	"errors"
	"time"

	"foodcart360/internal/dto"
	"foodcart360/internal/infra"
	"foodcart360/internal/repository"

	"github.com/rs/zerolog/log"
)

var (
	ErrTrialAlreadyStarted = errors.New("trial already started")
	ErrBillingUnavailable  = errors.New("billing provider unavailable")
)

// SubscriptionService owns the trial window and the premium entitlement flag.
// State resolution is pure and takes an explicit reference time so the same
// rules apply at a handler, in a worker, and in tests.
type SubscriptionService interface {
	Status(ctx context.Context) (*dto.SubscriptionStatusResponse, error)
	StartTrial(ctx context.Context) (*dto.SubscriptionStatusResponse, error)
	Activate(ctx context.Context, req dto.ActivateSubscriptionRequest) (*dto.SubscriptionStatusResponse, error)
	RefreshEntitlement(ctx context.Context) error
	Plans(ctx context.Context) ([]dto.PlanResponse, error)
	HasPremiumAccess(ctx context.Context) (bool, error)
}

type subscriptionService struct {
	repo      repository.SettingsRepository
	billing   *infra.BillingClient
	trialDays int
	now       func() time.Time
}

func NewSubscriptionService(repo repository.SettingsRepository, billing *infra.BillingClient, trialDays int) SubscriptionService {
	return &subscriptionService{repo: repo, billing: billing, trialDays: trialDays, now: time.Now}
}

// ResolveGateState classifies the entitlement at the given instant. A paid
// subscription always wins; otherwise the trial window decides. The window is
// measured in whole durations, so a trial is active strictly before
// trialStart + days×24h and expired at that instant and after.
func ResolveGateState(trialStart *time.Time, subscribed bool, trialDays int, now time.Time) (state string, daysLeft int) {
	if subscribed {
		return dto.GateSubscribed, 0
	}
	if trialStart == nil {
		return dto.GateNoTrial, 0
	}
	window := time.Duration(trialDays) * 24 * time.Hour
	elapsed := now.Sub(*trialStart)
	if elapsed < window {
		remaining := window - elapsed
		// partial days count as a full day left
		daysLeft = int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
		return dto.GateTrialActive, daysLeft
	}
	return dto.GateTrialExpired, 0
}

func (s *subscriptionService) statusResponse(ctx context.Context) (*dto.SubscriptionStatusResponse, error) {
	sub, err := s.repo.GetSubscription(ctx)
	if err != nil {
		return nil, err
	}
	state, daysLeft := ResolveGateState(sub.TrialStartedAt, sub.Subscribed, s.trialDays, s.now())
	resp := &dto.SubscriptionStatusResponse{
		State:         state,
		PlanID:        sub.PlanID,
		PremiumAccess: state == dto.GateSubscribed || state == dto.GateTrialActive,
	}
	if state == dto.GateTrialActive {
		resp.TrialDaysLeft = &daysLeft
	}
	return resp, nil
}

func (s *subscriptionService) Status(ctx context.Context) (*dto.SubscriptionStatusResponse, error) {
	return s.statusResponse(ctx)
}

func (s *subscriptionService) StartTrial(ctx context.Context) (*dto.SubscriptionStatusResponse, error) {
	sub, err := s.repo.GetSubscription(ctx)
	if err != nil {
		return nil, err
	}
	if sub.TrialStartedAt != nil {
		return nil, ErrTrialAlreadyStarted
	}
	started := s.now()
	sub.TrialStartedAt = &started
	if err := s.repo.SaveSubscription(ctx, sub); err != nil {
		return nil, err
	}
	log.Info().Time("trial_started_at", started).Int("trial_days", s.trialDays).Msg("trial started")
	return s.statusResponse(ctx)
}

// Activate verifies the purchase with the billing provider before flipping the
// local flag. A provider failure leaves the local state untouched.
func (s *subscriptionService) Activate(ctx context.Context, req dto.ActivateSubscriptionRequest) (*dto.SubscriptionStatusResponse, error) {
	if err := s.billing.ActivateSubscription(ctx, req.PlanID, req.PurchaseToken); err != nil {
		log.Error().Err(err).Str("plan_id", req.PlanID).Msg("subscription activation rejected")
		return nil, ErrBillingUnavailable
	}
	sub, err := s.repo.GetSubscription(ctx)
	if err != nil {
		return nil, err
	}
	verified := s.now()
	sub.Subscribed = true
	sub.PlanID = &req.PlanID
	sub.LastVerifiedAt = &verified
	if err := s.repo.SaveSubscription(ctx, sub); err != nil {
		return nil, err
	}
	log.Info().Str("plan_id", req.PlanID).Msg("subscription activated")
	return s.statusResponse(ctx)
}

// RefreshEntitlement re-checks the remote entitlement and reconciles the local
// flag. Called by the periodic worker; provider outages keep the last known
// state rather than locking the owner out.
func (s *subscriptionService) RefreshEntitlement(ctx context.Context) error {
	active, planID, err := s.billing.IsActive(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("entitlement refresh skipped, provider unreachable")
		return nil
	}
	sub, err := s.repo.GetSubscription(ctx)
	if err != nil {
		return err
	}
	verified := s.now()
	if sub.Subscribed != active {
		log.Info().Bool("subscribed", active).Msg("entitlement changed at provider")
	}
	sub.Subscribed = active
	if active && planID != nil {
		sub.PlanID = planID
	}
	sub.LastVerifiedAt = &verified
	return s.repo.SaveSubscription(ctx, sub)
}

func (s *subscriptionService) Plans(ctx context.Context) ([]dto.PlanResponse, error) {
	plans, err := s.billing.ListPlans(ctx)
	if err != nil {
		return nil, ErrBillingUnavailable
	}
	resp := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, dto.PlanResponse{
			ID:          p.ID,
			Name:        p.Name,
			PriceLabel:  p.PriceLabel,
			PeriodLabel: p.PeriodLabel,
		})
	}
	return resp, nil
}

func (s *subscriptionService) HasPremiumAccess(ctx context.Context) (bool, error) {
	resp, err := s.statusResponse(ctx)
	if err != nil {
		return false, err
	}
	return resp.PremiumAccess, nil
}
