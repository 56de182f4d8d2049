package tests

import (
	"context"
	"testing"
	"time"

	"foodcart360/internal/dto"
	"foodcart360/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trialDays = 7

func TestResolveGateStateNoTrial(t *testing.T) {
	state, daysLeft := service.ResolveGateState(nil, false, trialDays, time.Now())

	assert.Equal(t, dto.GateNoTrial, state)
	assert.Equal(t, 0, daysLeft)
}

func TestResolveGateStateTrialWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		elapsed  time.Duration
		state    string
		daysLeft int
	}{
		{"just started", time.Minute, dto.GateTrialActive, 7},
		{"one day in", 24 * time.Hour, dto.GateTrialActive, 6},
		{"last hour", 7*24*time.Hour - time.Hour, dto.GateTrialActive, 1},
		{"exactly at boundary", 7 * 24 * time.Hour, dto.GateTrialExpired, 0},
		{"well past", 30 * 24 * time.Hour, dto.GateTrialExpired, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := now.Add(-tc.elapsed)
			state, daysLeft := service.ResolveGateState(&start, false, trialDays, now)
			assert.Equal(t, tc.state, state)
			assert.Equal(t, tc.daysLeft, daysLeft)
		})
	}
}

func TestResolveGateStateSubscribedOverridesTrial(t *testing.T) {
	now := time.Now()
	expired := now.Add(-90 * 24 * time.Hour)

	state, _ := service.ResolveGateState(&expired, true, trialDays, now)
	assert.Equal(t, dto.GateSubscribed, state)

	// Subscribed wins even with no trial at all.
	state, _ = service.ResolveGateState(nil, true, trialDays, now)
	assert.Equal(t, dto.GateSubscribed, state)
}

func buildSubscriptionSvc() (service.SubscriptionService, *stubSettingsRepo) {
	repo := newStubSettingsRepo()
	return service.NewSubscriptionService(repo, nil, trialDays), repo
}

func TestSubscriptionStatusFreshInstall(t *testing.T) {
	svc, _ := buildSubscriptionSvc()

	got, err := svc.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dto.GateNoTrial, got.State)
	assert.False(t, got.PremiumAccess)
	assert.Nil(t, got.TrialDaysLeft)
}

func TestStartTrialGrantsAccessOnce(t *testing.T) {
	svc, repo := buildSubscriptionSvc()

	got, err := svc.StartTrial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.GateTrialActive, got.State)
	assert.True(t, got.PremiumAccess)
	require.NotNil(t, got.TrialDaysLeft)
	assert.Equal(t, trialDays, *got.TrialDaysLeft)
	assert.NotNil(t, repo.sub.TrialStartedAt)

	// The trial is a one-shot: it cannot be restarted to reset the clock.
	_, err = svc.StartTrial(context.Background())
	assert.ErrorIs(t, err, service.ErrTrialAlreadyStarted)
}

func TestExpiredTrialBlocksPremium(t *testing.T) {
	svc, repo := buildSubscriptionSvc()
	started := time.Now().Add(-10 * 24 * time.Hour)
	repo.sub.TrialStartedAt = &started

	got, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.GateTrialExpired, got.State)
	assert.False(t, got.PremiumAccess)

	ok, err := svc.HasPremiumAccess(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubscribedFlagGrantsPremium(t *testing.T) {
	svc, repo := buildSubscriptionSvc()
	plan := "fc360_monthly"
	repo.sub.Subscribed = true
	repo.sub.PlanID = &plan

	got, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.GateSubscribed, got.State)
	assert.True(t, got.PremiumAccess)
	require.NotNil(t, got.PlanID)
	assert.Equal(t, plan, *got.PlanID)

	ok, err := svc.HasPremiumAccess(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
