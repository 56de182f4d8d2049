package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// BillingClient talks to the subscription billing provider. It is consumed
// only by the trial gate — a billing outage degrades to the locally stored
// entitlement flag, never to a blocked kitchen.
type BillingClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewBillingClient(baseURL, apiKey string) *BillingClient {
	return &BillingClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// BillingPlan is one purchasable subscription package.
type BillingPlan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceLabel  string `json:"price_label"`
	PeriodLabel string `json:"period_label"`
}

type entitlementResponse struct {
	Active bool    `json:"active"`
	PlanID *string `json:"plan_id"`
}

type activateRequest struct {
	PlanID        string `json:"plan_id"`
	PurchaseToken string `json:"purchase_token"`
}

func (c *BillingClient) do(ctx context.Context, method, path string, body, dest any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("billing: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("billing: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("billing: provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("billing: provider returned %d", resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("billing: decode response: %w", err)
	}
	return nil
}

// IsActive asks the provider whether the entitlement is currently active.
func (c *BillingClient) IsActive(ctx context.Context) (bool, *string, error) {
	var result entitlementResponse
	if err := c.do(ctx, http.MethodGet, "/v1/entitlement", nil, &result); err != nil {
		return false, nil, err
	}
	return result.Active, result.PlanID, nil
}

// ActivateSubscription verifies a purchase token and activates the plan.
func (c *BillingClient) ActivateSubscription(ctx context.Context, planID, purchaseToken string) error {
	return c.do(ctx, http.MethodPost, "/v1/entitlement/activate",
		activateRequest{PlanID: planID, PurchaseToken: purchaseToken}, nil)
}

// ListPlans returns the available subscription packages.
func (c *BillingClient) ListPlans(ctx context.Context) ([]BillingPlan, error) {
	var plans []BillingPlan
	if err := c.do(ctx, http.MethodGet, "/v1/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}
