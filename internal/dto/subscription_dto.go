package dto

// Gate states returned by GET /v1/subscription/status.
const (
	GateNoTrial      = "no_trial"
	GateTrialActive  = "trial_active"
	GateTrialExpired = "trial_expired"
	GateSubscribed   = "subscribed"
)

type SubscriptionStatusResponse struct {
	State string `json:"state"`
	// TrialDaysLeft is present only while the trial is active.
	TrialDaysLeft *int    `json:"trial_days_left,omitempty"`
	PlanID        *string `json:"plan_id,omitempty"`
	// PremiumAccess is the single flag the gate middleware checks.
	PremiumAccess bool `json:"premium_access"`
}

type ActivateSubscriptionRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
	// PurchaseToken is the billing provider's proof of purchase.
	PurchaseToken string `json:"purchase_token" validate:"required"`
}

type PlanResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceLabel  string `json:"price_label"`
	PeriodLabel string `json:"period_label"`
}
