package worker

// entitlement_cron.go
// Periodically reconciles the local subscription flag with the billing
// provider so a cancelled plan eventually loses premium access without
// blocking any request path on a remote call.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const entitlementTickInterval = 6 * time.Hour

// EntitlementRefresher is satisfied by the subscription service.
type EntitlementRefresher interface {
	RefreshEntitlement(ctx context.Context) error
}

// StartEntitlementCron launches the periodic entitlement reconciliation.
// One refresh runs immediately at startup, then every tick.
func StartEntitlementCron(ctx context.Context, refresher EntitlementRefresher) {
	go func() {
		ticker := time.NewTicker(entitlementTickInterval)
		defer ticker.Stop()

		log.Info().Msg("entitlement_cron: started")
		if err := refresher.RefreshEntitlement(ctx); err != nil {
			log.Error().Err(err).Msg("entitlement_cron: initial refresh failed")
		}

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("entitlement_cron: shutting down")
				return
			case <-ticker.C:
				if err := refresher.RefreshEntitlement(ctx); err != nil {
					log.Error().Err(err).Msg("entitlement_cron: refresh failed")
				}
			}
		}
	}()
}
