package middleware

import (
	"net/http"

	"foodcart360/internal/apierror"
	"foodcart360/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PremiumGate blocks premium routes unless the cart has an active trial or a
// paid subscription. Lookup failures fail open so a DB hiccup never locks the
// owner out of their own data.
func PremiumGate(subs service.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := subs.HasPremiumAccess(c.Request.Context())
		if err != nil {
			log.Warn().Err(err).Msg("premium gate: entitlement lookup failed, allowing request")
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusPaymentRequired,
				apierror.NewUpsell("premium feature, start a trial or subscribe"))
			return
		}
		c.Next()
	}
}
