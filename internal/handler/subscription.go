package handler

import (
	"errors"
	"net/http"

	"foodcart360/internal/apierror"
	"foodcart360/internal/dto"
	"foodcart360/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct{ svc service.SubscriptionService }

func NewSubscriptionHandler(svc service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Status godoc
// @Summary      Current entitlement state
// @Description  Returns no_trial | trial_active | trial_expired | subscribed plus the premium_access flag the app gates on.
// @Tags         subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SubscriptionStatusResponse
// @Router       /v1/subscription/status [get]
func (h *SubscriptionHandler) Status(c *gin.Context) {
	resp, err := h.svc.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to resolve subscription state"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) StartTrial(c *gin.Context) {
	resp, err := h.svc.StartTrial(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrTrialAlreadyStarted) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to start trial"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SubscriptionHandler) Activate(c *gin.Context) {
	var req dto.ActivateSubscriptionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Activate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrBillingUnavailable) {
			c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) Plans(c *gin.Context) {
	resp, err := h.svc.Plans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
