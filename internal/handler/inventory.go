package handler

import (
	"net/http"

	"foodcart360/internal/apierror"
	"foodcart360/internal/dto"
	"foodcart360/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var req dto.UpdateInventoryItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdjustStock godoc
// @Summary      Adjust raw-material stock
// @Description  Applies a signed delta (restock positive, usage negative). Stock never goes below zero.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Item UUID"
// @Param        body body dto.AdjustStockRequest true "Signed delta"
// @Success      200  {object} dto.InventoryItemResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/inventory/{id}/adjust [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list inventory"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStockAlerts returns items at or below their threshold, most urgent first.
func (h *InventoryHandler) LowStockAlerts(c *gin.Context) {
	resp, err := h.svc.LowStockAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to compute alerts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
