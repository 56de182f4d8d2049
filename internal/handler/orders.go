package handler

import (
	"net/http"
	"path/filepath"

	"foodcart360/internal/apierror"
	"foodcart360/internal/dto"
	"foodcart360/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct {
	svc            service.OrderService
	pdfStoragePath string
}

func NewOrdersHandler(svc service.OrderService, pdfStoragePath string) *OrdersHandler {
	return &OrdersHandler{svc: svc, pdfStoragePath: pdfStoragePath}
}

// Checkout godoc
// @Summary      Place a new order
// @Description  Creates an order ACID: snapshots item prices, applies the configured tax rate, allocates a token number and decrements menu stock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateOrderRequest true "Order detail"
// @Success      201  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders [post]
func (h *OrdersHandler) Checkout(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateStatus godoc
// @Summary      Move an order through its lifecycle
// @Description  pending → preparing → completed; cancellation allowed from pending/preparing.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "Order UUID"
// @Param        body body dto.UpdateOrderStatusRequest true "New status"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders/{id}/status [patch]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrdersHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receipt renders the order's receipt PDF and streams it back.
func (h *OrdersHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	path, err := h.svc.ReceiptPDF(c.Request.Context(), id, h.pdfStoragePath)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// List godoc
// @Summary      List orders
// @Description  Returns a paginated order list filtered by date, status and type. Defaults to today.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        date   query string false "Date YYYY-MM-DD (default: today)"
// @Param        status query string false "pending | preparing | completed | cancelled | all"
// @Param        type   query string false "dine_in | delivery | takeaway"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200    {object} dto.OrderListResponse
// @Failure      400    {object} apierror.APIError
// @Router       /v1/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
