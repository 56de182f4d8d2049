package handler

import (
	"net/http"

	"foodcart360/internal/apierror"
	"foodcart360/internal/dto"
	"foodcart360/internal/service"

	"github.com/gin-gonic/gin"
)

type ExpensesHandler struct{ svc service.ExpenseService }

func NewExpensesHandler(svc service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{svc: svc}
}

// Create godoc
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateExpenseRequest true "Expense detail"
// @Success      201  {object} dto.ExpenseResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/expenses [post]
func (h *ExpensesHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
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

func (h *ExpensesHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExpensesHandler) List(c *gin.Context) {
	var filter dto.ExpenseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
