package handler

import (
	"net/http"

	"foodcart360/internal/apierror"
	"foodcart360/internal/dto"
	"foodcart360/internal/service"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct{ svc service.MenuService }

func NewMenuHandler(svc service.MenuService) *MenuHandler { return &MenuHandler{svc: svc} }

func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.CreateMenuItemRequest
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

func (h *MenuHandler) Update(c *gin.Context) {
	var req dto.UpdateMenuItemRequest
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

// Delete deactivates the item; sales history keeps pointing at it.
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenuHandler) Reactivate(c *gin.Context) {
	resp, err := h.svc.Reactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenuHandler) GetByID(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List menu items
// @Description  Returns the menu filtered by category/name. Default shows active items only; active=false shows hidden items, active=all shows everything.
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Category filter"
// @Param        name     query string false "Name search"
// @Param        active   query string false "false | all (default: active only)"
// @Success      200      {object} dto.MenuListResponse
// @Router       /v1/menu [get]
func (h *MenuHandler) List(c *gin.Context) {
	var filter dto.MenuFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list menu"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
