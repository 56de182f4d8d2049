package handler

import (
	"errors"
	"net/http"

	"foodcart360/internal/apierror"
	"foodcart360/internal/dto"
	"foodcart360/internal/middleware"
	"foodcart360/internal/service"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct{ svc service.AttendanceService }

func NewAttendanceHandler(svc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// targetUser resolves who the record is for: the caller by default, or the
// user named in the body when a manager/owner checks in staff.
func targetUser(c *gin.Context, req dto.CheckInRequest) (string, bool) {
	claims := middleware.GetClaims(c)
	if req.UserID == nil || *req.UserID == "" || *req.UserID == claims.UserID {
		return claims.UserID, true
	}
	if claims.Role != "manager" && claims.Role != "owner" {
		return "", false
	}
	return *req.UserID, true
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	// Body is optional: staff check themselves in with an empty POST.
	var req dto.CheckInRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	userID, allowed := targetUser(c, req)
	if !allowed {
		c.JSON(http.StatusForbidden, apierror.New("only managers can check in other staff"))
		return
	}
	resp, err := h.svc.CheckIn(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCheckedIn) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req dto.CheckInRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	userID, allowed := targetUser(c, req)
	if !allowed {
		c.JSON(http.StatusForbidden, apierror.New("only managers can check out other staff"))
		return
	}
	resp, err := h.svc.CheckOut(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCheckedOut) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AttendanceHandler) ListByDate(c *gin.Context) {
	var filter dto.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListByDate(c.Request.Context(), filter.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
