package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hrms/internal/errors"
	"hrms/internal/model"
	"hrms/internal/repository"
	"hrms/internal/service"
)

// LeaveHandler handles leave request endpoints.
type LeaveHandler struct {
	leaveService service.LeaveService
}

// NewLeaveHandler creates a new leave handler.
func NewLeaveHandler(leaveService service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// CreateLeaveRequest represents a new leave request. Dates are YYYY-MM-DD.
type CreateLeaveRequest struct {
	UserID    uint   `json:"userId" validate:"required"`
	LeaveType string `json:"leaveType" validate:"required,oneof=annual sick emergency unpaid"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Reason    string `json:"reason"`
}

// UpdateLeaveStatusRequest carries the decision on a pending request.
type UpdateLeaveStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// List godoc
// @Summary List leave requests
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param userId query int false "Filter by employee"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} model.Leave
// @Router /leaves [get]
func (h *LeaveHandler) List(c echo.Context) error {
	var filter repository.LeaveFilter

	if raw := c.QueryParam("status"); raw != "" {
		status := model.LeaveStatus(raw)
		filter.Status = &status
	}
	userID, err := queryUint(c, "userId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}
	filter.UserID = userID
	if filter.From, err = queryDate(c, "startDate"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate")
	}
	if filter.To, err = queryDate(c, "endDate"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate")
	}

	leaves, err := h.leaveService.List(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, leaves)
}

// Create godoc
// @Summary Submit a leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLeaveRequest true "Leave request"
// @Success 201 {object} model.Leave
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /leaves [post]
func (h *LeaveHandler) Create(c echo.Context) error {
	var req CreateLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate")
	}

	leave, err := h.leaveService.Submit(c.Request().Context(), service.SubmitLeaveInput{
		UserID:    req.UserID,
		LeaveType: model.LeaveType(req.LeaveType),
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, leave)
}

// UpdateStatus godoc
// @Summary Approve or reject a pending leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave ID"
// @Param request body UpdateLeaveStatusRequest true "Decision"
// @Success 200 {object} model.Leave
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /leaves/{id}/status [put]
func (h *LeaveHandler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid leave id")
	}

	var req UpdateLeaveStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	leave, err := h.leaveService.Decide(c.Request().Context(), id, model.LeaveStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, leave)
}

// Stats godoc
// @Summary Leave request counts by status for a year
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year (defaults to current)"
// @Success 200 {object} service.LeaveStats
// @Router /leaves/stats [get]
func (h *LeaveHandler) Stats(c echo.Context) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	if year == nil {
		current := time.Now().Year()
		year = &current
	}

	stats, err := h.leaveService.Stats(c.Request().Context(), *year)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
