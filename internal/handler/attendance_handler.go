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

// AttendanceHandler handles attendance ledger endpoints.
type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// CreateAttendanceRequest represents a manual attendance entry. Date is
// YYYY-MM-DD; check-in and check-out are RFC 3339 timestamps.
type CreateAttendanceRequest struct {
	UserID   uint       `json:"userId" validate:"required"`
	Date     string     `json:"date" validate:"required"`
	CheckIn  *time.Time `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut"`
	Status   string     `json:"status" validate:"omitempty,oneof=present absent leave half_day"`
}

// UpdateAttendanceRequest carries a partial attendance update.
type UpdateAttendanceRequest struct {
	CheckIn  *time.Time `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut"`
	Status   *string    `json:"status" validate:"omitempty,oneof=present absent leave half_day"`
}

// List godoc
// @Summary List attendance records
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param userId query int false "Filter by employee"
// @Param departmentId query int false "Filter by department"
// @Success 200 {array} model.Attendance
// @Router /attendance [get]
func (h *AttendanceHandler) List(c echo.Context) error {
	var filter repository.AttendanceFilter
	var err error

	if filter.From, err = queryDate(c, "startDate"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate")
	}
	if filter.To, err = queryDate(c, "endDate"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate")
	}
	if filter.UserID, err = queryUint(c, "userId"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}
	if filter.DepartmentID, err = queryUint(c, "departmentId"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid departmentId")
	}

	records, err := h.attendanceService.List(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, records)
}

// Create godoc
// @Summary Record attendance for an employee
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAttendanceRequest true "Attendance entry"
// @Success 201 {object} model.Attendance
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c echo.Context) error {
	var req CreateAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	record, err := h.attendanceService.Create(c.Request().Context(), service.CreateAttendanceInput{
		UserID:   req.UserID,
		Date:     date,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Status:   model.AttendanceStatus(req.Status),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, record)
}

// Update godoc
// @Summary Update an attendance record
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Param request body UpdateAttendanceRequest true "Fields to update"
// @Success 200 {object} model.Attendance
// @Failure 404 {object} errors.ErrorResponse
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid attendance id")
	}

	var req UpdateAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.UpdateAttendanceInput{
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
	}
	if req.Status != nil {
		status := model.AttendanceStatus(*req.Status)
		input.Status = &status
	}

	record, err := h.attendanceService.Update(c.Request().Context(), id, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, record)
}

// Stats godoc
// @Summary Attendance counts by status for a month
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month 1-12 (defaults to current)"
// @Param year query int false "Year (defaults to current)"
// @Success 200 {object} service.AttendanceStats
// @Router /attendance/stats [get]
func (h *AttendanceHandler) Stats(c echo.Context) error {
	now := time.Now()

	month, err := queryInt(c, "month")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}
	if month == nil {
		current := int(now.Month())
		month = &current
	}
	if *month < 1 || *month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}

	year, err := queryInt(c, "year")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	if year == nil {
		current := now.Year()
		year = &current
	}

	stats, err := h.attendanceService.MonthlyStats(c.Request().Context(), *month, *year)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
