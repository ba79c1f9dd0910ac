package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"hrms/internal/errors"
	"hrms/internal/repository"
	"hrms/internal/service"
)

// PayrollHandler handles payroll endpoints.
type PayrollHandler struct {
	payrollService service.PayrollService
}

// NewPayrollHandler creates a new payroll handler.
func NewPayrollHandler(payrollService service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// GeneratePayrollRequest targets one pay period. An empty userIds list means
// every active employee.
type GeneratePayrollRequest struct {
	Month   int    `json:"month" validate:"required,min=1,max=12"`
	Year    int    `json:"year" validate:"required"`
	UserIDs []uint `json:"userIds"`
}

// UpdatePayrollRequest carries a partial payroll edit.
type UpdatePayrollRequest struct {
	BasicSalary *decimal.Decimal `json:"basicSalary"`
	Allowances  *decimal.Decimal `json:"allowances"`
	Deductions  *decimal.Decimal `json:"deductions"`
	Bonus       *decimal.Decimal `json:"bonus"`
	Overtime    *decimal.Decimal `json:"overtime"`
	Notes       *string          `json:"notes"`
}

// GeneratePayrollResponse reports how many records a generation run created.
type GeneratePayrollResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// List godoc
// @Summary List payroll records
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param month query int false "Filter by month"
// @Param year query int false "Filter by year"
// @Param userId query int false "Filter by employee"
// @Param departmentId query int false "Filter by department"
// @Success 200 {array} model.Payroll
// @Router /payroll [get]
func (h *PayrollHandler) List(c echo.Context) error {
	var filter repository.PayrollFilter
	var err error

	if filter.Month, err = queryInt(c, "month"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}
	if filter.Year, err = queryInt(c, "year"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	if filter.UserID, err = queryUint(c, "userId"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}
	if filter.DepartmentID, err = queryUint(c, "departmentId"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid departmentId")
	}

	records, err := h.payrollService.List(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, records)
}

// Generate godoc
// @Summary Generate payroll records for a pay period
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GeneratePayrollRequest true "Pay period"
// @Success 201 {object} GeneratePayrollResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /payroll/generate [post]
func (h *PayrollHandler) Generate(c echo.Context) error {
	var req GeneratePayrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, err := h.payrollService.Generate(c.Request().Context(), service.GeneratePayrollInput{
		Month:   req.Month,
		Year:    req.Year,
		UserIDs: req.UserIDs,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, GeneratePayrollResponse{
		Message: fmt.Sprintf("payroll generated for %d employees", count),
		Count:   count,
	})
}

// Update godoc
// @Summary Update a payroll record
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payroll ID"
// @Param request body UpdatePayrollRequest true "Fields to update"
// @Success 200 {object} model.Payroll
// @Failure 404 {object} errors.ErrorResponse
// @Router /payroll/{id} [put]
func (h *PayrollHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payroll id")
	}

	var req UpdatePayrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	record, err := h.payrollService.Update(c.Request().Context(), id, service.UpdatePayrollInput{
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		Bonus:       req.Bonus,
		Overtime:    req.Overtime,
		Notes:       req.Notes,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, record)
}

// Stats godoc
// @Summary Payroll totals for a year
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year (defaults to current)"
// @Success 200 {object} repository.PayrollTotals
// @Router /payroll/stats [get]
func (h *PayrollHandler) Stats(c echo.Context) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	if year == nil {
		current := time.Now().Year()
		year = &current
	}

	totals, err := h.payrollService.Stats(c.Request().Context(), *year)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, totals)
}
