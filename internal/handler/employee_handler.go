package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"hrms/internal/errors"
	"hrms/internal/middleware"
	"hrms/internal/service"
)

// EmployeeHandler handles employee account and profile endpoints.
type EmployeeHandler struct {
	employeeService service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// CreateEmployeeRequest represents a new employee account.
type CreateEmployeeRequest struct {
	FirstName     string          `json:"firstName" validate:"required"`
	LastName      string          `json:"lastName" validate:"required"`
	Email         string          `json:"email" validate:"required,email"`
	Password      string          `json:"password" validate:"required,min=6"`
	DepartmentID  *uint           `json:"departmentId"`
	DesignationID *uint           `json:"designationId"`
	BasicSalary   decimal.Decimal `json:"basicSalary"`
	DateJoined    *string         `json:"dateJoined"`
}

// UpdateEmployeeRequest carries a partial admin edit of an employee.
type UpdateEmployeeRequest struct {
	FirstName     *string          `json:"firstName"`
	LastName      *string          `json:"lastName"`
	Email         *string          `json:"email" validate:"omitempty,email"`
	DepartmentID  *uint            `json:"departmentId"`
	DesignationID *uint            `json:"designationId"`
	BasicSalary   *decimal.Decimal `json:"basicSalary"`
	DateJoined    *string          `json:"dateJoined"`
	IsActive      *bool            `json:"isActive"`
}

// UpdateProfileRequest carries a self-service profile edit.
type UpdateProfileRequest struct {
	FirstName        *string `json:"firstName"`
	LastName         *string `json:"lastName"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	NationalID       *string `json:"nationalId"`
	EmergencyContact *string `json:"emergencyContact"`
	BloodGroup       *string `json:"bloodGroup"`
	Avatar           *string `json:"avatar"`
	DateOfBirth      *string `json:"dateOfBirth"`
}

// List godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	users, err := h.employeeService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary Get an employee by ID
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}

	user, err := h.employeeService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// Create godoc
// @Summary Create an employee account
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEmployeeRequest true "New employee"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dateJoined, err := parseOptionalDate(req.DateJoined)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid dateJoined")
	}

	user, err := h.employeeService.Create(c.Request().Context(), service.CreateEmployeeInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      req.Password,
		DepartmentID:  req.DepartmentID,
		DesignationID: req.DesignationID,
		BasicSalary:   req.BasicSalary,
		DateJoined:    dateJoined,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, user)
}

// Update godoc
// @Summary Update an employee account
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param request body UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}

	var req UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dateJoined, err := parseOptionalDate(req.DateJoined)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid dateJoined")
	}

	user, err := h.employeeService.Update(c.Request().Context(), id, service.UpdateEmployeeInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		DepartmentID:  req.DepartmentID,
		DesignationID: req.DesignationID,
		BasicSalary:   req.BasicSalary,
		DateJoined:    dateJoined,
		IsActive:      req.IsActive,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Delete an employee account
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}

	if err := h.employeeService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "employee deleted successfully",
	})
}

// GetProfile godoc
// @Summary Get the authenticated employee's profile
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Router /employees/profile [get]
func (h *EmployeeHandler) GetProfile(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}

	user, err := h.employeeService.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the authenticated employee's profile
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} model.User
// @Router /employees/profile [put]
func (h *EmployeeHandler) UpdateProfile(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	dateOfBirth, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid dateOfBirth")
	}

	user, err := h.employeeService.UpdateProfile(c.Request().Context(), claims.UserID, service.UpdateProfileInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Address:          req.Address,
		NationalID:       req.NationalID,
		EmergencyContact: req.EmergencyContact,
		BloodGroup:       req.BloodGroup,
		Avatar:           req.Avatar,
		DateOfBirth:      dateOfBirth,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	value, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
