package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hrms/internal/errors"
	"hrms/internal/service"
)

// DepartmentHandler handles department endpoints.
type DepartmentHandler struct {
	departmentService service.DepartmentService
}

// NewDepartmentHandler creates a new department handler.
func NewDepartmentHandler(departmentService service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// CreateDepartmentRequest represents a new department.
type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ManagerID   *uint  `json:"managerId"`
}

// UpdateDepartmentRequest carries a partial department edit.
type UpdateDepartmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ManagerID   *uint   `json:"managerId"`
}

// List godoc
// @Summary List departments with employee counts
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Department
// @Router /departments [get]
func (h *DepartmentHandler) List(c echo.Context) error {
	departments, err := h.departmentService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, departments)
}

// Get godoc
// @Summary Get a department by ID
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} model.Department
// @Failure 404 {object} errors.ErrorResponse
// @Router /departments/{id} [get]
func (h *DepartmentHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid department id")
	}

	department, err := h.departmentService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, department)
}

// Create godoc
// @Summary Create a department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDepartmentRequest true "New department"
// @Success 201 {object} model.Department
// @Failure 409 {object} errors.ErrorResponse
// @Router /departments [post]
func (h *DepartmentHandler) Create(c echo.Context) error {
	var req CreateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	department, err := h.departmentService.Create(c.Request().Context(), service.CreateDepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, department)
}

// Update godoc
// @Summary Update a department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body UpdateDepartmentRequest true "Fields to update"
// @Success 200 {object} model.Department
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /departments/{id} [put]
func (h *DepartmentHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid department id")
	}

	var req UpdateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	department, err := h.departmentService.Update(c.Request().Context(), id, service.UpdateDepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, department)
}

// Delete godoc
// @Summary Delete an empty department
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /departments/{id} [delete]
func (h *DepartmentHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid department id")
	}

	if err := h.departmentService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "department deleted successfully",
	})
}
