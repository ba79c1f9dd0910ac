package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hrms/internal/errors"
	"hrms/internal/service"
)

// DesignationHandler handles designation endpoints.
type DesignationHandler struct {
	designationService service.DesignationService
}

// NewDesignationHandler creates a new designation handler.
func NewDesignationHandler(designationService service.DesignationService) *DesignationHandler {
	return &DesignationHandler{designationService: designationService}
}

// CreateDesignationRequest represents a new designation.
type CreateDesignationRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	DepartmentID *uint  `json:"departmentId"`
}

// UpdateDesignationRequest carries a partial designation edit.
type UpdateDesignationRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	DepartmentID *uint   `json:"departmentId"`
}

// List godoc
// @Summary List designations with employee counts
// @Tags designations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Designation
// @Router /designations [get]
func (h *DesignationHandler) List(c echo.Context) error {
	designations, err := h.designationService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, designations)
}

// Get godoc
// @Summary Get a designation by ID
// @Tags designations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Designation ID"
// @Success 200 {object} model.Designation
// @Failure 404 {object} errors.ErrorResponse
// @Router /designations/{id} [get]
func (h *DesignationHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid designation id")
	}

	designation, err := h.designationService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, designation)
}

// Create godoc
// @Summary Create a designation
// @Tags designations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDesignationRequest true "New designation"
// @Success 201 {object} model.Designation
// @Failure 409 {object} errors.ErrorResponse
// @Router /designations [post]
func (h *DesignationHandler) Create(c echo.Context) error {
	var req CreateDesignationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	designation, err := h.designationService.Create(c.Request().Context(), service.CreateDesignationInput{
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, designation)
}

// Update godoc
// @Summary Update a designation
// @Tags designations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Designation ID"
// @Param request body UpdateDesignationRequest true "Fields to update"
// @Success 200 {object} model.Designation
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /designations/{id} [put]
func (h *DesignationHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid designation id")
	}

	var req UpdateDesignationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	designation, err := h.designationService.Update(c.Request().Context(), id, service.UpdateDesignationInput{
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, designation)
}

// Delete godoc
// @Summary Delete an unused designation
// @Tags designations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Designation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /designations/{id} [delete]
func (h *DesignationHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid designation id")
	}

	if err := h.designationService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "designation deleted successfully",
	})
}
