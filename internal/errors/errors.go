package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email, password, or the declared
	// role does not match the stored user.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountInactive is returned when the account is deactivated.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrRefreshTokenExpired is returned when the refresh token has expired.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	// ErrInvalidRefreshToken is returned for any other refresh token failure.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when creating a user with an existing email.
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrDepartmentNotFound is returned when a department does not exist.
	ErrDepartmentNotFound = errors.New("department not found")
	// ErrDepartmentNameTaken is returned when a department name is already used.
	ErrDepartmentNameTaken = errors.New("department name already exists")
	// ErrDepartmentNotEmpty is returned when deleting a department that still
	// has employees or designations.
	ErrDepartmentNotEmpty = errors.New("department has employees or designations")
	// ErrManagerNotFound is returned when the proposed manager does not exist.
	ErrManagerNotFound = errors.New("manager not found")
	// ErrManagerAssigned is returned when the proposed manager already manages
	// another department.
	ErrManagerAssigned = errors.New("user is already managing another department")

	// ErrDesignationNotFound is returned when a designation does not exist.
	ErrDesignationNotFound = errors.New("designation not found")
	// ErrDesignationTaken is returned when (name, department) already exists.
	ErrDesignationTaken = errors.New("designation name already exists in this department")
	// ErrDesignationInUse is returned when deleting a designation employees hold.
	ErrDesignationInUse = errors.New("designation is assigned to employees")

	// ErrInvalidDateRange is returned when startDate is after endDate.
	ErrInvalidDateRange = errors.New("start date cannot be after end date")
	// ErrPastStartDate is returned when a leave request starts in the past.
	ErrPastStartDate = errors.New("cannot apply for past dates")
	// ErrLeaveOverlap is returned when a pending or approved leave request
	// already covers part of the requested range.
	ErrLeaveOverlap = errors.New("overlapping leave request exists")
	// ErrLeaveNotFound is returned when a leave request does not exist.
	ErrLeaveNotFound = errors.New("leave request not found")
	// ErrLeaveNotPending is returned when deciding a request that has already
	// been approved or rejected.
	ErrLeaveNotPending = errors.New("leave request is not pending")
	// ErrInvalidLeaveDecision is returned for a decision other than
	// approved or rejected.
	ErrInvalidLeaveDecision = errors.New("status must be approved or rejected")

	// ErrAttendanceExists is returned when a record for (user, date) exists.
	ErrAttendanceExists = errors.New("attendance record already exists for this date")
	// ErrAttendanceNotFound is returned when an attendance record does not exist.
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrPayrollPeriodRequired is returned when month or year is missing.
	ErrPayrollPeriodRequired = errors.New("month and year are required")
	// ErrNoEligibleEmployees is returned when a payroll run has nobody to pay.
	ErrNoEligibleEmployees = errors.New("no eligible employees found or payroll already exists for this period")
	// ErrPayrollNotFound is returned when a payroll record does not exist.
	ErrPayrollNotFound = errors.New("payroll record not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAccountInactive),
		errors.Is(err, ErrRefreshTokenExpired),
		errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrDepartmentNotFound),
		errors.Is(err, ErrDesignationNotFound),
		errors.Is(err, ErrLeaveNotFound),
		errors.Is(err, ErrAttendanceNotFound),
		errors.Is(err, ErrPayrollNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrPastStartDate),
		errors.Is(err, ErrInvalidLeaveDecision),
		errors.Is(err, ErrPayrollPeriodRequired),
		errors.Is(err, ErrNoEligibleEmployees),
		errors.Is(err, ErrManagerNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ARGUMENT")
	case errors.Is(err, ErrLeaveOverlap),
		errors.Is(err, ErrLeaveNotPending),
		errors.Is(err, ErrAttendanceExists),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrDepartmentNameTaken),
		errors.Is(err, ErrDepartmentNotEmpty),
		errors.Is(err, ErrManagerAssigned),
		errors.Is(err, ErrDesignationTaken),
		errors.Is(err, ErrDesignationInUse):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
