package response

import (
	"errors"
	"net/http"

	"github.com/softmint-it/lumorahr/internal/domain/attendance"
	"github.com/softmint-it/lumorahr/internal/domain/employee"
	"github.com/softmint-it/lumorahr/internal/domain/leave"
	"github.com/softmint-it/lumorahr/internal/domain/payroll"
	"github.com/softmint-it/lumorahr/internal/domain/payslip"
	"github.com/softmint-it/lumorahr/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll run errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunStatusConflict):
		Conflict(w, "Payroll run was modified concurrently, retry")
	case errors.Is(err, payroll.ErrInvalidRunTransition):
		Conflict(w, "Payroll run status does not allow this operation")
	case errors.Is(err, payroll.ErrRunNotEditable):
		Conflict(w, "Payroll run is no longer editable")
	case errors.Is(err, payroll.ErrRunHasFailedEntries):
		Conflict(w, "Payroll run has failed entries, resolve or force completion")
	case errors.Is(err, payroll.ErrRunPeriodOverlaps):
		Conflict(w, "A payroll run already covers this period")

	// Entry and computation errors
	case errors.Is(err, payroll.ErrEntryNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrMissingSalary), errors.Is(err, payroll.ErrSalaryNotFound):
		BadRequest(w, "Employee has no salary configured", nil)
	case errors.Is(err, payroll.ErrMandatoryComponent):
		BadRequest(w, "A mandatory salary component could not be resolved", nil)
	case errors.Is(err, payroll.ErrPolicyNotFound):
		BadRequest(w, "Company has no attendance policy configured", nil)
	case errors.Is(err, payroll.ErrNoPayableDays):
		BadRequest(w, "Pay period has no payable days", nil)

	// Component errors
	case errors.Is(err, payroll.ErrComponentNotFound):
		NotFound(w, "Salary component not found")
	case errors.Is(err, payroll.ErrComponentNameExists):
		Conflict(w, "A salary component with this name already exists")
	case errors.Is(err, payroll.ErrInvalidComponentType), errors.Is(err, payroll.ErrInvalidComponentShape):
		BadRequest(w, err.Error(), nil)

	// Attendance and leave data errors
	case errors.Is(err, attendance.ErrOpenRecord):
		BadRequest(w, "Attendance record has a clock-in without a clock-out", nil)
	case errors.Is(err, attendance.ErrNegativeHours):
		BadRequest(w, "Attendance record has negative hours", nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		BadRequest(w, "Employee has overlapping approved leave", nil)
	case errors.Is(err, leave.ErrPolicyNotFound):
		BadRequest(w, "Leave type has no policy configured", nil)

	// Payslip errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrInvalidTransition):
		Conflict(w, "Payslip status does not allow this operation")
	case errors.Is(err, payslip.ErrRunNotCompleted):
		Conflict(w, "Payroll run is not completed")
	case errors.Is(err, payslip.ErrPayslipNumberExists):
		Conflict(w, "Payslip number already exists")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
