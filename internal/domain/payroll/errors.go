package payroll

import "errors"

var (
	ErrRunNotFound           = errors.New("payroll run not found")
	ErrRunStatusConflict     = errors.New("payroll run status changed concurrently")
	ErrInvalidRunTransition  = errors.New("invalid payroll run status transition")
	ErrRunNotEditable        = errors.New("payroll run is frozen, entries cannot change")
	ErrRunHasFailedEntries   = errors.New("payroll run has unresolved failed entries")
	ErrRunPeriodOverlaps     = errors.New("payroll run already exists for this period")
	ErrEntryNotFound         = errors.New("payroll entry not found")
	ErrMissingSalary         = errors.New("employee has no basic salary configured")
	ErrMandatoryComponent    = errors.New("mandatory component has no resolvable amount")
	ErrPolicyNotFound        = errors.New("attendance policy not found")
	ErrNoPayableDays         = errors.New("pay period has no payable days")
	ErrComponentNotFound     = errors.New("salary component not found")
	ErrComponentNameExists   = errors.New("salary component name already exists")
	ErrInvalidComponentType  = errors.New("invalid salary component type")
	ErrInvalidComponentShape = errors.New("salary component calc type and amounts do not match")
	ErrSalaryNotFound        = errors.New("employee salary record not found")
)
