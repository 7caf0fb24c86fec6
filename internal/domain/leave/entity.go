package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationStatus enum
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Application - a leave span for an employee. Only approved applications are
// consumed by payroll.
type Application struct {
	ID           string
	EmployeeID   string
	CompanyID    string
	LeaveTypeID  string
	StartDate    time.Time
	EndDate      time.Time
	StartHalfDay bool
	EndHalfDay   bool
	Status       ApplicationStatus
	Reason       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Policy carries the payability flag of a leave type.
type Policy struct {
	LeaveTypeID string
	Name        string
	IsPaid      bool
}

// PeriodLeave is the resolver output for one employee and pay period.
// Half-day granularity is preserved, so the counts are decimals.
type PeriodLeave struct {
	EmployeeID string
	PaidDays   decimal.Decimal
	UnpaidDays decimal.Decimal
}
