package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusDraft      RunStatus = "draft"
	RunStatusProcessing RunStatus = "processing"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusCancelled  RunStatus = "cancelled"
)

// CanTransitionTo reports whether a run may move from its current status to target.
func (s RunStatus) CanTransitionTo(target RunStatus) bool {
	switch s {
	case RunStatusDraft:
		return target == RunStatusProcessing || target == RunStatusCancelled
	case RunStatusProcessing:
		return target == RunStatusCompleted || target == RunStatusCancelled
	default:
		return false
	}
}

// RunFrequency enum
type RunFrequency string

const (
	FrequencyMonthly  RunFrequency = "monthly"
	FrequencyBiweekly RunFrequency = "biweekly"
	FrequencyWeekly   RunFrequency = "weekly"
)

// PayrollRun - one payroll batch for a pay period. Version guards status
// transitions against concurrent writers.
type PayrollRun struct {
	ID              string
	CompanyID       string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	PayDate         time.Time
	Frequency       RunFrequency
	Status          RunStatus
	Version         int
	TotalGrossPay   decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNetPay     decimal.Decimal
	EmployeeCount   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EntryStatus enum
type EntryStatus string

const (
	EntryStatusComputed EntryStatus = "computed"
	EntryStatusFailed   EntryStatus = "failed"
)

// BreakdownLine is one resolved component amount on an entry. Lines keep the
// evaluator's ordering so payslip rendering needs no defensive parsing.
type BreakdownLine struct {
	ComponentID string          `json:"component_id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	IsTaxable   bool            `json:"is_taxable"`
}

// PayrollEntry - computed result for one employee in one run.
// Unique per (run, employee). All monetary fields are 2dp decimals.
type PayrollEntry struct {
	ID                   string
	RunID                string
	EmployeeID           string
	BasicSalary          decimal.Decimal
	ComponentEarnings    decimal.Decimal
	TotalEarnings        decimal.Decimal
	TotalDeductions      decimal.Decimal
	GrossPay             decimal.Decimal
	NetPay               decimal.Decimal
	OvertimeAmount       decimal.Decimal
	PerDaySalary         decimal.Decimal
	UnpaidLeaveDeduction decimal.Decimal
	WorkingDays          int
	PresentDays          decimal.Decimal
	HalfDays             decimal.Decimal
	HolidayDays          int
	WeekendDays          int
	PaidLeaveDays        decimal.Decimal
	UnpaidLeaveDays      decimal.Decimal
	AbsentDays           decimal.Decimal
	OvertimeHours        decimal.Decimal
	EarningsBreakdown    []BreakdownLine
	DeductionsBreakdown  []BreakdownLine
	Status               EntryStatus
	FailureReason        *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// ComponentType enum
type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "earning"
	ComponentTypeDeduction ComponentType = "deduction"
)

// CalcType enum
type CalcType string

const (
	CalcTypeFixed      CalcType = "fixed"
	CalcTypePercentage CalcType = "percentage"
)

// SalaryComponent - master earning/deduction definition. The calc type is a
// tagged variant: fixed carries DefaultAmount, percentage carries
// PercentOfBasic. Validate rejects any other shape before computation sees it.
type SalaryComponent struct {
	ID             string
	CompanyID      string
	Name           string
	Type           ComponentType
	CalcType       CalcType
	DefaultAmount  *decimal.Decimal
	PercentOfBasic *decimal.Decimal
	IsTaxable      bool
	IsMandatory    bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the tagged-variant shape of the component definition.
func (c SalaryComponent) Validate() error {
	if c.Type != ComponentTypeEarning && c.Type != ComponentTypeDeduction {
		return ErrInvalidComponentType
	}
	switch c.CalcType {
	case CalcTypeFixed:
		if c.PercentOfBasic != nil {
			return ErrInvalidComponentShape
		}
	case CalcTypePercentage:
		if c.PercentOfBasic == nil || c.DefaultAmount != nil {
			return ErrInvalidComponentShape
		}
		if c.PercentOfBasic.IsNegative() {
			return ErrInvalidComponentShape
		}
	default:
		return ErrInvalidComponentShape
	}
	return nil
}

// ComponentAssignment links an employee salary to a master component,
// optionally overriding the fixed amount.
type ComponentAssignment struct {
	ComponentID    string           `json:"component_id"`
	OverrideAmount *decimal.Decimal `json:"override_amount,omitempty"`
}

// CalculationStatus enum
type CalculationStatus string

const (
	CalculationStatusPending    CalculationStatus = "pending"
	CalculationStatusCalculated CalculationStatus = "calculated"
)

// EmployeeSalary - one per employee. BasicSalary is nil until configured;
// entry computation fails for such employees.
type EmployeeSalary struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	BasicSalary       *decimal.Decimal
	Components        []ComponentAssignment
	CalculationStatus CalculationStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProrationBasis enum
type ProrationBasis string

const (
	ProrationCalendarDays ProrationBasis = "calendar_days"
	ProrationWorkingDays  ProrationBasis = "working_days"
)

// AttendancePolicy - per-company knobs consumed by the entry builder.
type AttendancePolicy struct {
	ID                     string
	CompanyID              string
	OvertimeRatePerHour    decimal.Decimal
	ProrationBasis         ProrationBasis
	HalfDayDeductionFactor decimal.Decimal
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Period is a closed [Start, End] date range.
type Period struct {
	Start time.Time
	End   time.Time
}

// CalendarDays returns the inclusive day count of the period.
func (p Period) CalendarDays() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}
