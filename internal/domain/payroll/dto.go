package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/softmint-it/lumorahr/internal/pkg/validator"
)

// ========== RUN DTOs ==========

type CreateRunRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	PayDate     string `json:"pay_date"`
	Frequency   string `json:"frequency"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}
	if _, ok := validator.IsValidDate(r.PayDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	switch RunFrequency(r.Frequency) {
	case FrequencyMonthly, FrequencyBiweekly, FrequencyWeekly:
	default:
		errs = append(errs, validator.ValidationError{Field: "frequency", Message: "must be 'monthly', 'biweekly' or 'weekly'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunFilter struct {
	Status string
	Year   int
	Page   int
	Limit  int
}

type RunResponse struct {
	ID              string          `json:"id"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	PayDate         string          `json:"pay_date"`
	Frequency       string          `json:"frequency"`
	Status          string          `json:"status"`
	TotalGrossPay   decimal.Decimal `json:"total_gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	EmployeeCount   int             `json:"employee_count"`
	CreatedAt       string          `json:"created_at"`
}

func NewRunResponse(run PayrollRun) RunResponse {
	return RunResponse{
		ID:              run.ID,
		PeriodStart:     run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       run.PeriodEnd.Format("2006-01-02"),
		PayDate:         run.PayDate.Format("2006-01-02"),
		Frequency:       string(run.Frequency),
		Status:          string(run.Status),
		TotalGrossPay:   run.TotalGrossPay,
		TotalDeductions: run.TotalDeductions,
		TotalNetPay:     run.TotalNetPay,
		EmployeeCount:   run.EmployeeCount,
		CreatedAt:       run.CreatedAt.Format(time.RFC3339),
	}
}

type ListRunsResponse struct {
	Data       []RunResponse `json:"data"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}

// RunSummaryResponse pairs the run totals with a per-status entry tally and
// the failed employees, so an operator can decide whether to recompute or
// force-complete.
type RunSummaryResponse struct {
	Run             RunResponse             `json:"run"`
	ComputedEntries int                     `json:"computed_entries"`
	FailedEntries   int                     `json:"failed_entries"`
	FailedEmployees []FailedEmployeeSummary `json:"failed_employees"`
}

type FailedEmployeeSummary struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

type CompleteRunRequest struct {
	Force bool `json:"force,omitempty"`
}

// ProcessReport summarises one StartProcessing pass for operator visibility.
type ProcessReport struct {
	RunID           string            `json:"run_id"`
	Processed       int               `json:"processed"`
	Failed          int               `json:"failed"`
	FailedEmployees map[string]string `json:"failed_employees,omitempty"`
}

// ========== ENTRY DTOs ==========

type EntryResponse struct {
	ID                   string          `json:"id"`
	RunID                string          `json:"run_id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         string          `json:"employee_name,omitempty"`
	EmployeeCode         string          `json:"employee_code,omitempty"`
	BasicSalary          decimal.Decimal `json:"basic_salary"`
	ComponentEarnings    decimal.Decimal `json:"component_earnings"`
	TotalEarnings        decimal.Decimal `json:"total_earnings"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	GrossPay             decimal.Decimal `json:"gross_pay"`
	NetPay               decimal.Decimal `json:"net_pay"`
	OvertimeAmount       decimal.Decimal `json:"overtime_amount"`
	PerDaySalary         decimal.Decimal `json:"per_day_salary"`
	UnpaidLeaveDeduction decimal.Decimal `json:"unpaid_leave_deduction"`
	WorkingDays          int             `json:"working_days"`
	PresentDays          decimal.Decimal `json:"present_days"`
	HalfDays             decimal.Decimal `json:"half_days"`
	HolidayDays          int             `json:"holiday_days"`
	WeekendDays          int             `json:"weekend_days"`
	PaidLeaveDays        decimal.Decimal `json:"paid_leave_days"`
	UnpaidLeaveDays      decimal.Decimal `json:"unpaid_leave_days"`
	AbsentDays           decimal.Decimal `json:"absent_days"`
	OvertimeHours        decimal.Decimal `json:"overtime_hours"`
	EarningsBreakdown    []BreakdownLine `json:"earnings_breakdown"`
	DeductionsBreakdown  []BreakdownLine `json:"deductions_breakdown"`
	Status               string          `json:"status"`
	FailureReason        *string         `json:"failure_reason,omitempty"`
}

func NewEntryResponse(e PayrollEntry) EntryResponse {
	resp := EntryResponse{
		ID:                   e.ID,
		RunID:                e.RunID,
		EmployeeID:           e.EmployeeID,
		BasicSalary:          e.BasicSalary,
		ComponentEarnings:    e.ComponentEarnings,
		TotalEarnings:        e.TotalEarnings,
		TotalDeductions:      e.TotalDeductions,
		GrossPay:             e.GrossPay,
		NetPay:               e.NetPay,
		OvertimeAmount:       e.OvertimeAmount,
		PerDaySalary:         e.PerDaySalary,
		UnpaidLeaveDeduction: e.UnpaidLeaveDeduction,
		WorkingDays:          e.WorkingDays,
		PresentDays:          e.PresentDays,
		HalfDays:             e.HalfDays,
		HolidayDays:          e.HolidayDays,
		WeekendDays:          e.WeekendDays,
		PaidLeaveDays:        e.PaidLeaveDays,
		UnpaidLeaveDays:      e.UnpaidLeaveDays,
		AbsentDays:           e.AbsentDays,
		OvertimeHours:        e.OvertimeHours,
		EarningsBreakdown:    e.EarningsBreakdown,
		DeductionsBreakdown:  e.DeductionsBreakdown,
		Status:               string(e.Status),
		FailureReason:        e.FailureReason,
	}
	if e.EmployeeName != nil {
		resp.EmployeeName = *e.EmployeeName
	}
	if e.EmployeeCode != nil {
		resp.EmployeeCode = *e.EmployeeCode
	}
	return resp
}

// ========== COMPONENT DTOs ==========

type CreateComponentRequest struct {
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	CalcType       string           `json:"calc_type"`
	DefaultAmount  *decimal.Decimal `json:"default_amount,omitempty"`
	PercentOfBasic *decimal.Decimal `json:"percent_of_basic,omitempty"`
	IsTaxable      *bool            `json:"is_taxable,omitempty"`
	IsMandatory    *bool            `json:"is_mandatory,omitempty"`
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Type != string(ComponentTypeEarning) && r.Type != string(ComponentTypeDeduction) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'earning' or 'deduction'"})
	}
	switch CalcType(r.CalcType) {
	case CalcTypeFixed:
		if r.PercentOfBasic != nil {
			errs = append(errs, validator.ValidationError{Field: "percent_of_basic", Message: "must not be set for fixed components"})
		}
		if r.DefaultAmount != nil && r.DefaultAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "default_amount", Message: "must be non-negative"})
		}
	case CalcTypePercentage:
		if r.PercentOfBasic == nil {
			errs = append(errs, validator.ValidationError{Field: "percent_of_basic", Message: "is required for percentage components"})
		} else if r.PercentOfBasic.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "percent_of_basic", Message: "must be non-negative"})
		}
		if r.DefaultAmount != nil {
			errs = append(errs, validator.ValidationError{Field: "default_amount", Message: "must not be set for percentage components"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "calc_type", Message: "must be 'fixed' or 'percentage'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	CalcType       string           `json:"calc_type"`
	DefaultAmount  *decimal.Decimal `json:"default_amount,omitempty"`
	PercentOfBasic *decimal.Decimal `json:"percent_of_basic,omitempty"`
	IsTaxable      bool             `json:"is_taxable"`
	IsMandatory    bool             `json:"is_mandatory"`
	IsActive       bool             `json:"is_active"`
}

func NewComponentResponse(c SalaryComponent) ComponentResponse {
	return ComponentResponse{
		ID:             c.ID,
		Name:           c.Name,
		Type:           string(c.Type),
		CalcType:       string(c.CalcType),
		DefaultAmount:  c.DefaultAmount,
		PercentOfBasic: c.PercentOfBasic,
		IsTaxable:      c.IsTaxable,
		IsMandatory:    c.IsMandatory,
		IsActive:       c.IsActive,
	}
}
