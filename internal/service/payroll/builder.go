package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/softmint-it/lumorahr/internal/domain/attendance"
	"github.com/softmint-it/lumorahr/internal/domain/leave"
	"github.com/softmint-it/lumorahr/internal/domain/payroll"
)

// BuilderInput carries everything the entry builder needs. The builder itself
// is pure: same input, same entry.
type BuilderInput struct {
	RunID       string
	EmployeeID  string
	BasicSalary *decimal.Decimal
	Attendance  attendance.PeriodSummary
	Leave       leave.PeriodLeave
	Components  ComponentResult
	Policy      payroll.AttendancePolicy
	Period      payroll.Period
}

// BuildEntry combines attendance, leave and component results into one
// payroll entry. Every monetary step is rounded to two decimals before the
// next step consumes it, matching the persisted column scale.
//
//  1. per_day_salary = basic / denominator (working or calendar days, per policy)
//  2. unpaid_leave_deduction = per_day * unpaid_days + half_days * factor * per_day
//  3. overtime_amount = overtime_hours * overtime_rate
//  4. gross = basic + component_earnings + overtime - unpaid_leave_deduction
//  5. net = gross - total_deductions
func BuildEntry(in BuilderInput) (payroll.PayrollEntry, error) {
	if in.BasicSalary == nil {
		return payroll.PayrollEntry{}, fmt.Errorf("%w: employee %s", payroll.ErrMissingSalary, in.EmployeeID)
	}
	basic := round2(*in.BasicSalary)

	denominator := in.Attendance.WorkingDays
	if in.Policy.ProrationBasis == payroll.ProrationCalendarDays {
		denominator = in.Period.CalendarDays()
	}
	if denominator <= 0 {
		return payroll.PayrollEntry{}, fmt.Errorf("%w: run %s", payroll.ErrNoPayableDays, in.RunID)
	}

	perDay := round2(basic.Div(decimal.NewFromInt(int64(denominator))))

	unpaidDeduction := round2(perDay.Mul(in.Leave.UnpaidDays))
	halfDayDeduction := round2(perDay.Mul(in.Attendance.HalfDays).Mul(in.Policy.HalfDayDeductionFactor))
	unpaidDeduction = round2(unpaidDeduction.Add(halfDayDeduction))

	overtimeAmount := round2(in.Attendance.OvertimeHours.Mul(in.Policy.OvertimeRatePerHour))

	grossPay := round2(basic.
		Add(in.Components.ComponentEarnings).
		Add(overtimeAmount).
		Sub(unpaidDeduction))
	netPay := round2(grossPay.Sub(in.Components.TotalDeductions))

	return payroll.PayrollEntry{
		RunID:                in.RunID,
		EmployeeID:           in.EmployeeID,
		BasicSalary:          basic,
		ComponentEarnings:    in.Components.ComponentEarnings,
		TotalEarnings:        round2(basic.Add(in.Components.ComponentEarnings).Add(overtimeAmount)),
		TotalDeductions:      in.Components.TotalDeductions,
		GrossPay:             grossPay,
		NetPay:               netPay,
		OvertimeAmount:       overtimeAmount,
		PerDaySalary:         perDay,
		UnpaidLeaveDeduction: unpaidDeduction,
		WorkingDays:          in.Attendance.WorkingDays,
		PresentDays:          in.Attendance.PresentDays,
		HalfDays:             in.Attendance.HalfDays,
		HolidayDays:          in.Attendance.HolidayDays,
		WeekendDays:          in.Attendance.WeekendDays,
		PaidLeaveDays:        in.Leave.PaidDays,
		UnpaidLeaveDays:      in.Leave.UnpaidDays,
		AbsentDays:           in.Attendance.AbsentDays,
		OvertimeHours:        in.Attendance.OvertimeHours,
		EarningsBreakdown:    in.Components.Earnings,
		DeductionsBreakdown:  in.Components.Deductions,
		Status:               payroll.EntryStatusComputed,
	}, nil
}
