package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/softmint-it/lumorahr/internal/domain/attendance"
	"github.com/softmint-it/lumorahr/internal/domain/payroll"
)

// AttendanceAggregator sums one employee's daily records over a pay period.
type AttendanceAggregator struct {
	attendanceRepo attendance.Repository
}

func NewAttendanceAggregator(attendanceRepo attendance.Repository) *AttendanceAggregator {
	return &AttendanceAggregator{attendanceRepo: attendanceRepo}
}

// Aggregate walks every calendar day of the period. Days covered by approved
// leave (leaveDates, date key layout 2006-01-02 -> covered fraction) are not
// counted absent; the leave resolver accounts for them. A working day without
// a record counts absent. A record with an open clock-in or negative hours is
// a fatal data error for the employee, never silently zeroed.
func (a *AttendanceAggregator) Aggregate(ctx context.Context, employeeID, companyID string, period payroll.Period, leaveDates map[string]decimal.Decimal) (attendance.PeriodSummary, error) {
	summary := attendance.PeriodSummary{EmployeeID: employeeID}

	records, err := a.attendanceRepo.ListDayRecords(ctx, employeeID, companyID, period.Start, period.End)
	if err != nil {
		return summary, fmt.Errorf("failed to list attendance records: %w", err)
	}
	holidays, err := a.attendanceRepo.HolidayDates(ctx, companyID, period.Start, period.End)
	if err != nil {
		return summary, fmt.Errorf("failed to list holidays: %w", err)
	}

	recordByDate := make(map[string]attendance.DayRecord, len(records))
	for _, rec := range records {
		recordByDate[rec.Date.Format("2006-01-02")] = rec
	}
	holidayByDate := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidayByDate[h.Format("2006-01-02")] = true
	}

	for day := period.Start; !day.After(period.End); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		rec, hasRecord := recordByDate[key]

		if hasRecord {
			if rec.Open() {
				return summary, fmt.Errorf("%w: employee %s on %s", attendance.ErrOpenRecord, employeeID, key)
			}
			if rec.TotalHours.IsNegative() || rec.OvertimeHours.IsNegative() {
				return summary, fmt.Errorf("%w: employee %s on %s", attendance.ErrNegativeHours, employeeID, key)
			}
		}

		switch {
		case holidayByDate[key] || (hasRecord && rec.IsHoliday):
			summary.HolidayDays++
		case isWeekend(day) || (hasRecord && rec.IsWeekend):
			summary.WeekendDays++
		default:
			summary.WorkingDays++

			if covered, onLeave := leaveDates[key]; onLeave {
				// Partially covered days can still hold a half-day record.
				if hasRecord && rec.IsHalfDay && covered.LessThan(decimal.NewFromInt(1)) {
					summary.PresentDays = summary.PresentDays.Add(half)
				}
				summary.OvertimeHours = summary.OvertimeHours.Add(overtimeOf(rec, hasRecord))
				continue
			}

			if !hasRecord || rec.Status == attendance.DayStatusAbsent {
				summary.AbsentDays = summary.AbsentDays.Add(decimal.NewFromInt(1))
				continue
			}

			if rec.IsHalfDay {
				summary.PresentDays = summary.PresentDays.Add(half)
				summary.HalfDays = summary.HalfDays.Add(decimal.NewFromInt(1))
			} else {
				summary.PresentDays = summary.PresentDays.Add(decimal.NewFromInt(1))
			}
			summary.OvertimeHours = summary.OvertimeHours.Add(rec.OvertimeHours)
		}
	}

	return summary, nil
}

func overtimeOf(rec attendance.DayRecord, hasRecord bool) decimal.Decimal {
	if !hasRecord {
		return decimal.Zero
	}
	return rec.OvertimeHours
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
