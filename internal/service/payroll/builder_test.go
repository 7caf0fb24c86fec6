package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softmint-it/lumorahr/internal/domain/attendance"
	"github.com/softmint-it/lumorahr/internal/domain/leave"
	"github.com/softmint-it/lumorahr/internal/domain/payroll"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func monthPeriod(year int, month time.Month) payroll.Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return payroll.Period{Start: start, End: start.AddDate(0, 1, -1)}
}

func workingDaysPolicy() payroll.AttendancePolicy {
	return payroll.AttendancePolicy{
		OvertimeRatePerHour:    dec("15"),
		ProrationBasis:         payroll.ProrationWorkingDays,
		HalfDayDeductionFactor: dec("0.5"),
	}
}

func TestBuildEntry_FullComputation(t *testing.T) {
	basic := dec("3000")
	in := BuilderInput{
		RunID:       "run-1",
		EmployeeID:  "emp-1",
		BasicSalary: &basic,
		Attendance: attendance.PeriodSummary{
			EmployeeID:    "emp-1",
			WorkingDays:   22,
			PresentDays:   dec("18.5"),
			HalfDays:      dec("1"),
			AbsentDays:    dec("0"),
			OvertimeHours: dec("2"),
		},
		Leave: leave.PeriodLeave{
			EmployeeID: "emp-1",
			PaidDays:   dec("1"),
			UnpaidDays: dec("2"),
		},
		Components: ComponentResult{
			ComponentEarnings: dec("250"),
			TotalDeductions:   dec("120"),
		},
		Policy: workingDaysPolicy(),
		Period: monthPeriod(2026, time.June),
	}

	entry, err := BuildEntry(in)
	require.NoError(t, err)

	// per day = 3000 / 22 working days, rounded to 2dp
	assert.True(t, entry.PerDaySalary.Equal(dec("136.36")), "per day = %s", entry.PerDaySalary)
	// unpaid deduction = 2 unpaid days + 1 half day at factor 0.5
	// 272.72 + 68.18 = 340.90
	assert.True(t, entry.UnpaidLeaveDeduction.Equal(dec("340.90")), "unpaid deduction = %s", entry.UnpaidLeaveDeduction)
	// overtime = 2h * 15
	assert.True(t, entry.OvertimeAmount.Equal(dec("30")), "overtime = %s", entry.OvertimeAmount)
	// gross = 3000 + 250 + 30 - 340.90
	assert.True(t, entry.GrossPay.Equal(dec("2939.10")), "gross = %s", entry.GrossPay)
	// net = gross - 120
	assert.True(t, entry.NetPay.Equal(dec("2819.10")), "net = %s", entry.NetPay)
	assert.True(t, entry.NetPay.Equal(entry.GrossPay.Sub(entry.TotalDeductions)))
	assert.Equal(t, payroll.EntryStatusComputed, entry.Status)
}

// 3000.00 over 22 working days with one unpaid day: the unpaid deduction is
// exactly one per-day salary and net equals gross with no other deductions.
func TestBuildEntry_SingleUnpaidDay(t *testing.T) {
	basic := dec("3000.00")
	entry, err := BuildEntry(BuilderInput{
		RunID:       "run-1",
		EmployeeID:  "emp-1",
		BasicSalary: &basic,
		Attendance:  attendance.PeriodSummary{WorkingDays: 22, PresentDays: dec("21")},
		Leave:       leave.PeriodLeave{UnpaidDays: dec("1")},
		Policy:      workingDaysPolicy(),
		Period:      monthPeriod(2026, time.June),
	})
	require.NoError(t, err)

	assert.True(t, entry.PerDaySalary.Equal(dec("136.36")))
	assert.True(t, entry.UnpaidLeaveDeduction.Equal(dec("136.36")))
	assert.True(t, entry.GrossPay.Equal(dec("2863.64")))
	assert.True(t, entry.NetPay.Equal(dec("2863.64")))
}

func TestBuildEntry_CalendarDaysProration(t *testing.T) {
	basic := dec("3100")
	policy := workingDaysPolicy()
	policy.ProrationBasis = payroll.ProrationCalendarDays

	entry, err := BuildEntry(BuilderInput{
		RunID:       "run-1",
		EmployeeID:  "emp-1",
		BasicSalary: &basic,
		Attendance:  attendance.PeriodSummary{WorkingDays: 22, PresentDays: dec("22")},
		Policy:      policy,
		Period:      monthPeriod(2026, time.July),
	})
	require.NoError(t, err)

	// July has 31 calendar days
	assert.True(t, entry.PerDaySalary.Equal(dec("100")), "per day = %s", entry.PerDaySalary)
}

func TestBuildEntry_MissingSalary(t *testing.T) {
	_, err := BuildEntry(BuilderInput{
		RunID:      "run-1",
		EmployeeID: "emp-1",
		Attendance: attendance.PeriodSummary{WorkingDays: 22},
		Policy:     workingDaysPolicy(),
		Period:     monthPeriod(2026, time.June),
	})
	assert.ErrorIs(t, err, payroll.ErrMissingSalary)
}

func TestBuildEntry_NoPayableDays(t *testing.T) {
	basic := dec("3000")
	_, err := BuildEntry(BuilderInput{
		RunID:       "run-1",
		EmployeeID:  "emp-1",
		BasicSalary: &basic,
		Attendance:  attendance.PeriodSummary{WorkingDays: 0},
		Policy:      workingDaysPolicy(),
		Period:      monthPeriod(2026, time.June),
	})
	assert.ErrorIs(t, err, payroll.ErrNoPayableDays)
}

// Recomputation with unchanged inputs must produce an identical entry.
func TestBuildEntry_Deterministic(t *testing.T) {
	basic := dec("2750.50")
	in := BuilderInput{
		RunID:       "run-1",
		EmployeeID:  "emp-1",
		BasicSalary: &basic,
		Attendance: attendance.PeriodSummary{
			WorkingDays:   21,
			PresentDays:   dec("19"),
			AbsentDays:    dec("2"),
			OvertimeHours: dec("3.5"),
		},
		Leave:  leave.PeriodLeave{UnpaidDays: dec("1.5")},
		Policy: workingDaysPolicy(),
		Period: monthPeriod(2026, time.May),
	}

	first, err := BuildEntry(in)
	require.NoError(t, err)
	second, err := BuildEntry(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
