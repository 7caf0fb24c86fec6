package payroll

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softmint-it/lumorahr/internal/domain/attendance"
	"github.com/softmint-it/lumorahr/internal/domain/leave"
	"github.com/softmint-it/lumorahr/internal/domain/payroll"
)

type fakeAttendanceRepo struct {
	mu        sync.Mutex
	records   []attendance.DayRecord
	holidays  []time.Time
	listCalls int
}

func (f *fakeAttendanceRepo) ListDayRecords(ctx context.Context, employeeID, companyID string, from, to time.Time) ([]attendance.DayRecord, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	return f.records, nil
}

func (f *fakeAttendanceRepo) HolidayDates(ctx context.Context, companyID string, from, to time.Time) ([]time.Time, error) {
	return f.holidays, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func presentRecord(date time.Time) attendance.DayRecord {
	in := date.Add(9 * time.Hour)
	out := date.Add(17 * time.Hour)
	return attendance.DayRecord{
		EmployeeID: "emp-1",
		Date:       date,
		ClockIn:    &in,
		ClockOut:   &out,
		TotalHours: decimal.NewFromInt(8),
		Status:     attendance.DayStatusPresent,
	}
}

// 2026-06-01 is a Monday; the week ending 2026-06-07 has five working days.
func weekPeriod() payroll.Period {
	return payroll.Period{Start: day(2026, time.June, 1), End: day(2026, time.June, 7)}
}

func TestAggregate_FullWeek(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	for d := 1; d <= 5; d++ {
		repo.records = append(repo.records, presentRecord(day(2026, time.June, d)))
	}

	agg := NewAttendanceAggregator(repo)
	summary, err := agg.Aggregate(context.Background(), "emp-1", "co-1", weekPeriod(), nil)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.WorkingDays)
	assert.Equal(t, 2, summary.WeekendDays)
	assert.True(t, summary.PresentDays.Equal(decimal.NewFromInt(5)))
	assert.True(t, summary.AbsentDays.IsZero())
}

func TestAggregate_MissingRecordCountsAbsent(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	for _, d := range []int{1, 2, 4, 5} { // no record on Wednesday
		repo.records = append(repo.records, presentRecord(day(2026, time.June, d)))
	}

	agg := NewAttendanceAggregator(repo)
	summary, err := agg.Aggregate(context.Background(), "emp-1", "co-1", weekPeriod(), nil)
	require.NoError(t, err)

	assert.True(t, summary.PresentDays.Equal(decimal.NewFromInt(4)))
	assert.True(t, summary.AbsentDays.Equal(decimal.NewFromInt(1)))
}

func TestAggregate_HalfDay(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	for d := 1; d <= 5; d++ {
		rec := presentRecord(day(2026, time.June, d))
		if d == 3 {
			rec.IsHalfDay = true
			rec.Status = attendance.DayStatusHalfDay
		}
		repo.records = append(repo.records, rec)
	}

	agg := NewAttendanceAggregator(repo)
	summary, err := agg.Aggregate(context.Background(), "emp-1", "co-1", weekPeriod(), nil)
	require.NoError(t, err)

	assert.True(t, summary.PresentDays.Equal(dec("4.5")))
	assert.True(t, summary.HalfDays.Equal(decimal.NewFromInt(1)))
}

func TestAggregate_HolidayNotAbsent(t *testing.T) {
	repo := &fakeAttendanceRepo{
		holidays: []time.Time{day(2026, time.June, 3)},
	}
	for _, d := range []int{1, 2, 4, 5} {
		repo.records = append(repo.records, presentRecord(day(2026, time.June, d)))
	}

	agg := NewAttendanceAggregator(repo)
	summary, err := agg.Aggregate(context.Background(), "emp-1", "co-1", weekPeriod(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.HolidayDays)
	assert.Equal(t, 4, summary.WorkingDays)
	assert.True(t, summary.AbsentDays.IsZero())
}

// A day covered by approved leave must not count absent; the leave resolver
// already accounts for it.
func TestAggregate_LeaveCoveredDayNotAbsent(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	for _, d := range []int{1, 2, 4, 5} {
		repo.records = append(repo.records, presentRecord(day(2026, time.June, d)))
	}
	leaveDates := map[string]decimal.Decimal{
		"2026-06-03": decimal.NewFromInt(1),
	}

	agg := NewAttendanceAggregator(repo)
	summary, err := agg.Aggregate(context.Background(), "emp-1", "co-1", weekPeriod(), leaveDates)
	require.NoError(t, err)

	assert.True(t, summary.AbsentDays.IsZero())
	assert.True(t, summary.PresentDays.Equal(decimal.NewFromInt(4)))
}

func TestAggregate_OvertimeSummed(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	for d := 1; d <= 5; d++ {
		rec := presentRecord(day(2026, time.June, d))
		rec.OvertimeHours = dec("1.5")
		repo.records = append(repo.records, rec)
	}

	agg := NewAttendanceAggregator(repo)
	summary, err := agg.Aggregate(context.Background(), "emp-1", "co-1", weekPeriod(), nil)
	require.NoError(t, err)

	assert.True(t, summary.OvertimeHours.Equal(dec("7.5")))
}

// Every calendar day lands in exactly one bucket, so present + absent + paid
// leave + unpaid leave + holiday + weekend days can never exceed the calendar
// days of the period, even with half-day records and half-day leave edges.
func TestAggregate_DayCategoriesWithinCalendarDays(t *testing.T) {
	period := junePeriod() // 30 calendar days, 8 weekend days

	lvRepo := &fakeLeaveRepo{
		apps: []leave.Application{
			{
				ID:           "a-1",
				LeaveTypeID:  "lt-annual",
				StartDate:    day(2026, time.June, 8),
				EndDate:      day(2026, time.June, 10),
				StartHalfDay: true,
				Status:       leave.StatusApproved,
			},
			{
				ID:          "a-2",
				LeaveTypeID: "lt-unpaid",
				StartDate:   day(2026, time.June, 15),
				EndDate:     day(2026, time.June, 15),
				Status:      leave.StatusApproved,
			},
		},
		policies: standardPolicies(),
	}
	resolver := NewLeaveResolver(lvRepo)
	periodLeave, covered, err := resolver.Resolve(context.Background(), "emp-1", "co-1", period)
	require.NoError(t, err)

	attRepo := &fakeAttendanceRepo{holidays: []time.Time{day(2026, time.June, 3)}}
	for d := 1; d <= 30; d++ {
		date := day(2026, time.June, d)
		// no record on the holiday, the fully covered leave days and one
		// absence; the half-day leave edge on the 8th still has a half-day
		// record
		if isWeekend(date) || d == 3 || d == 9 || d == 10 || d == 15 || d == 22 {
			continue
		}
		rec := presentRecord(date)
		if d == 4 || d == 8 {
			rec.IsHalfDay = true
			rec.Status = attendance.DayStatusHalfDay
		}
		attRepo.records = append(attRepo.records, rec)
	}

	agg := NewAttendanceAggregator(attRepo)
	summary, err := agg.Aggregate(context.Background(), "emp-1", "co-1", period, covered)
	require.NoError(t, err)

	total := summary.PresentDays.
		Add(summary.AbsentDays).
		Add(periodLeave.PaidDays).
		Add(periodLeave.UnpaidDays).
		Add(decimal.NewFromInt(int64(summary.HolidayDays))).
		Add(decimal.NewFromInt(int64(summary.WeekendDays)))

	// 16 present + 1 absent + 2.5 paid + 1 unpaid + 1 holiday + 8 weekend
	assert.True(t, total.Equal(dec("29.5")), "categories sum to %s", total)
	assert.True(t, total.LessThanOrEqual(decimal.NewFromInt(int64(period.CalendarDays()))))
}

func TestAggregate_OpenRecordFatal(t *testing.T) {
	rec := presentRecord(day(2026, time.June, 1))
	rec.ClockOut = nil
	repo := &fakeAttendanceRepo{records: []attendance.DayRecord{rec}}

	agg := NewAttendanceAggregator(repo)
	_, err := agg.Aggregate(context.Background(), "emp-1", "co-1", weekPeriod(), nil)
	assert.ErrorIs(t, err, attendance.ErrOpenRecord)
}

func TestAggregate_NegativeHoursFatal(t *testing.T) {
	rec := presentRecord(day(2026, time.June, 1))
	rec.TotalHours = dec("-1")
	repo := &fakeAttendanceRepo{records: []attendance.DayRecord{rec}}

	agg := NewAttendanceAggregator(repo)
	_, err := agg.Aggregate(context.Background(), "emp-1", "co-1", weekPeriod(), nil)
	assert.ErrorIs(t, err, attendance.ErrNegativeHours)
}
