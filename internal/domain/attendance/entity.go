package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayStatus enum
type DayStatus string

const (
	DayStatusPresent DayStatus = "present"
	DayStatusHalfDay DayStatus = "half_day"
	DayStatusAbsent  DayStatus = "absent"
	DayStatusHoliday DayStatus = "holiday"
	DayStatusWeekend DayStatus = "weekend"
	DayStatusOnLeave DayStatus = "on_leave"
)

// DayRecord - one attendance row per (employee, date).
type DayRecord struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Date          time.Time
	ClockIn       *time.Time
	ClockOut      *time.Time
	TotalHours    decimal.Decimal
	BreakHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	IsLate        bool
	IsHalfDay     bool
	IsHoliday     bool
	IsWeekend     bool
	Status        DayStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Open reports a fatal data error: a clock-in without a matching clock-out.
func (r DayRecord) Open() bool {
	return r.ClockIn != nil && r.ClockOut == nil
}

// PeriodSummary aggregates one employee's attendance over a pay period.
// Day counts are decimal because half days contribute 0.5.
type PeriodSummary struct {
	EmployeeID    string
	PresentDays   decimal.Decimal
	HalfDays      decimal.Decimal
	AbsentDays    decimal.Decimal
	HolidayDays   int
	WeekendDays   int
	WorkingDays   int
	OvertimeHours decimal.Decimal
}
