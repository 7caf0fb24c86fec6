package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records and the holiday
// calendar. Every method takes companyID to prevent cross-company access.
type Repository interface {
	ListDayRecords(ctx context.Context, employeeID, companyID string, from, to time.Time) ([]DayRecord, error)
	HolidayDates(ctx context.Context, companyID string, from, to time.Time) ([]time.Time, error)
}
