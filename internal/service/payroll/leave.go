package payroll

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/softmint-it/lumorahr/internal/domain/leave"
	"github.com/softmint-it/lumorahr/internal/domain/payroll"
)

// LeaveResolver classifies an employee's approved leave days inside a pay
// period as paid or unpaid.
type LeaveResolver struct {
	leaveRepo leave.Repository
}

func NewLeaveResolver(leaveRepo leave.Repository) *LeaveResolver {
	return &LeaveResolver{leaveRepo: leaveRepo}
}

// Resolve intersects each approved application with the period. Half-day
// granularity is preserved: a span starting or ending on a half day
// contributes 0.5 for that edge date. The second return value maps covered
// dates (2006-01-02) to their covered fraction so the attendance aggregator
// does not double-count them as absent.
func (r *LeaveResolver) Resolve(ctx context.Context, employeeID, companyID string, period payroll.Period) (leave.PeriodLeave, map[string]decimal.Decimal, error) {
	result := leave.PeriodLeave{EmployeeID: employeeID}

	apps, err := r.leaveRepo.ListApprovedApplications(ctx, employeeID, companyID, period.Start, period.End)
	if err != nil {
		return result, nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	if len(apps) == 0 {
		return result, map[string]decimal.Decimal{}, nil
	}

	policies, err := r.leaveRepo.GetPolicies(ctx, companyID)
	if err != nil {
		return result, nil, fmt.Errorf("failed to load leave policies: %w", err)
	}

	sort.Slice(apps, func(i, j int) bool { return apps[i].StartDate.Before(apps[j].StartDate) })
	for i := 1; i < len(apps); i++ {
		if !apps[i].StartDate.After(apps[i-1].EndDate) {
			return result, nil, fmt.Errorf("%w: employee %s, applications %s and %s",
				leave.ErrOverlappingLeave, employeeID, apps[i-1].ID, apps[i].ID)
		}
	}

	covered := make(map[string]decimal.Decimal)
	one := decimal.NewFromInt(1)

	for _, app := range apps {
		policy, ok := policies[app.LeaveTypeID]
		if !ok {
			return result, nil, fmt.Errorf("%w: leave type %s", leave.ErrPolicyNotFound, app.LeaveTypeID)
		}

		clipStart := maxDate(app.StartDate, period.Start)
		clipEnd := minDate(app.EndDate, period.End)

		days := decimal.Zero
		for d := clipStart; !d.After(clipEnd); d = d.AddDate(0, 0, 1) {
			fraction := one
			if app.StartHalfDay && d.Equal(app.StartDate) {
				fraction = half
			} else if app.EndHalfDay && d.Equal(app.EndDate) {
				fraction = half
			}
			days = days.Add(fraction)
			covered[d.Format("2006-01-02")] = fraction
		}

		if policy.IsPaid {
			result.PaidDays = result.PaidDays.Add(days)
		} else {
			result.UnpaidDays = result.UnpaidDays.Add(days)
		}
	}

	return result, covered, nil
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
