package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softmint-it/lumorahr/internal/domain/leave"
	"github.com/softmint-it/lumorahr/internal/domain/payroll"
)

type fakeLeaveRepo struct {
	apps     []leave.Application
	policies map[string]leave.Policy
}

func (f *fakeLeaveRepo) ListApprovedApplications(ctx context.Context, employeeID, companyID string, from, to time.Time) ([]leave.Application, error) {
	return f.apps, nil
}

func (f *fakeLeaveRepo) GetPolicies(ctx context.Context, companyID string) (map[string]leave.Policy, error) {
	return f.policies, nil
}

func junePeriod() payroll.Period {
	return payroll.Period{Start: day(2026, time.June, 1), End: day(2026, time.June, 30)}
}

func standardPolicies() map[string]leave.Policy {
	return map[string]leave.Policy{
		"lt-annual": {LeaveTypeID: "lt-annual", Name: "Annual Leave", IsPaid: true},
		"lt-unpaid": {LeaveTypeID: "lt-unpaid", Name: "Unpaid Leave", IsPaid: false},
	}
}

func TestResolve_PaidAndUnpaidClassified(t *testing.T) {
	repo := &fakeLeaveRepo{
		apps: []leave.Application{
			{ID: "a-1", LeaveTypeID: "lt-annual", StartDate: day(2026, time.June, 3), EndDate: day(2026, time.June, 5), Status: leave.StatusApproved},
			{ID: "a-2", LeaveTypeID: "lt-unpaid", StartDate: day(2026, time.June, 10), EndDate: day(2026, time.June, 11), Status: leave.StatusApproved},
		},
		policies: standardPolicies(),
	}

	resolver := NewLeaveResolver(repo)
	result, covered, err := resolver.Resolve(context.Background(), "emp-1", "co-1", junePeriod())
	require.NoError(t, err)

	assert.True(t, result.PaidDays.Equal(decimal.NewFromInt(3)))
	assert.True(t, result.UnpaidDays.Equal(decimal.NewFromInt(2)))
	assert.Len(t, covered, 5)
	assert.True(t, covered["2026-06-04"].Equal(decimal.NewFromInt(1)))
}

func TestResolve_HalfDayEdges(t *testing.T) {
	repo := &fakeLeaveRepo{
		apps: []leave.Application{
			{
				ID:           "a-1",
				LeaveTypeID:  "lt-annual",
				StartDate:    day(2026, time.June, 8),
				EndDate:      day(2026, time.June, 10),
				StartHalfDay: true,
				Status:       leave.StatusApproved,
			},
		},
		policies: standardPolicies(),
	}

	resolver := NewLeaveResolver(repo)
	result, covered, err := resolver.Resolve(context.Background(), "emp-1", "co-1", junePeriod())
	require.NoError(t, err)

	// 0.5 + 1 + 1
	assert.True(t, result.PaidDays.Equal(dec("2.5")))
	assert.True(t, covered["2026-06-08"].Equal(dec("0.5")))
	assert.True(t, covered["2026-06-09"].Equal(decimal.NewFromInt(1)))
}

// A span reaching outside the pay period only counts the days inside it.
func TestResolve_ClipsToPeriod(t *testing.T) {
	repo := &fakeLeaveRepo{
		apps: []leave.Application{
			{
				ID:          "a-1",
				LeaveTypeID: "lt-annual",
				StartDate:   day(2026, time.May, 28),
				EndDate:     day(2026, time.June, 2),
				Status:      leave.StatusApproved,
			},
		},
		policies: standardPolicies(),
	}

	resolver := NewLeaveResolver(repo)
	result, covered, err := resolver.Resolve(context.Background(), "emp-1", "co-1", junePeriod())
	require.NoError(t, err)

	assert.True(t, result.PaidDays.Equal(decimal.NewFromInt(2)))
	assert.Len(t, covered, 2)
}

func TestResolve_OverlappingApplications(t *testing.T) {
	repo := &fakeLeaveRepo{
		apps: []leave.Application{
			{ID: "a-1", LeaveTypeID: "lt-annual", StartDate: day(2026, time.June, 3), EndDate: day(2026, time.June, 5), Status: leave.StatusApproved},
			{ID: "a-2", LeaveTypeID: "lt-annual", StartDate: day(2026, time.June, 5), EndDate: day(2026, time.June, 6), Status: leave.StatusApproved},
		},
		policies: standardPolicies(),
	}

	resolver := NewLeaveResolver(repo)
	_, _, err := resolver.Resolve(context.Background(), "emp-1", "co-1", junePeriod())
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestResolve_MissingPolicy(t *testing.T) {
	repo := &fakeLeaveRepo{
		apps: []leave.Application{
			{ID: "a-1", LeaveTypeID: "lt-unknown", StartDate: day(2026, time.June, 3), EndDate: day(2026, time.June, 4), Status: leave.StatusApproved},
		},
		policies: standardPolicies(),
	}

	resolver := NewLeaveResolver(repo)
	_, _, err := resolver.Resolve(context.Background(), "emp-1", "co-1", junePeriod())
	assert.ErrorIs(t, err, leave.ErrPolicyNotFound)
}

func TestResolve_NoApplications(t *testing.T) {
	repo := &fakeLeaveRepo{policies: standardPolicies()}

	resolver := NewLeaveResolver(repo)
	result, covered, err := resolver.Resolve(context.Background(), "emp-1", "co-1", junePeriod())
	require.NoError(t, err)

	assert.True(t, result.PaidDays.IsZero())
	assert.True(t, result.UnpaidDays.IsZero())
	assert.Empty(t, covered)
}
