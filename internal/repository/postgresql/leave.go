package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/softmint-it/lumorahr/internal/domain/leave"
	"github.com/softmint-it/lumorahr/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) ListApprovedApplications(ctx context.Context, employeeID, companyID string, from, to time.Time) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, leave_type_id, start_date, end_date,
			   start_half_day, end_half_day, status, reason, created_at, updated_at
		FROM leave_applications
		WHERE employee_id = $1 AND company_id = $2 AND status = 'approved'
		  AND start_date <= $4 AND end_date >= $3
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	defer rows.Close()

	var apps []leave.Application
	for rows.Next() {
		var a leave.Application
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.CompanyID, &a.LeaveTypeID, &a.StartDate, &a.EndDate,
			&a.StartHalfDay, &a.EndHalfDay, &a.Status, &a.Reason, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		apps = append(apps, a)
	}

	return apps, nil
}

func (r *leaveRepository) GetPolicies(ctx context.Context, companyID string) (map[string]leave.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, is_paid FROM leave_types
		WHERE company_id = $1
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	policies := make(map[string]leave.Policy)
	for rows.Next() {
		var p leave.Policy
		if err := rows.Scan(&p.LeaveTypeID, &p.Name, &p.IsPaid); err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		policies[p.LeaveTypeID] = p
	}

	return policies, nil
}
