package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/softmint-it/lumorahr/internal/domain/payroll"
	"github.com/softmint-it/lumorahr/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

// ========== RUNS ==========

const runColumns = `
	id, company_id, period_start, period_end, pay_date, frequency, status,
	version, total_gross_pay, total_deductions, total_net_pay, employee_count,
	created_at, updated_at
`

func scanRun(row pgx.Row) (payroll.PayrollRun, error) {
	var r payroll.PayrollRun
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.PeriodStart, &r.PeriodEnd, &r.PayDate, &r.Frequency, &r.Status,
		&r.Version, &r.TotalGrossPay, &r.TotalDeductions, &r.TotalNetPay, &r.EmployeeCount,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (company_id, period_start, period_end, pay_date, frequency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query,
		run.CompanyID, run.PeriodStart, run.PeriodEnd, run.PayDate, run.Frequency, run.Status,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_run_period") {
			return payroll.PayrollRun{}, payroll.ErrRunPeriodOverlaps
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetRunByID(ctx context.Context, id, companyID string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1 AND company_id = $2`

	run, err := scanRun(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) ListRuns(ctx context.Context, companyID string, filter payroll.RunFilter) ([]payroll.PayrollRun, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereParts := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Status != "" {
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Year > 0 {
		whereParts = append(whereParts, fmt.Sprintf("EXTRACT(YEAR FROM period_end) = $%d", argIdx))
		args = append(args, filter.Year)
		argIdx++
	}
	where := strings.Join(whereParts, " AND ")

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM payroll_runs WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := fmt.Sprintf(`
		SELECT %s FROM payroll_runs
		WHERE %s
		ORDER BY period_end DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, runColumns, where, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, totalCount, nil
}

func (r *payrollRepository) TransitionRunStatus(ctx context.Context, id, companyID string, from, to payroll.RunStatus, version int) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND status = $4 AND version = $5
		RETURNING ` + runColumns

	run, err := scanRun(q.QueryRow(ctx, query, to, id, companyID, from, version))
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollRun{}, fmt.Errorf("failed to transition payroll run: %w", err)
	}

	// Distinguish a lost race from a missing run.
	if _, getErr := r.GetRunByID(ctx, id, companyID); getErr != nil {
		return payroll.PayrollRun{}, getErr
	}
	return payroll.PayrollRun{}, payroll.ErrRunStatusConflict
}

func (r *payrollRepository) RecalculateRunTotals(ctx context.Context, id, companyID string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	// One-statement reduction over durably written entries; never updated
	// incrementally under concurrent writers.
	query := `
		UPDATE payroll_runs
		SET total_gross_pay   = COALESCE((SELECT SUM(gross_pay) FROM payroll_entries WHERE run_id = $1 AND status = 'computed'), 0),
			total_deductions  = COALESCE((SELECT SUM(total_deductions) FROM payroll_entries WHERE run_id = $1 AND status = 'computed'), 0),
			total_net_pay     = COALESCE((SELECT SUM(net_pay) FROM payroll_entries WHERE run_id = $1 AND status = 'computed'), 0),
			employee_count    = COALESCE((SELECT COUNT(*) FROM payroll_entries WHERE run_id = $1 AND status = 'computed'), 0),
			updated_at        = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + runColumns

	run, err := scanRun(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to recalculate run totals: %w", err)
	}

	return run, nil
}

// ========== ENTRIES ==========

const entryColumnsUnprefixed = `
	id, run_id, employee_id, basic_salary, component_earnings,
	total_earnings, total_deductions, gross_pay, net_pay,
	overtime_amount, per_day_salary, unpaid_leave_deduction,
	working_days, present_days, half_days, holiday_days, weekend_days,
	paid_leave_days, unpaid_leave_days, absent_days, overtime_hours,
	earnings_breakdown, deductions_breakdown, status, failure_reason,
	created_at, updated_at
`

const entryColumns = `
	e.id, e.run_id, e.employee_id, e.basic_salary, e.component_earnings,
	e.total_earnings, e.total_deductions, e.gross_pay, e.net_pay,
	e.overtime_amount, e.per_day_salary, e.unpaid_leave_deduction,
	e.working_days, e.present_days, e.half_days, e.holiday_days, e.weekend_days,
	e.paid_leave_days, e.unpaid_leave_days, e.absent_days, e.overtime_hours,
	e.earnings_breakdown, e.deductions_breakdown, e.status, e.failure_reason,
	e.created_at, e.updated_at
`

func scanEntry(row pgx.Row) (payroll.PayrollEntry, error) {
	var e payroll.PayrollEntry
	var earningsJSON, deductionsJSON []byte
	err := row.Scan(
		&e.ID, &e.RunID, &e.EmployeeID, &e.BasicSalary, &e.ComponentEarnings,
		&e.TotalEarnings, &e.TotalDeductions, &e.GrossPay, &e.NetPay,
		&e.OvertimeAmount, &e.PerDaySalary, &e.UnpaidLeaveDeduction,
		&e.WorkingDays, &e.PresentDays, &e.HalfDays, &e.HolidayDays, &e.WeekendDays,
		&e.PaidLeaveDays, &e.UnpaidLeaveDays, &e.AbsentDays, &e.OvertimeHours,
		&earningsJSON, &deductionsJSON, &e.Status, &e.FailureReason,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	if len(earningsJSON) > 0 {
		if err := json.Unmarshal(earningsJSON, &e.EarningsBreakdown); err != nil {
			return e, fmt.Errorf("failed to decode earnings breakdown: %w", err)
		}
	}
	if len(deductionsJSON) > 0 {
		if err := json.Unmarshal(deductionsJSON, &e.DeductionsBreakdown); err != nil {
			return e, fmt.Errorf("failed to decode deductions breakdown: %w", err)
		}
	}
	return e, nil
}

func (r *payrollRepository) UpsertEntry(ctx context.Context, entry payroll.PayrollEntry) (payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	earningsJSON, err := json.Marshal(entry.EarningsBreakdown)
	if err != nil {
		return payroll.PayrollEntry{}, fmt.Errorf("failed to encode earnings breakdown: %w", err)
	}
	deductionsJSON, err := json.Marshal(entry.DeductionsBreakdown)
	if err != nil {
		return payroll.PayrollEntry{}, fmt.Errorf("failed to encode deductions breakdown: %w", err)
	}

	// The guarding SELECT only yields a row while the run still accepts
	// writes, so entries for completed or cancelled runs are discarded here.
	query := `
		INSERT INTO payroll_entries (
			run_id, employee_id, basic_salary, component_earnings, total_earnings,
			total_deductions, gross_pay, net_pay, overtime_amount, per_day_salary,
			unpaid_leave_deduction, working_days, present_days, half_days,
			holiday_days, weekend_days, paid_leave_days, unpaid_leave_days,
			absent_days, overtime_hours, earnings_breakdown, deductions_breakdown,
			status, failure_reason
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			   $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		FROM payroll_runs
		WHERE id = $1 AND status IN ('draft', 'processing')
		ON CONFLICT (run_id, employee_id) DO UPDATE SET
			basic_salary = EXCLUDED.basic_salary,
			component_earnings = EXCLUDED.component_earnings,
			total_earnings = EXCLUDED.total_earnings,
			total_deductions = EXCLUDED.total_deductions,
			gross_pay = EXCLUDED.gross_pay,
			net_pay = EXCLUDED.net_pay,
			overtime_amount = EXCLUDED.overtime_amount,
			per_day_salary = EXCLUDED.per_day_salary,
			unpaid_leave_deduction = EXCLUDED.unpaid_leave_deduction,
			working_days = EXCLUDED.working_days,
			present_days = EXCLUDED.present_days,
			half_days = EXCLUDED.half_days,
			holiday_days = EXCLUDED.holiday_days,
			weekend_days = EXCLUDED.weekend_days,
			paid_leave_days = EXCLUDED.paid_leave_days,
			unpaid_leave_days = EXCLUDED.unpaid_leave_days,
			absent_days = EXCLUDED.absent_days,
			overtime_hours = EXCLUDED.overtime_hours,
			earnings_breakdown = EXCLUDED.earnings_breakdown,
			deductions_breakdown = EXCLUDED.deductions_breakdown,
			status = EXCLUDED.status,
			failure_reason = EXCLUDED.failure_reason,
			updated_at = NOW()
		RETURNING ` + entryColumnsUnprefixed

	saved, err := scanEntry(q.QueryRow(ctx, query,
		entry.RunID, entry.EmployeeID, entry.BasicSalary, entry.ComponentEarnings, entry.TotalEarnings,
		entry.TotalDeductions, entry.GrossPay, entry.NetPay, entry.OvertimeAmount, entry.PerDaySalary,
		entry.UnpaidLeaveDeduction, entry.WorkingDays, entry.PresentDays, entry.HalfDays,
		entry.HolidayDays, entry.WeekendDays, entry.PaidLeaveDays, entry.UnpaidLeaveDays,
		entry.AbsentDays, entry.OvertimeHours, earningsJSON, deductionsJSON,
		entry.Status, entry.FailureReason,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollEntry{}, payroll.ErrRunNotEditable
		}
		return payroll.PayrollEntry{}, fmt.Errorf("failed to upsert payroll entry: %w", err)
	}

	return saved, nil
}

func (r *payrollRepository) GetEntry(ctx context.Context, runID, employeeID, companyID string) (payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `, emp.full_name, emp.employee_code
		FROM payroll_entries e
		JOIN payroll_runs run ON e.run_id = run.id
		JOIN employees emp ON e.employee_id = emp.id
		WHERE e.run_id = $1 AND e.employee_id = $2 AND run.company_id = $3
	`

	var e payroll.PayrollEntry
	var earningsJSON, deductionsJSON []byte
	err := q.QueryRow(ctx, query, runID, employeeID, companyID).Scan(
		&e.ID, &e.RunID, &e.EmployeeID, &e.BasicSalary, &e.ComponentEarnings,
		&e.TotalEarnings, &e.TotalDeductions, &e.GrossPay, &e.NetPay,
		&e.OvertimeAmount, &e.PerDaySalary, &e.UnpaidLeaveDeduction,
		&e.WorkingDays, &e.PresentDays, &e.HalfDays, &e.HolidayDays, &e.WeekendDays,
		&e.PaidLeaveDays, &e.UnpaidLeaveDays, &e.AbsentDays, &e.OvertimeHours,
		&earningsJSON, &deductionsJSON, &e.Status, &e.FailureReason,
		&e.CreatedAt, &e.UpdatedAt,
		&e.EmployeeName, &e.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
		}
		return payroll.PayrollEntry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}
	if len(earningsJSON) > 0 {
		if err := json.Unmarshal(earningsJSON, &e.EarningsBreakdown); err != nil {
			return payroll.PayrollEntry{}, fmt.Errorf("failed to decode earnings breakdown: %w", err)
		}
	}
	if len(deductionsJSON) > 0 {
		if err := json.Unmarshal(deductionsJSON, &e.DeductionsBreakdown); err != nil {
			return payroll.PayrollEntry{}, fmt.Errorf("failed to decode deductions breakdown: %w", err)
		}
	}

	return e, nil
}

func (r *payrollRepository) ListEntries(ctx context.Context, runID, companyID string) ([]payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `, emp.full_name, emp.employee_code
		FROM payroll_entries e
		JOIN payroll_runs run ON e.run_id = run.id
		JOIN employees emp ON e.employee_id = emp.id
		WHERE e.run_id = $1 AND run.company_id = $2
		ORDER BY emp.full_name
	`

	rows, err := q.Query(ctx, query, runID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.PayrollEntry
	for rows.Next() {
		var e payroll.PayrollEntry
		var earningsJSON, deductionsJSON []byte
		if err := rows.Scan(
			&e.ID, &e.RunID, &e.EmployeeID, &e.BasicSalary, &e.ComponentEarnings,
			&e.TotalEarnings, &e.TotalDeductions, &e.GrossPay, &e.NetPay,
			&e.OvertimeAmount, &e.PerDaySalary, &e.UnpaidLeaveDeduction,
			&e.WorkingDays, &e.PresentDays, &e.HalfDays, &e.HolidayDays, &e.WeekendDays,
			&e.PaidLeaveDays, &e.UnpaidLeaveDays, &e.AbsentDays, &e.OvertimeHours,
			&earningsJSON, &deductionsJSON, &e.Status, &e.FailureReason,
			&e.CreatedAt, &e.UpdatedAt,
			&e.EmployeeName, &e.EmployeeCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		if len(earningsJSON) > 0 {
			if err := json.Unmarshal(earningsJSON, &e.EarningsBreakdown); err != nil {
				return nil, fmt.Errorf("failed to decode earnings breakdown: %w", err)
			}
		}
		if len(deductionsJSON) > 0 {
			if err := json.Unmarshal(deductionsJSON, &e.DeductionsBreakdown); err != nil {
				return nil, fmt.Errorf("failed to decode deductions breakdown: %w", err)
			}
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *payrollRepository) MarkEntryFailed(ctx context.Context, runID, employeeID, companyID, reason string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_entries (run_id, employee_id, status, failure_reason)
		SELECT $1, $2, 'failed', $3
		FROM payroll_runs
		WHERE id = $1 AND company_id = $4 AND status IN ('draft', 'processing')
		ON CONFLICT (run_id, employee_id) DO UPDATE SET
			status = 'failed',
			failure_reason = EXCLUDED.failure_reason,
			updated_at = NOW()
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, runID, employeeID, reason, companyID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrRunNotEditable
		}
		return fmt.Errorf("failed to mark payroll entry failed: %w", err)
	}
	return nil
}

func (r *payrollRepository) CountFailedEntries(ctx context.Context, runID, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM payroll_entries e
		JOIN payroll_runs run ON e.run_id = run.id
		WHERE e.run_id = $1 AND run.company_id = $2 AND e.status = 'failed'
	`

	var count int
	if err := q.QueryRow(ctx, query, runID, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count failed entries: %w", err)
	}
	return count, nil
}

// ========== COMPONENTS ==========

const componentColumns = `
	id, company_id, name, type, calc_type, default_amount, percent_of_basic,
	is_taxable, is_mandatory, is_active, created_at, updated_at
`

func scanComponent(row pgx.Row) (payroll.SalaryComponent, error) {
	var c payroll.SalaryComponent
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Type, &c.CalcType, &c.DefaultAmount, &c.PercentOfBasic,
		&c.IsTaxable, &c.IsMandatory, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *payrollRepository) CreateComponent(ctx context.Context, component payroll.SalaryComponent) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_components (
			company_id, name, type, calc_type, default_amount, percent_of_basic,
			is_taxable, is_mandatory, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + componentColumns

	created, err := scanComponent(q.QueryRow(ctx, query,
		component.CompanyID, component.Name, component.Type, component.CalcType,
		component.DefaultAmount, component.PercentOfBasic,
		component.IsTaxable, component.IsMandatory, component.IsActive,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_component_name") {
			return payroll.SalaryComponent{}, payroll.ErrComponentNameExists
		}
		return payroll.SalaryComponent{}, fmt.Errorf("failed to create salary component: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetComponentsByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + componentColumns + ` FROM salary_components WHERE company_id = $1`
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY type, name"

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	var components []payroll.SalaryComponent
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		components = append(components, c)
	}

	return components, nil
}

func (r *payrollRepository) GetComponentsForEvaluation(ctx context.Context, companyID string, ids []string) (map[string]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM salary_components
		WHERE company_id = $1 AND (id = ANY($2) OR (is_mandatory = true AND is_active = true))
	`

	rows, err := q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load components for evaluation: %w", err)
	}
	defer rows.Close()

	components := make(map[string]payroll.SalaryComponent)
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		components[c.ID] = c
	}

	return components, nil
}

// ========== SALARIES & POLICY ==========

func (r *payrollRepository) GetEmployeeSalary(ctx context.Context, employeeID, companyID string) (payroll.EmployeeSalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, basic_salary, components,
			   calculation_status, created_at, updated_at
		FROM employee_salaries
		WHERE employee_id = $1 AND company_id = $2
	`

	var s payroll.EmployeeSalary
	var componentsJSON []byte
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&s.ID, &s.EmployeeID, &s.CompanyID, &s.BasicSalary, &componentsJSON,
		&s.CalculationStatus, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.EmployeeSalary{}, payroll.ErrSalaryNotFound
		}
		return payroll.EmployeeSalary{}, fmt.Errorf("failed to get employee salary: %w", err)
	}
	if len(componentsJSON) > 0 {
		if err := json.Unmarshal(componentsJSON, &s.Components); err != nil {
			return payroll.EmployeeSalary{}, fmt.Errorf("failed to decode salary components: %w", err)
		}
	}

	return s, nil
}

func (r *payrollRepository) GetAttendancePolicy(ctx context.Context, companyID string) (payroll.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, overtime_rate_per_hour, proration_basis,
			   half_day_deduction_factor, created_at, updated_at
		FROM attendance_policies
		WHERE company_id = $1
	`

	var p payroll.AttendancePolicy
	err := q.QueryRow(ctx, query, companyID).Scan(
		&p.ID, &p.CompanyID, &p.OvertimeRatePerHour, &p.ProrationBasis,
		&p.HalfDayDeductionFactor, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.AttendancePolicy{}, payroll.ErrPolicyNotFound
		}
		return payroll.AttendancePolicy{}, fmt.Errorf("failed to get attendance policy: %w", err)
	}

	return p, nil
}
