package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/softmint-it/lumorahr/internal/domain/payslip"
	"github.com/softmint-it/lumorahr/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.Repository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	id, entry_id, run_id, employee_id, company_id, payslip_number,
	period_start, period_end, pay_date, net_pay, status, file_path,
	download_count, sent_at, downloaded_at, created_at, updated_at
`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	err := row.Scan(
		&p.ID, &p.EntryID, &p.RunID, &p.EmployeeID, &p.CompanyID, &p.PayslipNumber,
		&p.PeriodStart, &p.PeriodEnd, &p.PayDate, &p.NetPay, &p.Status, &p.FilePath,
		&p.DownloadCount, &p.SentAt, &p.DownloadedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payslipRepository) CreateBatch(ctx context.Context, slips []payslip.Payslip) error {
	if len(slips) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueParts := make([]string, 0, len(slips))
	args := make([]interface{}, 0, len(slips)*10)
	for i, s := range slips {
		base := i * 10
		valueParts = append(valueParts, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10,
		))
		args = append(args,
			s.EntryID, s.RunID, s.EmployeeID, s.CompanyID, s.PayslipNumber,
			s.PeriodStart, s.PeriodEnd, s.PayDate, s.NetPay, s.Status,
		)
	}

	query := `
		INSERT INTO payslips (
			entry_id, run_id, employee_id, company_id, payslip_number,
			period_start, period_end, pay_date, net_pay, status
		)
		VALUES ` + strings.Join(valueParts, ", ")

	if _, err := q.Exec(ctx, query, args...); err != nil {
		if strings.Contains(err.Error(), "uk_payslip_number") {
			return payslip.ErrPayslipNumberExists
		}
		return fmt.Errorf("failed to create payslips: %w", err)
	}

	return nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id, companyID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.entry_id, p.run_id, p.employee_id, p.company_id, p.payslip_number,
			   p.period_start, p.period_end, p.pay_date, p.net_pay, p.status, p.file_path,
			   p.download_count, p.sent_at, p.downloaded_at, p.created_at, p.updated_at,
			   emp.full_name
		FROM payslips p
		JOIN employees emp ON p.employee_id = emp.id
		WHERE p.id = $1 AND p.company_id = $2
	`

	var p payslip.Payslip
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.EntryID, &p.RunID, &p.EmployeeID, &p.CompanyID, &p.PayslipNumber,
		&p.PeriodStart, &p.PeriodEnd, &p.PayDate, &p.NetPay, &p.Status, &p.FilePath,
		&p.DownloadCount, &p.SentAt, &p.DownloadedAt, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) ListByRun(ctx context.Context, runID, companyID string) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.entry_id, p.run_id, p.employee_id, p.company_id, p.payslip_number,
			   p.period_start, p.period_end, p.pay_date, p.net_pay, p.status, p.file_path,
			   p.download_count, p.sent_at, p.downloaded_at, p.created_at, p.updated_at,
			   emp.full_name
		FROM payslips p
		JOIN employees emp ON p.employee_id = emp.id
		WHERE p.run_id = $1 AND p.company_id = $2
		ORDER BY p.payslip_number
	`

	rows, err := q.Query(ctx, query, runID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var slips []payslip.Payslip
	for rows.Next() {
		var p payslip.Payslip
		if err := rows.Scan(
			&p.ID, &p.EntryID, &p.RunID, &p.EmployeeID, &p.CompanyID, &p.PayslipNumber,
			&p.PeriodStart, &p.PeriodEnd, &p.PayDate, &p.NetPay, &p.Status, &p.FilePath,
			&p.DownloadCount, &p.SentAt, &p.DownloadedAt, &p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		slips = append(slips, p)
	}

	return slips, nil
}

func (r *payslipRepository) MarkSent(ctx context.Context, id, companyID string, at time.Time) (payslip.Payslip, error) {
	return r.transition(ctx, id, companyID, "sent", "sent_at", at)
}

func (r *payslipRepository) MarkDownloaded(ctx context.Context, id, companyID string, at time.Time) (payslip.Payslip, error) {
	return r.transition(ctx, id, companyID, "downloaded", "downloaded_at", at)
}

// transition applies a one-way generated -> target move in a single guarded
// UPDATE, so concurrent callers cannot both win.
func (r *payslipRepository) transition(ctx context.Context, id, companyID, target, tsColumn string, at time.Time) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE payslips
		SET status = $1, %s = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4 AND status = 'generated'
		RETURNING %s
	`, tsColumn, payslipColumns)

	p, err := scanPayslip(q.QueryRow(ctx, query, target, at, id, companyID))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return payslip.Payslip{}, fmt.Errorf("failed to update payslip status: %w", err)
	}

	if _, getErr := r.GetByID(ctx, id, companyID); getErr != nil {
		return payslip.Payslip{}, getErr
	}
	return payslip.Payslip{}, payslip.ErrInvalidTransition
}

func (r *payslipRepository) IncrementDownloadCount(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET download_count = download_count + 1, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to increment download count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) SetFilePath(ctx context.Context, id, companyID, path string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET file_path = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, path, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to set payslip file path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) ListUnsent(ctx context.Context, cutoff time.Time, limit int) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips
		WHERE status = 'generated' AND created_at < $1
		ORDER BY created_at
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsent payslips: %w", err)
	}
	defer rows.Close()

	var slips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		slips = append(slips, p)
	}

	return slips, nil
}

func (r *payslipRepository) NextSequence(ctx context.Context, companyID string, year int, month int) (int, error) {
	q := GetQuerier(ctx, r.db)

	prefix := fmt.Sprintf("PS-%04d%02d", year, month)

	// Serialize completions for the same company and month, so two
	// transactions cannot hand out the same number. The lock is released
	// when the completion transaction ends.
	lockQuery := `SELECT pg_advisory_xact_lock(hashtext($1))`
	if _, err := q.Exec(ctx, lockQuery, companyID+"/"+prefix); err != nil {
		return 0, fmt.Errorf("failed to lock payslip sequence: %w", err)
	}

	// payslip_number layout is PS-YYYYMM-NNNN; the sequence starts at
	// character 11.
	query := `
		SELECT COALESCE(MAX(SUBSTRING(payslip_number FROM 11)::int), 0)
		FROM payslips
		WHERE company_id = $1 AND payslip_number LIKE $2
	`

	var max int
	if err := q.QueryRow(ctx, query, companyID, prefix+"-%").Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to compute payslip sequence: %w", err)
	}
	return max + 1, nil
}
