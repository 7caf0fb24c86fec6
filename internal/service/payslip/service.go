package payslip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/softmint-it/lumorahr/internal/domain/payroll"
	"github.com/softmint-it/lumorahr/internal/domain/payslip"
	"github.com/softmint-it/lumorahr/internal/pkg/database"
)

type EmitterImpl struct {
	db          *database.DB
	payslipRepo payslip.Repository
	payrollRepo payroll.Repository
	storageDir  string
	retryAfter  time.Duration
	retryLimit  int
}

func NewEmitter(
	db *database.DB,
	payslipRepo payslip.Repository,
	payrollRepo payroll.Repository,
	storageDir string,
	retryAfter time.Duration,
	retryLimit int,
) payslip.Emitter {
	return &EmitterImpl{
		db:          db,
		payslipRepo: payslipRepo,
		payrollRepo: payrollRepo,
		storageDir:  storageDir,
		retryAfter:  retryAfter,
		retryLimit:  retryLimit,
	}
}

// EmitForRun creates one generated payslip per computed entry. Failed
// entries never get payslips. Runs inside the completion transaction, so a
// failure here rolls the whole completion back.
func (s *EmitterImpl) EmitForRun(ctx context.Context, runID, companyID string) ([]payslip.Payslip, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}
	if run.Status != payroll.RunStatusCompleted {
		return nil, payslip.ErrRunNotCompleted
	}

	entries, err := s.payrollRepo.ListEntries(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}

	year, month := run.PeriodEnd.Year(), int(run.PeriodEnd.Month())
	seq, err := s.payslipRepo.NextSequence(ctx, companyID, year, month)
	if err != nil {
		return nil, err
	}

	slips := make([]payslip.Payslip, 0, len(entries))
	for _, entry := range entries {
		if entry.Status != payroll.EntryStatusComputed {
			continue
		}
		slips = append(slips, payslip.Payslip{
			ID:            uuid.NewString(),
			EntryID:       entry.ID,
			RunID:         runID,
			EmployeeID:    entry.EmployeeID,
			CompanyID:     companyID,
			PayslipNumber: fmt.Sprintf("PS-%04d%02d-%04d", year, month, seq),
			PeriodStart:   run.PeriodStart,
			PeriodEnd:     run.PeriodEnd,
			PayDate:       run.PayDate,
			NetPay:        entry.NetPay,
			Status:        payslip.StatusGenerated,
		})
		seq++
	}

	if err := s.payslipRepo.CreateBatch(ctx, slips); err != nil {
		return nil, err
	}

	slog.Info("payslips emitted", "run_id", runID, "company_id", companyID, "count", len(slips))
	return slips, nil
}

func (s *EmitterImpl) Get(ctx context.Context, id string) (payslip.Response, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.Response{}, err
	}

	slip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payslip.Response{}, err
	}
	return payslip.NewResponse(slip), nil
}

func (s *EmitterImpl) ListForRun(ctx context.Context, runID string) ([]payslip.Response, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	slips, err := s.payslipRepo.ListByRun(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]payslip.Response, 0, len(slips))
	for _, slip := range slips {
		result = append(result, payslip.NewResponse(slip))
	}
	return result, nil
}

// Send records the generated -> sent transition. The actual email or
// notification dispatch belongs to the messaging service, which consumes the
// transition.
func (s *EmitterImpl) Send(ctx context.Context, id string) (payslip.Response, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.Response{}, err
	}

	slip, err := s.payslipRepo.MarkSent(ctx, id, companyID, time.Now())
	if err != nil {
		return payslip.Response{}, err
	}

	slog.Info("payslip sent", "payslip_id", id, "payslip_number", slip.PayslipNumber)
	return payslip.NewResponse(slip), nil
}

// Download renders the PDF on first retrieval, fires the generated ->
// downloaded transition once, and bumps the counter on every call.
func (s *EmitterImpl) Download(ctx context.Context, id string) (string, payslip.Response, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return "", payslip.Response{}, err
	}

	slip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return "", payslip.Response{}, err
	}

	filePath := ""
	if slip.FilePath != nil {
		filePath = *slip.FilePath
	} else {
		filePath, err = s.renderPDF(ctx, slip, companyID)
		if err != nil {
			return "", payslip.Response{}, fmt.Errorf("failed to render payslip pdf: %w", err)
		}
		if err := s.payslipRepo.SetFilePath(ctx, id, companyID, filePath); err != nil {
			return "", payslip.Response{}, err
		}
	}

	if slip.Status == payslip.StatusGenerated {
		slip, err = s.payslipRepo.MarkDownloaded(ctx, id, companyID, time.Now())
		if err != nil && !errors.Is(err, payslip.ErrInvalidTransition) {
			return "", payslip.Response{}, err
		}
	}
	if err := s.payslipRepo.IncrementDownloadCount(ctx, id, companyID); err != nil {
		return "", payslip.Response{}, err
	}

	slip, err = s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return "", payslip.Response{}, err
	}
	return filePath, payslip.NewResponse(slip), nil
}

func (s *EmitterImpl) renderPDF(ctx context.Context, slip payslip.Payslip, companyID string) (string, error) {
	entry, err := s.payrollRepo.GetEntry(ctx, slip.RunID, slip.EmployeeID, companyID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.storageDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.storageDir, slip.PayslipNumber+".pdf")

	employeeName := slip.EmployeeID
	if entry.EmployeeName != nil {
		employeeName = *entry.EmployeeName
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip "+slip.PayslipNumber)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		slip.PeriodStart.Format("2006-01-02"), slip.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay date: %s", slip.PayDate.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Basic salary: %s", entry.BasicSalary.StringFixed(2)))
	pdf.Ln(6)
	for _, line := range entry.EarningsBreakdown {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s", line.Name, line.Amount.StringFixed(2)))
		pdf.Ln(6)
	}
	if entry.OvertimeAmount.IsPositive() {
		pdf.Cell(0, 7, fmt.Sprintf("Overtime: %s", entry.OvertimeAmount.StringFixed(2)))
		pdf.Ln(6)
	}
	if entry.UnpaidLeaveDeduction.IsPositive() {
		pdf.Cell(0, 7, fmt.Sprintf("Unpaid leave: -%s", entry.UnpaidLeaveDeduction.StringFixed(2)))
		pdf.Ln(6)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range entry.DeductionsBreakdown {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s", line.Name, line.Amount.StringFixed(2)))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross pay: %s", entry.GrossPay.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %s", entry.NetPay.StringFixed(2)))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

// RetryUnsent flags payslips stuck in generated after the retry window so
// operators and the dispatch consumer can pick them up again.
func (s *EmitterImpl) RetryUnsent(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retryAfter)
	slips, err := s.payslipRepo.ListUnsent(ctx, cutoff, s.retryLimit)
	if err != nil {
		return fmt.Errorf("failed to list unsent payslips: %w", err)
	}
	for _, slip := range slips {
		slog.Warn("payslip still undelivered",
			"payslip_id", slip.ID, "payslip_number", slip.PayslipNumber,
			"generated_at", slip.CreatedAt)
	}
	return nil
}
