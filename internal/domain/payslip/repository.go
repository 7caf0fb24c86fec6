package payslip

import (
	"context"
	"time"
)

// Repository defines data access for payslips.
type Repository interface {
	CreateBatch(ctx context.Context, slips []Payslip) error
	GetByID(ctx context.Context, id, companyID string) (Payslip, error)
	ListByRun(ctx context.Context, runID, companyID string) ([]Payslip, error)
	// MarkSent and MarkDownloaded apply the one-way transitions in SQL and
	// return ErrInvalidTransition when the stored status does not allow it.
	MarkSent(ctx context.Context, id, companyID string, at time.Time) (Payslip, error)
	MarkDownloaded(ctx context.Context, id, companyID string, at time.Time) (Payslip, error)
	// IncrementDownloadCount is valid in sent and downloaded states as well;
	// the counter moves independently of the status.
	IncrementDownloadCount(ctx context.Context, id, companyID string) error
	SetFilePath(ctx context.Context, id, companyID, path string) error
	// ListUnsent returns generated payslips for runs completed before cutoff,
	// used by the dispatch retry job.
	ListUnsent(ctx context.Context, cutoff time.Time, limit int) ([]Payslip, error)
	NextSequence(ctx context.Context, companyID string, year int, month int) (int, error)
}
