package payslip

import "context"

// Emitter materializes payslips for completed runs and drives the
// generated -> sent / downloaded lifecycle.
type Emitter interface {
	// EmitForRun creates one generated payslip per computed entry of a
	// completed run. Called inside the run completion transaction.
	EmitForRun(ctx context.Context, runID, companyID string) ([]Payslip, error)
	Get(ctx context.Context, id string) (Response, error)
	ListForRun(ctx context.Context, runID string) ([]Response, error)
	Send(ctx context.Context, id string) (Response, error)
	// Download renders the PDF on first retrieval and returns the file path.
	// Every call increments the download counter.
	Download(ctx context.Context, id string) (string, Response, error)
	// RetryUnsent re-flags payslips stuck in generated; wired to the cron
	// scheduler.
	RetryUnsent(ctx context.Context) error
}
