package payroll

import "context"

// Service is the payroll run orchestration API consumed by transport.
type Service interface {
	CreateRun(ctx context.Context, req CreateRunRequest) (RunResponse, error)
	GetRun(ctx context.Context, id string) (RunResponse, error)
	GetRunSummary(ctx context.Context, id string) (RunSummaryResponse, error)
	ListRuns(ctx context.Context, filter RunFilter) (ListRunsResponse, error)
	ListEntries(ctx context.Context, runID string) ([]EntryResponse, error)
	StartProcessing(ctx context.Context, runID string) (ProcessReport, error)
	CompleteRun(ctx context.Context, runID string, force bool) (RunResponse, error)
	CancelRun(ctx context.Context, runID string) (RunResponse, error)
	RecomputeEntry(ctx context.Context, runID, employeeID string) (EntryResponse, error)

	CreateComponent(ctx context.Context, req CreateComponentRequest) (ComponentResponse, error)
	ListComponents(ctx context.Context, activeOnly bool) ([]ComponentResponse, error)
}
