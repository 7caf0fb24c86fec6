package payroll

import "context"

// Repository defines data access for payroll runs, entries, components and
// salaries. Every method takes companyID to prevent cross-company access.
type Repository interface {
	// Runs
	CreateRun(ctx context.Context, run PayrollRun) (PayrollRun, error)
	GetRunByID(ctx context.Context, id, companyID string) (PayrollRun, error)
	ListRuns(ctx context.Context, companyID string, filter RunFilter) ([]PayrollRun, int64, error)
	// TransitionRunStatus moves a run from->to only if the stored status and
	// version still match; a lost race returns ErrRunStatusConflict.
	TransitionRunStatus(ctx context.Context, id, companyID string, from, to RunStatus, version int) (PayrollRun, error)
	// RecalculateRunTotals reduces durably written computed entries into the
	// run's aggregate columns in a single statement.
	RecalculateRunTotals(ctx context.Context, id, companyID string) (PayrollRun, error)

	// Entries
	// UpsertEntry writes an entry only while its run is still processing;
	// otherwise it returns ErrRunNotEditable.
	UpsertEntry(ctx context.Context, entry PayrollEntry) (PayrollEntry, error)
	GetEntry(ctx context.Context, runID, employeeID, companyID string) (PayrollEntry, error)
	ListEntries(ctx context.Context, runID, companyID string) ([]PayrollEntry, error)
	MarkEntryFailed(ctx context.Context, runID, employeeID, companyID, reason string) error
	CountFailedEntries(ctx context.Context, runID, companyID string) (int, error)

	// Components
	CreateComponent(ctx context.Context, component SalaryComponent) (SalaryComponent, error)
	GetComponentsByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]SalaryComponent, error)
	// GetComponentsForEvaluation returns the requested components plus every
	// active mandatory component, so the evaluator can enforce that mandatory
	// components are never omitted.
	GetComponentsForEvaluation(ctx context.Context, companyID string, ids []string) (map[string]SalaryComponent, error)

	// Salaries and policy
	GetEmployeeSalary(ctx context.Context, employeeID, companyID string) (EmployeeSalary, error)
	GetAttendancePolicy(ctx context.Context, companyID string) (AttendancePolicy, error)
}
