package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/softmint-it/lumorahr/internal/domain/employee"
	"github.com/softmint-it/lumorahr/internal/domain/payroll"
	"github.com/softmint-it/lumorahr/internal/domain/payslip"
	"github.com/softmint-it/lumorahr/internal/pkg/database"
	"github.com/softmint-it/lumorahr/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.Repository
	employeeRepo employee.Repository
	aggregator   *AttendanceAggregator
	resolver     *LeaveResolver
	emitter      payslip.Emitter
	concurrency  int
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.Repository,
	employeeRepo employee.Repository,
	aggregator *AttendanceAggregator,
	resolver *LeaveResolver,
	emitter payslip.Emitter,
	concurrency int,
) payroll.Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		aggregator:   aggregator,
		resolver:     resolver,
		emitter:      emitter,
		concurrency:  concurrency,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== RUNS ==========

func (s *PayrollServiceImpl) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)
	payDate, _ := time.Parse("2006-01-02", req.PayDate)

	run := payroll.PayrollRun{
		CompanyID:   companyID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		PayDate:     payDate,
		Frequency:   payroll.RunFrequency(req.Frequency),
		Status:      payroll.RunStatusDraft,
	}

	created, err := s.payrollRepo.CreateRun(ctx, run)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return payroll.NewRunResponse(created), nil
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return payroll.NewRunResponse(run), nil
}

func (s *PayrollServiceImpl) GetRunSummary(ctx context.Context, id string) (payroll.RunSummaryResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunSummaryResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunSummaryResponse{}, err
	}

	entries, err := s.payrollRepo.ListEntries(ctx, id, companyID)
	if err != nil {
		return payroll.RunSummaryResponse{}, err
	}

	summary := payroll.RunSummaryResponse{
		Run:             payroll.NewRunResponse(run),
		FailedEmployees: make([]payroll.FailedEmployeeSummary, 0),
	}
	for _, e := range entries {
		switch e.Status {
		case payroll.EntryStatusComputed:
			summary.ComputedEntries++
		case payroll.EntryStatusFailed:
			summary.FailedEntries++
			failed := payroll.FailedEmployeeSummary{EmployeeID: e.EmployeeID}
			if e.EmployeeName != nil {
				failed.EmployeeName = *e.EmployeeName
			}
			if e.FailureReason != nil {
				failed.Reason = *e.FailureReason
			}
			summary.FailedEmployees = append(summary.FailedEmployees, failed)
		}
	}
	return summary, nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context, filter payroll.RunFilter) (payroll.ListRunsResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListRunsResponse{}, err
	}

	runs, totalCount, err := s.payrollRepo.ListRuns(ctx, companyID, filter)
	if err != nil {
		return payroll.ListRunsResponse{}, err
	}

	data := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		data = append(data, payroll.NewRunResponse(run))
	}

	return payroll.ListRunsResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) ListEntries(ctx context.Context, runID string) ([]payroll.EntryResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.payrollRepo.ListEntries(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, payroll.NewEntryResponse(e))
	}
	return result, nil
}

// ========== PROCESSING ==========

// StartProcessing claims the draft run (losing a concurrent claim returns
// ErrRunStatusConflict), then computes an entry per active employee through
// a bounded worker pool. One employee failing records a failed entry and
// never aborts the batch. Totals are reduced from persisted entries after
// the pool drains.
func (s *PayrollServiceImpl) StartProcessing(ctx context.Context, runID string) (payroll.ProcessReport, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ProcessReport{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.ProcessReport{}, err
	}
	if !run.Status.CanTransitionTo(payroll.RunStatusProcessing) {
		return payroll.ProcessReport{}, fmt.Errorf("%w: %s -> processing", payroll.ErrInvalidRunTransition, run.Status)
	}

	run, err = s.payrollRepo.TransitionRunStatus(ctx, runID, companyID, run.Status, payroll.RunStatusProcessing, run.Version)
	if err != nil {
		return payroll.ProcessReport{}, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return payroll.ProcessReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	report := payroll.ProcessReport{RunID: runID, FailedEmployees: make(map[string]string)}
	var mu sync.Mutex

	// Cancellation stops scheduling new employee computations; workers
	// already in flight finish and their writes are discarded by the
	// repository's status guard.
	poolCtx, stopScheduling := context.WithCancel(ctx)
	defer stopScheduling()

	g, gctx := errgroup.WithContext(poolCtx)
	g.SetLimit(s.concurrency)

	for _, emp := range employees {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			err := s.computeEmployee(gctx, run, emp.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				report.Processed++
			case errors.Is(err, payroll.ErrRunNotEditable):
				stopScheduling()
				slog.Info("discarding entry for cancelled run",
					"run_id", runID, "employee_id", emp.ID)
			default:
				report.Failed++
				report.FailedEmployees[emp.ID] = err.Error()
				if markErr := s.payrollRepo.MarkEntryFailed(gctx, runID, emp.ID, companyID, err.Error()); markErr != nil && !errors.Is(markErr, payroll.ErrRunNotEditable) {
					slog.Error("failed to flag payroll entry",
						"run_id", runID, "employee_id", emp.ID, "error", markErr)
				}
			}
			return nil
		})
	}
	// Workers never return errors; they record failures per employee.
	_ = g.Wait()

	if _, err := s.payrollRepo.RecalculateRunTotals(ctx, runID, companyID); err != nil {
		return report, fmt.Errorf("failed to recalculate run totals: %w", err)
	}

	slog.Info("payroll run processed",
		"run_id", runID, "company_id", companyID,
		"processed", report.Processed, "failed", report.Failed)

	return report, nil
}

// computeEmployee runs the full per-employee pipeline: leave resolution,
// attendance aggregation, component evaluation, entry build, persist.
func (s *PayrollServiceImpl) computeEmployee(ctx context.Context, run payroll.PayrollRun, employeeID string) error {
	period := payroll.Period{Start: run.PeriodStart, End: run.PeriodEnd}

	salary, err := s.payrollRepo.GetEmployeeSalary(ctx, employeeID, run.CompanyID)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryNotFound) {
			return fmt.Errorf("%w: employee %s", payroll.ErrMissingSalary, employeeID)
		}
		return err
	}

	policy, err := s.payrollRepo.GetAttendancePolicy(ctx, run.CompanyID)
	if err != nil {
		return err
	}

	periodLeave, leaveDates, err := s.resolver.Resolve(ctx, employeeID, run.CompanyID, period)
	if err != nil {
		return err
	}

	summary, err := s.aggregator.Aggregate(ctx, employeeID, run.CompanyID, period, leaveDates)
	if err != nil {
		return err
	}

	componentIDs := make([]string, 0, len(salary.Components))
	for _, assignment := range salary.Components {
		componentIDs = append(componentIDs, assignment.ComponentID)
	}
	components, err := s.payrollRepo.GetComponentsForEvaluation(ctx, run.CompanyID, componentIDs)
	if err != nil {
		return err
	}

	var compResult ComponentResult
	if salary.BasicSalary != nil {
		compResult, err = EvaluateComponents(*salary.BasicSalary, salary.Components, components)
		if err != nil {
			return err
		}
	}

	entry, err := BuildEntry(BuilderInput{
		RunID:       run.ID,
		EmployeeID:  employeeID,
		BasicSalary: salary.BasicSalary,
		Attendance:  summary,
		Leave:       periodLeave,
		Components:  compResult,
		Policy:      policy,
		Period:      period,
	})
	if err != nil {
		return err
	}

	if _, err := s.payrollRepo.UpsertEntry(ctx, entry); err != nil {
		return err
	}
	return nil
}

// CompleteRun freezes a processing run. Unless force is set, unresolved
// failed entries block completion. Payslips are emitted in the same
// transaction as the status transition.
func (s *PayrollServiceImpl) CompleteRun(ctx context.Context, runID string, force bool) (payroll.RunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if !run.Status.CanTransitionTo(payroll.RunStatusCompleted) {
		return payroll.RunResponse{}, fmt.Errorf("%w: %s -> completed", payroll.ErrInvalidRunTransition, run.Status)
	}

	failed, err := s.payrollRepo.CountFailedEntries(ctx, runID, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if failed > 0 && !force {
		return payroll.RunResponse{}, fmt.Errorf("%w: %d entries", payroll.ErrRunHasFailedEntries, failed)
	}

	var completed payroll.PayrollRun
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if _, err := s.payrollRepo.RecalculateRunTotals(txCtx, runID, companyID); err != nil {
			return err
		}
		completed, err = s.payrollRepo.TransitionRunStatus(txCtx, runID, companyID, run.Status, payroll.RunStatusCompleted, run.Version)
		if err != nil {
			return err
		}
		if _, err := s.emitter.EmitForRun(txCtx, runID, companyID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	slog.Info("payroll run completed", "run_id", runID, "company_id", companyID, "forced", force)
	return payroll.NewRunResponse(completed), nil
}

func (s *PayrollServiceImpl) CancelRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if !run.Status.CanTransitionTo(payroll.RunStatusCancelled) {
		return payroll.RunResponse{}, fmt.Errorf("%w: %s -> cancelled", payroll.ErrInvalidRunTransition, run.Status)
	}

	cancelled, err := s.payrollRepo.TransitionRunStatus(ctx, runID, companyID, run.Status, payroll.RunStatusCancelled, run.Version)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	slog.Info("payroll run cancelled", "run_id", runID, "company_id", companyID)
	return payroll.NewRunResponse(cancelled), nil
}

// RecomputeEntry re-runs the pipeline for one employee. Allowed while the
// run is draft or processing; recomputation with unchanged sources yields an
// identical entry.
func (s *PayrollServiceImpl) RecomputeEntry(ctx context.Context, runID, employeeID string) (payroll.EntryResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	if run.Status != payroll.RunStatusDraft && run.Status != payroll.RunStatusProcessing {
		return payroll.EntryResponse{}, payroll.ErrRunNotEditable
	}

	if err := s.computeEmployee(ctx, run, employeeID); err != nil {
		if markErr := s.payrollRepo.MarkEntryFailed(ctx, runID, employeeID, companyID, err.Error()); markErr != nil {
			slog.Error("failed to flag payroll entry",
				"run_id", runID, "employee_id", employeeID, "error", markErr)
		}
		return payroll.EntryResponse{}, err
	}

	if _, err := s.payrollRepo.RecalculateRunTotals(ctx, runID, companyID); err != nil {
		return payroll.EntryResponse{}, err
	}

	entry, err := s.payrollRepo.GetEntry(ctx, runID, employeeID, companyID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	return payroll.NewEntryResponse(entry), nil
}

// ========== COMPONENTS ==========

func (s *PayrollServiceImpl) CreateComponent(ctx context.Context, req payroll.CreateComponentRequest) (payroll.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComponentResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ComponentResponse{}, err
	}

	isTaxable := false
	if req.IsTaxable != nil {
		isTaxable = *req.IsTaxable
	}
	isMandatory := false
	if req.IsMandatory != nil {
		isMandatory = *req.IsMandatory
	}

	component := payroll.SalaryComponent{
		CompanyID:      companyID,
		Name:           req.Name,
		Type:           payroll.ComponentType(req.Type),
		CalcType:       payroll.CalcType(req.CalcType),
		DefaultAmount:  req.DefaultAmount,
		PercentOfBasic: req.PercentOfBasic,
		IsTaxable:      isTaxable,
		IsMandatory:    isMandatory,
		IsActive:       true,
	}
	if err := component.Validate(); err != nil {
		return payroll.ComponentResponse{}, err
	}

	created, err := s.payrollRepo.CreateComponent(ctx, component)
	if err != nil {
		return payroll.ComponentResponse{}, err
	}

	return payroll.NewComponentResponse(created), nil
}

func (s *PayrollServiceImpl) ListComponents(ctx context.Context, activeOnly bool) ([]payroll.ComponentResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	components, err := s.payrollRepo.GetComponentsByCompanyID(ctx, companyID, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.ComponentResponse, 0, len(components))
	for _, c := range components {
		result = append(result, payroll.NewComponentResponse(c))
	}
	return result, nil
}
