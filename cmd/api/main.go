package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/softmint-it/lumorahr/internal/config"
	appHTTP "github.com/softmint-it/lumorahr/internal/handler/http"
	"github.com/softmint-it/lumorahr/internal/pkg/cron"
	"github.com/softmint-it/lumorahr/internal/pkg/database"
	"github.com/softmint-it/lumorahr/internal/pkg/jwt"
	"github.com/softmint-it/lumorahr/internal/repository/postgresql"
	payrollService "github.com/softmint-it/lumorahr/internal/service/payroll"
	payslipService "github.com/softmint-it/lumorahr/internal/service/payslip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	payrollRepo := postgresql.NewPayrollRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	jwtService := jwt.NewService(cfg.JWT.Secret)

	aggregator := payrollService.NewAttendanceAggregator(attendanceRepo)
	resolver := payrollService.NewLeaveResolver(leaveRepo)
	emitter := payslipService.NewEmitter(
		db,
		payslipRepo,
		payrollRepo,
		cfg.Payslip.StorageDir,
		cfg.Payslip.DispatchRetryAfter,
		cfg.Payslip.DispatchRetryLimit,
	)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		employeeRepo,
		aggregator,
		resolver,
		emitter,
		cfg.Worker.Concurrency,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	payslipHandler := appHTTP.NewPayslipHandler(emitter)

	router := appHTTP.NewRouter(jwtService, cfg.App.Env, payrollHandler, payslipHandler)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("payslip-dispatch-retry", cfg.Payslip.DispatchRetryEvery, emitter.RetryUnsent)
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("server listening", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
