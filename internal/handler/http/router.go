package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/softmint-it/lumorahr/internal/handler/http/middleware"
	"github.com/softmint-it/lumorahr/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, env string, payrollHandler PayrollHandler, payslipHandler PayslipHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "lumorahr-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/runs", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateRun)
					r.Get("/", payrollHandler.ListRuns)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetRun)
						r.Get("/summary", payrollHandler.GetRunSummary)
						r.Post("/process", payrollHandler.ProcessRun)
						r.Post("/complete", payrollHandler.CompleteRun)
						r.Post("/cancel", payrollHandler.CancelRun)
						r.Get("/entries", payrollHandler.ListEntries)
						r.Post("/entries/{employeeId}/recompute", payrollHandler.RecomputeEntry)
						r.Get("/payslips", payslipHandler.ListByRun)
					})
				})

				r.Route("/components", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateComponent)
					r.Get("/", payrollHandler.ListComponents)
				})
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payslipHandler.Get)
					r.Post("/send", payslipHandler.Send)
					r.Get("/download", payslipHandler.Download)
				})
			})
		})
	})

	return r
}
