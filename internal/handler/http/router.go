package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"
)

type RouterOptions struct {
	JWTAuth        *jwtauth.JWTAuth
	Logger         *slog.Logger
	AllowedOrigins []string
	RateLimit      rate.Limit
	RateBurst      int
}

type Handlers struct {
	Compensation CompensationHandler
	Contribution ContributionHandler
	Loan         LoanHandler
	Dashboard    DashboardHandler
	Promotion    PromotionHandler
}

func NewRouter(opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	limiter := middleware.NewCallerRateLimiter(opts.RateLimit, opts.RateBurst)

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Use(jwtauth.Verifier(opts.JWTAuth))
		r.Use(middleware.AuthRequired)

		r.Route("/payslips/{employeeID}", func(r chi.Router) {
			r.Get("/", h.Compensation.GetPayslip)
			r.Get("/pdf", h.Compensation.GetPayslipPDF)
		})

		r.With(middleware.RequirePermission(identity.PermissionPayrollProcess)).
			Post("/payroll/runs", h.Compensation.RecordPayRun)

		r.Route("/contributions", func(r chi.Router) {
			r.With(limiter.RateLimit).Post("/compute", h.Contribution.Compute)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(identity.PermissionPayrollProcess))
				r.Post("/batches", h.Contribution.ProcessBatch)
				r.Post("/batches/{period}/paid", h.Contribution.MarkPaid)
			})
		})

		r.Route("/loans", func(r chi.Router) {
			r.With(limiter.RateLimit).Post("/quote", h.Loan.Quote)
			r.Get("/eligibility/{employeeID}", h.Loan.GetEligibility)
			r.Get("/types", h.Loan.ListTypes)
			r.Get("/", h.Loan.ListRequests)
			r.With(middleware.RequirePermission(identity.PermissionLoanApply)).Post("/", h.Loan.Submit)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(identity.PermissionLoanReview))
				r.Post("/{id}/approve", h.Loan.Approve)
				r.Post("/{id}/reject", h.Loan.Reject)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.RequirePermission(identity.PermissionDashboardView))
			r.Get("/rollup", h.Dashboard.GetRollup)
			r.Get("/performance/{employeeID}", h.Dashboard.GetPerformance)
		})

		r.Get("/promotions/readiness/{employeeID}", h.Promotion.GetReadiness)
	})

	return r
}
