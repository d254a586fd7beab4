// Package server exposes the ledger over a JSON HTTP API. Routing uses chi;
// handlers are thin translations between HTTP and the service layer, with
// all domain rules living below.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foremenchoice/chitledger/internal/auth"
	"github.com/foremenchoice/chitledger/internal/middleware"
	"github.com/foremenchoice/chitledger/internal/service"
)

// Server wires the HTTP surface to the domain services.
type Server struct {
	groups        *service.GroupService
	subscribers   *service.SubscriberService
	enrollments   *service.EnrollmentService
	installments  *service.InstallmentService
	payments      *service.PaymentService
	dividends     *service.DividendService
	reports       *service.ReportService
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// New builds a Server over the given services.
func New(
	groups *service.GroupService,
	subscribers *service.SubscriberService,
	enrollments *service.EnrollmentService,
	installments *service.InstallmentService,
	payments *service.PaymentService,
	dividends *service.DividendService,
	reports *service.ReportService,
	authenticator auth.Authenticator,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		groups:        groups,
		subscribers:   subscribers,
		enrollments:   enrollments,
		installments:  installments,
		payments:      payments,
		dividends:     dividends,
		reports:       reports,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Router assembles the full route tree. Everything under /api/v1 except
// auth requires a valid operator token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(s.jwtManager))

			r.Route("/groups", func(r chi.Router) {
				r.Post("/", s.handleCreateGroup)
				r.Get("/", s.handleListGroups)
				r.Get("/{groupID}", s.handleGetGroup)
				r.Put("/{groupID}", s.handleUpdateGroup)
				r.Delete("/{groupID}", s.handleDeleteGroup)

				r.Post("/{groupID}/enrollments", s.handleEnroll)
				r.Get("/{groupID}/enrollments", s.handleListEnrollments)

				r.Post("/{groupID}/installments", s.handleGenerateInstallments)
				r.Get("/{groupID}/installments", s.handleListInstallments)

				r.Get("/{groupID}/dues", s.handleDuesStatus)

				r.Post("/{groupID}/dividends", s.handleDistributeDividends)
				r.Get("/{groupID}/dividends", s.handleDividendHistory)
			})

			r.Route("/subscribers", func(r chi.Router) {
				r.Post("/", s.handleCreateSubscriber)
				r.Get("/", s.handleListSubscribers)
				r.Get("/{subscriberID}", s.handleGetSubscriber)
				r.Delete("/{subscriberID}", s.handleDeleteSubscriber)
			})

			r.Route("/installments/{installmentID}", func(r chi.Router) {
				r.Post("/auction", s.handleRecordAuction)
				r.Post("/payments", s.handleRecordPayment)
				r.Get("/payments", s.handleListPayments)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/dashboard", s.handleDashboard)
				r.Get("/auctions.csv", s.handleExportAuctions)
				r.Get("/payments.csv", s.handleExportPayments)
				r.Get("/dividends.csv", s.handleExportDividends)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
