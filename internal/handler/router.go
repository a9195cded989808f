package handler

import (
	"net/http"

	"github.com/segyhp/loan-ledger/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every route. Everything under /api/v1 except /login
// requires a session.
func NewRouter(loanHandler *LoanHandler, authHandler *AuthHandler, healthHandler *HealthHandler, log logrus.FieldLogger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(log))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods(http.MethodGet)

	/// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(authHandler.RequireAuth)

	protected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/dashboard", loanHandler.Dashboard).Methods(http.MethodGet)
	protected.HandleFunc("/clients", loanHandler.SearchClients).Methods(http.MethodGet)
	protected.HandleFunc("/clients", loanHandler.CreateClient).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{id:[0-9]+}", loanHandler.GetClient).Methods(http.MethodGet)
	protected.HandleFunc("/loans", loanHandler.SearchLoans).Methods(http.MethodGet)
	protected.HandleFunc("/loans", loanHandler.CreateLoan).Methods(http.MethodPost)
	protected.HandleFunc("/loans/{id:[0-9]+}", loanHandler.GetLoan).Methods(http.MethodGet)
	protected.HandleFunc("/loans/{id:[0-9]+}", loanHandler.DeleteLoan).Methods(http.MethodDelete)
	protected.HandleFunc("/installments/{id:[0-9]+}/pay", loanHandler.PayInstallment).Methods(http.MethodPost)
	protected.HandleFunc("/export.csv", loanHandler.Export).Methods(http.MethodGet)

	return router
}
