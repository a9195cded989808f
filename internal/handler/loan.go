package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/internal/service"
	customError "github.com/segyhp/loan-ledger/pkg/errors"
	"github.com/segyhp/loan-ledger/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const exportFilename = "installments.csv"

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
	log       logrus.FieldLogger
}

func NewLoanHandler(service *service.LoanService, log logrus.FieldLogger) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: validator.New(),
		log:       log,
	}
}

// decode reads a JSON body into dst and validates it
func (h *LoanHandler) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return customError.WrapValidation(err)
	}
	if err := h.validator.Struct(dst); err != nil {
		return customError.WrapValidation(err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, customError.WrapValidation(strconv.ErrSyntax)
	}
	return id, nil
}

// Dashboard handles GET /dashboard
func (h *LoanHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.GetDashboard(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	response.Success(w, dashboard)
}

// CreateClient handles POST /clients
func (h *LoanHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateClientRequest
	if err := h.decode(r, &request); err != nil {
		writeError(w, h.log, err)
		return
	}

	client, err := h.service.CreateClient(r.Context(), &request)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	response.Created(w, client)
}

// SearchClients handles GET /clients?q=
func (h *LoanHandler) SearchClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.SearchClients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	response.Success(w, clients)
}

// GetClient handles GET /clients/{id}
func (h *LoanHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	detail, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	response.Success(w, detail)
}

// CreateLoan handles POST /loans
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := h.decode(r, &request); err != nil {
		writeError(w, h.log, err)
		return
	}

	created, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	response.Created(w, created)
}

// SearchLoans handles GET /loans?q=
func (h *LoanHandler) SearchLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.SearchLoans(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	response.Success(w, loans)
}

// GetLoan handles GET /loans/{id}
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	detail, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	response.Success(w, detail)
}

// DeleteLoan handles DELETE /loans/{id}
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.service.DeleteLoan(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	response.Success(w, map[string]int64{"deleted": id})
}

// PayInstallment handles POST /installments/{id}/pay
func (h *LoanHandler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	paid, err := h.service.PayInstallment(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	response.Success(w, paid)
}

// Export handles GET /export.csv
func (h *LoanHandler) Export(w http.ResponseWriter, r *http.Request) {
	// buffered so a storage failure can still become a JSON error
	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), &buf); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+exportFilename)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.WithError(err).Warn("export interrupted")
	}
}
