package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"time"

	"github.com/segyhp/loan-ledger/internal/config"
	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/internal/ledger"
	"github.com/segyhp/loan-ledger/internal/repository"
	customError "github.com/segyhp/loan-ledger/pkg/errors"

	"github.com/sirupsen/logrus"
)

type LoanService struct {
	ClientRepo      repository.ClientRepository
	LoanRepo        repository.LoanRepository
	InstallmentRepo repository.InstallmentRepository
	log             *logrus.Logger
	config          *config.Config
	now             func() time.Time
}

func NewLoanService(
	clientRepo repository.ClientRepository,
	loanRepo repository.LoanRepository,
	installmentRepo repository.InstallmentRepository,
	log *logrus.Logger,
	config *config.Config,
) *LoanService {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &LoanService{
		ClientRepo:      clientRepo,
		LoanRepo:        loanRepo,
		InstallmentRepo: installmentRepo,
		log:             log,
		config:          config,
		now:             time.Now,
	}
}

// WithClock replaces the time source, for tests and backfills.
func (s *LoanService) WithClock(now func() time.Time) *LoanService {
	s.now = now
	return s
}

// today is the current calendar date in the configured business timezone
func (s *LoanService) today() time.Time {
	now := s.now()
	if s.config != nil {
		now = now.In(s.config.Location())
	}
	return now
}

func (s *LoanService) upcomingWindow() int {
	if s.config != nil {
		return s.config.Business.UpcomingWindowDays
	}
	return ledger.UpcomingWindowDays
}

// lookupError turns a storage miss into the given not-found error
func lookupError(err error, notFound *customError.BusinessError) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return customError.WrapDatabaseError(err)
}

// CreateClient registers a new client
func (s *LoanService) CreateClient(ctx context.Context, request *domain.CreateClientRequest) (*domain.Client, error) {
	client := &domain.Client{
		Name:    request.Name,
		Phone:   request.Phone,
		TaxID:   request.TaxID,
		Email:   request.Email,
		Address: request.Address,
	}

	if err := s.ClientRepo.Create(ctx, client); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithField("client_id", client.ID).Info("client created")
	return client, nil
}

// GetClient returns a client and its loans
func (s *LoanService) GetClient(ctx context.Context, clientID int64) (*domain.ClientDetailResponse, error) {
	client, err := s.ClientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, lookupError(err, customError.WrapClientNotFound(clientID))
	}

	loans, err := s.LoanRepo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.ClientDetailResponse{Client: client, Loans: loans}, nil
}

// SearchClients filters clients by name; an empty query lists all of them
func (s *LoanService) SearchClients(ctx context.Context, query string) ([]*domain.Client, error) {
	clients, err := s.ClientRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return ledger.SearchClients(clients, query), nil
}

// CreateLoan generates the schedule and persists it together with the loan.
// Nothing is written when the terms are invalid or the client is unknown.
func (s *LoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.CreateLoanResponse, error) {
	schedule, err := ledger.GenerateSchedule(domain.LoanTerms{
		Principal:        request.Principal,
		InterestRate:     request.InterestRate,
		InstallmentCount: request.InstallmentCount,
		FirstDueDate:     request.FirstDueDate,
	})
	if err != nil {
		return nil, err
	}

	client, err := s.ClientRepo.GetByID(ctx, request.ClientID)
	if err != nil {
		return nil, lookupError(err, customError.WrapClientNotFound(request.ClientID))
	}

	loan := &domain.Loan{
		ClientID:     client.ID,
		ClientName:   client.Name,
		Principal:    request.Principal,
		InterestRate: request.InterestRate,
		Notes:        request.Notes,
	}

	if err = s.LoanRepo.CreateWithSchedule(ctx, loan, schedule); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"loan_id":      loan.ID,
		"client_id":    loan.ClientID,
		"installments": len(schedule),
	}).Info("loan created")

	return &domain.CreateLoanResponse{
		Loan:        loan,
		TotalAmount: ledger.TotalAmount(loan),
		Schedule:    schedule,
	}, nil
}

// GetLoan returns a loan with its schedule and summary
func (s *LoanService) GetLoan(ctx context.Context, loanID int64) (*domain.LoanDetailResponse, error) {
	loan, err := s.LoanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, lookupError(err, customError.WrapLoanNotFound(loanID))
	}

	schedule, err := s.InstallmentRepo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.LoanDetailResponse{
		Loan:     loan,
		Summary:  ledger.SummarizeLoan(loan, schedule, s.today()),
		Schedule: schedule,
	}, nil
}

// DeleteLoan removes a loan and, through storage, its installments
func (s *LoanService) DeleteLoan(ctx context.Context, loanID int64) error {
	if err := s.LoanRepo.Delete(ctx, loanID); err != nil {
		return lookupError(err, customError.WrapLoanNotFound(loanID))
	}

	s.log.WithField("loan_id", loanID).Info("loan deleted")
	return nil
}

// SearchLoans filters loans by their client's name
func (s *LoanService) SearchLoans(ctx context.Context, query string) ([]*domain.Loan, error) {
	clients, err := s.ClientRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	loans, err := s.LoanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return ledger.SearchLoans(clients, loans, query), nil
}

// PayInstallment marks an installment paid. Paying twice is a no-op that
// reports Changed=false and keeps the original PaidAt.
func (s *LoanService) PayInstallment(ctx context.Context, installmentID int64) (*domain.PayInstallmentResponse, error) {
	installment, err := s.InstallmentRepo.GetByID(ctx, installmentID)
	if err != nil {
		return nil, lookupError(err, customError.WrapInstallmentNotFound(installmentID))
	}

	if !ledger.MarkPaid(installment, s.now().UTC()) {
		return &domain.PayInstallmentResponse{Installment: installment, Changed: false}, nil
	}

	changed, err := s.InstallmentRepo.MarkPaid(ctx, installment.ID, *installment.PaidAt)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if !changed {
		// someone else paid it between our read and write; report their paid_at
		installment, err = s.InstallmentRepo.GetByID(ctx, installmentID)
		if err != nil {
			return nil, lookupError(err, customError.WrapInstallmentNotFound(installmentID))
		}
		return &domain.PayInstallmentResponse{Installment: installment, Changed: false}, nil
	}

	s.log.WithFields(logrus.Fields{
		"installment_id": installment.ID,
		"loan_id":        installment.LoanID,
		"number":         installment.Number,
		"amount":         installment.Amount.StringFixed(2),
	}).Info("installment paid")

	return &domain.PayInstallmentResponse{Installment: installment, Changed: true}, nil
}

// GetDashboard recomputes the portfolio aggregates from storage
func (s *LoanService) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	loans, err := s.LoanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	installments, err := s.InstallmentRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return ledger.BuildDashboard(loans, installments, s.today(), s.upcomingWindow()), nil
}

// ExportCSV writes every installment as CSV
func (s *LoanService) ExportCSV(ctx context.Context, w io.Writer) error {
	loans, err := s.LoanRepo.List(ctx)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	installments, err := s.InstallmentRepo.List(ctx)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return ledger.WriteCSV(w, ledger.ExportRows(loans, installments))
}

// UpcomingReminders lists the upcoming installments with their loan and client
func (s *LoanService) UpcomingReminders(ctx context.Context) ([]*domain.Reminder, error) {
	clients, err := s.ClientRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	loans, err := s.LoanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	installments, err := s.InstallmentRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	clientsByID := make(map[int64]*domain.Client, len(clients))
	for _, client := range clients {
		clientsByID[client.ID] = client
	}
	loansByID := make(map[int64]*domain.Loan, len(loans))
	for _, loan := range loans {
		loansByID[loan.ID] = loan
	}

	dashboard := ledger.BuildDashboard(loans, installments, s.today(), s.upcomingWindow())

	reminders := make([]*domain.Reminder, 0, len(dashboard.Upcoming))
	for _, installment := range dashboard.Upcoming {
		loan, ok := loansByID[installment.LoanID]
		if !ok {
			continue
		}
		client, ok := clientsByID[loan.ClientID]
		if !ok {
			continue
		}
		reminders = append(reminders, &domain.Reminder{Client: client, Loan: loan, Installment: installment})
	}

	return reminders, nil
}
