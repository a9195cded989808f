package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is a principal lent to one client with flat add-on interest.
// The total amount owed is derived, never stored.
type Loan struct {
	ID           int64           `json:"id" db:"id"`
	ClientID     int64           `json:"client_id" db:"client_id"`
	ClientName   string          `json:"client_name,omitempty" db:"client_name"`
	Principal    decimal.Decimal `json:"principal" db:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate" db:"interest_rate"` // percent
	Notes        string          `json:"notes" db:"notes"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	ClientID         int64           `json:"client_id" validate:"required,gt=0"`
	Principal        decimal.Decimal `json:"principal"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	InstallmentCount int             `json:"installment_count"`
	FirstDueDate     string          `json:"first_due_date"`
	Notes            string          `json:"notes" validate:"max=2000"`
}

type CreateLoanResponse struct {
	Loan        *Loan           `json:"loan"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Schedule    []*Installment  `json:"schedule"`
}

// LoanSummary is the per-loan view of the ledger.
type LoanSummary struct {
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	OverdueAmount   decimal.Decimal `json:"overdue_amount"`
	PaidCount       int             `json:"paid_count"`
	OverdueCount    int             `json:"overdue_count"`
	NextInstallment *Installment    `json:"next_installment,omitempty"`
}

type LoanDetailResponse struct {
	Loan     *Loan          `json:"loan"`
	Summary  *LoanSummary   `json:"summary"`
	Schedule []*Installment `json:"schedule"`
}
