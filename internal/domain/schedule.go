package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment represents one scheduled repayment of a loan.
// PaidAt is set iff Paid.
type Installment struct {
	ID      int64           `json:"id" db:"id"`
	LoanID  int64           `json:"loan_id" db:"loan_id"`
	Number  int             `json:"number" db:"number"`
	DueDate time.Time       `json:"due_date" db:"due_date"`
	Amount  decimal.Decimal `json:"amount" db:"amount"`
	Paid    bool            `json:"paid" db:"paid"`
	PaidAt  *time.Time      `json:"paid_at,omitempty" db:"paid_at"`
}

// LoanTerms are the inputs of schedule generation.
type LoanTerms struct {
	Principal        decimal.Decimal
	InterestRate     decimal.Decimal
	InstallmentCount int
	FirstDueDate     string
}

type PayInstallmentResponse struct {
	Installment *Installment `json:"installment"`
	Changed     bool         `json:"changed"`
}

// Reminder is an upcoming installment together with who owes it.
type Reminder struct {
	Client      *Client
	Loan        *Loan
	Installment *Installment
}
