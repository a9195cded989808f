package ledger

import (
	"time"

	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/pkg/utils"

	"github.com/shopspring/decimal"
)

// TotalAmount is principal plus flat interest, rounded to cents.
func TotalAmount(loan *domain.Loan) decimal.Decimal {
	return utils.ApplyFlatInterest(loan.Principal, loan.InterestRate)
}

// BuildDashboard computes the portfolio aggregates from the full loan and
// installment sets. Upcoming keeps the input order.
func BuildDashboard(loans []*domain.Loan, installments []*domain.Installment, today time.Time, windowDays int) *domain.Dashboard {
	dashboard := &domain.Dashboard{
		Today:          utils.StartOfDay(today),
		TotalPrincipal: decimal.Zero,
		TotalAmount:    decimal.Zero,
		TotalToReceive: decimal.Zero,
		TotalOverdue:   decimal.Zero,
		PaidTotal:      decimal.Zero,
		Upcoming:       []*domain.Installment{},
	}

	for _, loan := range loans {
		dashboard.TotalPrincipal = dashboard.TotalPrincipal.Add(loan.Principal)
		dashboard.TotalAmount = dashboard.TotalAmount.Add(TotalAmount(loan))
	}

	for _, installment := range installments {
		if installment.Paid {
			dashboard.PaidTotal = dashboard.PaidTotal.Add(installment.Amount)
			continue
		}

		dashboard.TotalToReceive = dashboard.TotalToReceive.Add(installment.Amount)
		if IsOverdue(installment, today) {
			dashboard.TotalOverdue = dashboard.TotalOverdue.Add(installment.Amount)
			dashboard.OverdueCount++
		}
		if IsUpcoming(installment, today, windowDays) {
			dashboard.Upcoming = append(dashboard.Upcoming, installment)
		}
	}

	return dashboard
}

// SummarizeLoan aggregates a single loan's schedule. NextInstallment is the
// lowest-numbered unpaid installment.
func SummarizeLoan(loan *domain.Loan, schedule []*domain.Installment, today time.Time) *domain.LoanSummary {
	summary := &domain.LoanSummary{
		TotalAmount:   TotalAmount(loan),
		PaidAmount:    decimal.Zero,
		Outstanding:   decimal.Zero,
		OverdueAmount: decimal.Zero,
	}

	for _, installment := range schedule {
		if installment.Paid {
			summary.PaidAmount = summary.PaidAmount.Add(installment.Amount)
			summary.PaidCount++
			continue
		}

		summary.Outstanding = summary.Outstanding.Add(installment.Amount)
		if IsOverdue(installment, today) {
			summary.OverdueAmount = summary.OverdueAmount.Add(installment.Amount)
			summary.OverdueCount++
		}
		if summary.NextInstallment == nil || installment.Number < summary.NextInstallment.Number {
			summary.NextInstallment = installment
		}
	}

	return summary
}
