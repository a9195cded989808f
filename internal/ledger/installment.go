package ledger

import (
	"time"

	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/pkg/utils"
)

// UpcomingWindowDays is the default look-ahead for upcoming installments.
const UpcomingWindowDays = 7

// MarkPaid moves an unpaid installment to paid at now. Re-marking a paid
// installment leaves PaidAt untouched and reports false.
func MarkPaid(installment *domain.Installment, now time.Time) bool {
	if installment.Paid {
		return false
	}
	paidAt := now
	installment.Paid = true
	installment.PaidAt = &paidAt
	return true
}

// IsOverdue reports whether an unpaid installment's due date is before today.
func IsOverdue(installment *domain.Installment, today time.Time) bool {
	return !installment.Paid && utils.DaysUntil(installment.DueDate, today) < 0
}

// IsUpcoming reports whether an unpaid installment falls due between today
// and today+windowDays inclusive. Overdue installments are never upcoming.
func IsUpcoming(installment *domain.Installment, today time.Time, windowDays int) bool {
	if installment.Paid {
		return false
	}
	days := utils.DaysUntil(installment.DueDate, today)
	return days >= 0 && days <= windowDays
}
