package ledger

import (
	"fmt"

	"github.com/segyhp/loan-ledger/internal/domain"
	customError "github.com/segyhp/loan-ledger/pkg/errors"
	"github.com/segyhp/loan-ledger/pkg/utils"

	"github.com/shopspring/decimal"
)

// DueDateSpacingDays is the fixed gap between consecutive due dates.
// It does not follow calendar months.
const DueDateSpacingDays = 30

// Storage scales of loans.principal and loans.interest_rate. Terms with
// more decimal places would be rounded on write and no longer match the
// generated schedule.
const (
	PrincipalScale    = 2
	InterestRateScale = 4
)

// GenerateSchedule splits the loan total into terms.InstallmentCount
// installments due every DueDateSpacingDays from the first due date.
//
// Every installment gets round2(total/n); the last one absorbs the rounding
// remainder so the schedule always sums to the loan total.
func GenerateSchedule(terms domain.LoanTerms) ([]*domain.Installment, error) {
	if !terms.Principal.IsPositive() {
		return nil, customError.WrapInvalidLoanTerms("principal must be greater than zero")
	}
	if !terms.Principal.Equal(terms.Principal.Round(PrincipalScale)) {
		return nil, customError.WrapInvalidLoanTerms("principal must have at most 2 decimal places")
	}
	if terms.InterestRate.IsNegative() {
		return nil, customError.WrapInvalidLoanTerms("interest rate must not be negative")
	}
	if !terms.InterestRate.Equal(terms.InterestRate.Round(InterestRateScale)) {
		return nil, customError.WrapInvalidLoanTerms("interest rate must have at most 4 decimal places")
	}
	if terms.InstallmentCount <= 0 {
		return nil, customError.WrapInvalidLoanTerms("installment count must be greater than zero")
	}
	firstDue, err := utils.ParseDate(terms.FirstDueDate)
	if err != nil {
		return nil, customError.WrapInvalidLoanTerms(fmt.Sprintf("first due date %q is not a YYYY-MM-DD date", terms.FirstDueDate))
	}

	total := utils.ApplyFlatInterest(terms.Principal, terms.InterestRate)
	count := decimal.NewFromInt(int64(terms.InstallmentCount))
	per := utils.Round2(total.Div(count))
	last := total.Sub(per.Mul(count.Sub(decimal.NewFromInt(1))))
	if !per.IsPositive() || !last.IsPositive() {
		return nil, customError.WrapInvalidLoanTerms("loan total is too small for the number of installments")
	}

	schedule := make([]*domain.Installment, 0, terms.InstallmentCount)
	for i := 0; i < terms.InstallmentCount; i++ {
		amount := per
		if i == terms.InstallmentCount-1 {
			amount = last
		}
		schedule = append(schedule, &domain.Installment{
			Number:  i + 1,
			DueDate: utils.AddDays(firstDue, DueDateSpacingDays*i),
			Amount:  amount,
		})
	}

	return schedule, nil
}
