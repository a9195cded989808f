package ledger

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/pkg/utils"
)

// ExportHeader is the first line of every export.
var ExportHeader = []string{"Client", "Loan ID", "Installment #", "Due Date", "Amount", "Paid", "Paid At"}

// ExportRows flattens installments into export rows ordered by loan id and
// installment number. Installments of unknown loans are skipped.
func ExportRows(loans []*domain.Loan, installments []*domain.Installment) [][]string {
	byID := make(map[int64]*domain.Loan, len(loans))
	for _, loan := range loans {
		byID[loan.ID] = loan
	}

	ordered := make([]*domain.Installment, 0, len(installments))
	for _, installment := range installments {
		if _, ok := byID[installment.LoanID]; ok {
			ordered = append(ordered, installment)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].LoanID != ordered[j].LoanID {
			return ordered[i].LoanID < ordered[j].LoanID
		}
		return ordered[i].Number < ordered[j].Number
	})

	rows := make([][]string, 0, len(ordered))
	for _, installment := range ordered {
		loan := byID[installment.LoanID]
		paidAt := ""
		if installment.Paid && installment.PaidAt != nil {
			paidAt = installment.PaidAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []string{
			loan.ClientName,
			strconv.FormatInt(loan.ID, 10),
			strconv.Itoa(installment.Number),
			installment.DueDate.Format(utils.DateFormat),
			installment.Amount.StringFixed(2),
			strconv.FormatBool(installment.Paid),
			paidAt,
		})
	}
	return rows
}

// WriteCSV writes the header followed by rows.
func WriteCSV(w io.Writer, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}
