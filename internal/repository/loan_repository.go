package repository

import (
	"context"
	"database/sql"

	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/pkg/utils"

	"github.com/jmoiron/sqlx"
)

const selectLoans = `
	SELECT l.id, l.client_id, c.name AS client_name, l.principal, l.interest_rate, l.notes, l.created_at
	FROM loans l
	JOIN clients c ON c.id = l.client_id
`

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) CreateWithSchedule(ctx context.Context, loan *domain.Loan, schedule []*domain.Installment) error {
	loanQuery := `
		INSERT INTO loans (client_id, principal, interest_rate, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	installmentQuery := `
		INSERT INTO installments (loan_id, number, due_date, amount, paid, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx, loanQuery,
		loan.ClientID,
		loan.Principal,
		loan.InterestRate,
		loan.Notes,
	).Scan(&loan.ID, &loan.CreatedAt)
	if err != nil {
		return err
	}

	for _, installment := range schedule {
		installment.LoanID = loan.ID
		err = tx.QueryRowxContext(ctx, installmentQuery,
			installment.LoanID,
			installment.Number,
			installment.DueDate.Format(utils.DateFormat),
			installment.Amount,
			installment.Paid,
			installment.PaidAt,
		).Scan(&installment.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	query := selectLoans + `WHERE l.id = $1`

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	query := selectLoans + `ORDER BY l.id`

	loans := []*domain.Loan{}
	if err := r.db.SelectContext(ctx, &loans, query); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) ListByClientID(ctx context.Context, clientID int64) ([]*domain.Loan, error) {
	query := selectLoans + `WHERE l.client_id = $1 ORDER BY l.id`

	loans := []*domain.Loan{}
	if err := r.db.SelectContext(ctx, &loans, query, clientID); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
