package repository

import (
	"context"
	"time"

	"github.com/segyhp/loan-ledger/internal/domain"

	"github.com/jmoiron/sqlx"
)

type installmentRepository struct {
	db *sqlx.DB
}

func NewInstallmentRepository(db *sqlx.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) GetByID(ctx context.Context, id int64) (*domain.Installment, error) {
	query := `
		SELECT id, loan_id, number, due_date, amount, paid, paid_at
		FROM installments
		WHERE id = $1
	`

	var installment domain.Installment
	if err := r.db.GetContext(ctx, &installment, query, id); err != nil {
		return nil, err
	}

	return &installment, nil
}

func (r *installmentRepository) ListByLoanID(ctx context.Context, loanID int64) ([]*domain.Installment, error) {
	query := `
		SELECT id, loan_id, number, due_date, amount, paid, paid_at
		FROM installments
		WHERE loan_id = $1
		ORDER BY number
	`

	installments := []*domain.Installment{}
	if err := r.db.SelectContext(ctx, &installments, query, loanID); err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *installmentRepository) List(ctx context.Context) ([]*domain.Installment, error) {
	query := `
		SELECT id, loan_id, number, due_date, amount, paid, paid_at
		FROM installments
		ORDER BY loan_id, number
	`

	installments := []*domain.Installment{}
	if err := r.db.SelectContext(ctx, &installments, query); err != nil {
		return nil, err
	}

	return installments, nil
}

// MarkPaid only touches unpaid rows so a second payer cannot move paid_at.
func (r *installmentRepository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) (bool, error) {
	query := `
		UPDATE installments
		SET paid = TRUE, paid_at = $2
		WHERE id = $1 AND paid = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id, paidAt)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
