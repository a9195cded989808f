package repository

import (
	"context"
	"time"

	"github.com/segyhp/loan-ledger/internal/domain"
)

// Lookups return sql.ErrNoRows when the record does not exist.

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	// Create inserts a client and fills in its ID and CreatedAt
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by its ID
	GetByID(ctx context.Context, id int64) (*domain.Client, error)

	// List retrieves all clients ordered by name
	List(ctx context.Context) ([]*domain.Client, error)
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// CreateWithSchedule inserts a loan and its installments in one transaction
	CreateWithSchedule(ctx context.Context, loan *domain.Loan, schedule []*domain.Installment) error

	// GetByID retrieves a loan, with its client name, by ID
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)

	// List retrieves all loans ordered by ID
	List(ctx context.Context) ([]*domain.Loan, error)

	// ListByClientID retrieves the loans of one client
	ListByClientID(ctx context.Context, clientID int64) ([]*domain.Loan, error)

	// Delete removes a loan; its installments go with it
	Delete(ctx context.Context, id int64) error
}

// InstallmentRepository defines the interface for installment data operations
type InstallmentRepository interface {
	// GetByID retrieves an installment by its ID
	GetByID(ctx context.Context, id int64) (*domain.Installment, error)

	// ListByLoanID retrieves a loan's schedule ordered by number
	ListByLoanID(ctx context.Context, loanID int64) ([]*domain.Installment, error)

	// List retrieves every installment ordered by loan and number
	List(ctx context.Context) ([]*domain.Installment, error)

	// MarkPaid flags an unpaid installment as paid. It reports false when
	// the installment was already paid.
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) (bool, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a user and fills in its ID and CreatedAt
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TokenStore remembers revoked session tokens until they expire
type TokenStore interface {
	// Revoke marks a token ID as revoked for ttl
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether a token ID was revoked
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
