package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dashboard holds the portfolio-wide aggregates.
type Dashboard struct {
	Today          time.Time       `json:"today"`
	TotalPrincipal decimal.Decimal `json:"total_principal"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalToReceive decimal.Decimal `json:"total_to_receive"`
	TotalOverdue   decimal.Decimal `json:"total_overdue"`
	PaidTotal      decimal.Decimal `json:"paid_total"`
	OverdueCount   int             `json:"overdue_count"`
	Upcoming       []*Installment  `json:"upcoming"`
}
