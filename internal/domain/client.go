package domain

import "time"

// Client is a borrower. Loans reference it by ClientID.
type Client struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Phone     string    `json:"phone" db:"phone"`
	TaxID     string    `json:"tax_id" db:"tax_id"`
	Email     string    `json:"email" db:"email"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"max=50"`
	TaxID   string `json:"tax_id" validate:"max=20"`
	Email   string `json:"email" validate:"omitempty,email,max=200"`
	Address string `json:"address" validate:"max=300"`
}

type ClientDetailResponse struct {
	Client *Client `json:"client"`
	Loans  []*Loan `json:"loans"`
}
