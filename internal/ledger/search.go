package ledger

import (
	"strings"

	"github.com/segyhp/loan-ledger/internal/domain"
)

// SearchClients returns the clients whose name contains query, ignoring
// case. An empty query matches every client.
func SearchClients(clients []*domain.Client, query string) []*domain.Client {
	needle := strings.ToLower(query)
	matches := make([]*domain.Client, 0, len(clients))
	for _, client := range clients {
		if strings.Contains(strings.ToLower(client.Name), needle) {
			matches = append(matches, client)
		}
	}
	return matches
}

// SearchLoans returns the loans whose owning client's name contains query,
// ignoring case. Loans whose client is not in clients never match.
func SearchLoans(clients []*domain.Client, loans []*domain.Loan, query string) []*domain.Loan {
	matching := make(map[int64]bool, len(clients))
	for _, client := range SearchClients(clients, query) {
		matching[client.ID] = true
	}

	matches := make([]*domain.Loan, 0, len(loans))
	for _, loan := range loans {
		if matching[loan.ClientID] {
			matches = append(matches, loan)
		}
	}
	return matches
}
