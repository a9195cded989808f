// Package ledger holds the loan-accounting rules: schedule generation,
// installment state, portfolio aggregates, search and CSV export.
//
// Everything here is a pure function of its inputs. Callers load state from
// storage, hand it in, and persist whatever comes back.
package ledger
