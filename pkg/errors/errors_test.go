package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError(t *testing.T) {
	err := WrapLoanNotFound(7)

	assert.Equal(t, "LOAN_NOT_FOUND: Loan with ID 7 not found (loan not found)", err.Error())
	assert.ErrorIs(t, err, ErrLoanNotFound)
	assert.ErrorIs(t, fmt.Errorf("get loan: %w", err), ErrLoanNotFound)
}

func TestWrapDatabaseError_KeepsCause(t *testing.T) {
	err := WrapDatabaseError(sql.ErrConnDone)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), ErrCodeDatabaseError)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(WrapClientNotFound(1)))
	assert.True(t, IsNotFound(WrapLoanNotFound(1)))
	assert.True(t, IsNotFound(WrapInstallmentNotFound(1)))
	assert.False(t, IsNotFound(WrapInvalidCredentials()))
	assert.False(t, IsNotFound(errors.New("loan not found")))
}
