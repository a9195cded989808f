package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidLoanTerms      = errors.New("invalid loan terms")
	ErrValidation            = errors.New("validation failed")
	ErrClientNotFound        = errors.New("client not found")
	ErrLoanNotFound          = errors.New("loan not found")
	ErrInstallmentNotFound   = errors.New("installment not found")
	ErrAuthorizationRequired = errors.New("authorization required")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserAlreadyExists     = errors.New("user already exists")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidLoanTerms      = "INVALID_LOAN_TERMS"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeClientNotFound        = "CLIENT_NOT_FOUND"
	ErrCodeLoanNotFound          = "LOAN_NOT_FOUND"
	ErrCodeInstallmentNotFound   = "INSTALLMENT_NOT_FOUND"
	ErrCodeAuthorizationRequired = "AUTHORIZATION_REQUIRED"
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodeUserAlreadyExists     = "USER_ALREADY_EXISTS"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapInvalidLoanTerms(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanTerms,
		reason,
		ErrInvalidLoanTerms,
	)
}

func WrapValidation(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		err.Error(),
		ErrValidation,
	)
}

func WrapClientNotFound(clientID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeClientNotFound,
		fmt.Sprintf("Client with ID %d not found", clientID),
		ErrClientNotFound,
	)
}

func WrapLoanNotFound(loanID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %d not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapInstallmentNotFound(installmentID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeInstallmentNotFound,
		fmt.Sprintf("Installment with ID %d not found", installmentID),
		ErrInstallmentNotFound,
	)
}

func WrapAuthorizationRequired(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeAuthorizationRequired,
		reason,
		ErrAuthorizationRequired,
	)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCredentials,
		"Invalid username or password",
		ErrInvalidCredentials,
	)
}

func WrapUserAlreadyExists(username string) *BusinessError {
	return NewBusinessError(
		ErrCodeUserAlreadyExists,
		fmt.Sprintf("User %s already exists", username),
		ErrUserAlreadyExists,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// IsNotFound reports whether err is one of the lookup misses.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrLoanNotFound) ||
		errors.Is(err, ErrInstallmentNotFound)
}
