package handler

import (
	"errors"
	"net/http"

	customError "github.com/segyhp/loan-ledger/pkg/errors"
	"github.com/segyhp/loan-ledger/pkg/response"

	"github.com/sirupsen/logrus"
)

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, customError.ErrInvalidLoanTerms), errors.Is(err, customError.ErrValidation):
		return http.StatusBadRequest
	case customError.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, customError.ErrAuthorizationRequired), errors.Is(err, customError.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, customError.ErrUserAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an error envelope. Server side failures are
// logged and reported without their details.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		response.Error(w, status, "INTERNAL_ERROR", "Internal server error")
		return
	}

	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		response.Error(w, status, businessErr.Code, businessErr.Message)
		return
	}
	response.Error(w, status, "", err.Error())
}
