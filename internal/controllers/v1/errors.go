package v1

import (
	"errors"
	"net/http"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/auth"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/ledger"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/recurring"
)

// status returns the appropriate HTTP status code for an error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound

	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, ledger.ErrNotAuthorized),
		errors.Is(err, ledger.ErrNotMember):
		return http.StatusForbidden

	case errors.Is(err, ledger.ErrUnsettledBalance),
		errors.Is(err, recurring.ErrConcurrentUpdate):
		return http.StatusConflict

	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	}

	return http.StatusBadRequest
}
