// Package apierror maps domain errors onto HTTP status codes for the v1
// handlers.
package apierror

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/cascade"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

// Map converts an action or service error into a huma error. Validation
// failures are the caller's fault; missing rows are 404; anything else is
// reported as an internal failure with the given message.
func Map(message string, err error) error {
	var validationErr *money.ValidationError
	if errors.As(err, &validationErr) {
		return huma.NewError(http.StatusBadRequest, validationErr.Error())
	}

	switch {
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, transfer.ErrTransferNotFound),
		errors.Is(err, cascade.ErrBillInstanceNotFound),
		errors.Is(err, cascade.ErrDebtNotFound),
		errors.Is(err, cascade.ErrGoalNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrAccountInactive):
		return huma.NewError(http.StatusConflict, err.Error())
	}

	return huma.NewError(http.StatusInternalServerError, message, err)
}
