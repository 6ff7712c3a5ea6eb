package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeactivateAccount soft-deletes an account. The row and its transaction
// history are kept; the account just stops appearing in listings and rejects
// new balance mutations.
type DeactivateAccount struct {
	HouseholdID uuid.UUID
	AccountID   uuid.UUID

	IAction
}

func (d *DeactivateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Account.FindByIDForUpdate(ctx, d.HouseholdID, d.AccountID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ledger.ErrAccountNotFound
	}

	return writer.Account.Deactivate(ctx, d.HouseholdID, d.AccountID)
}
