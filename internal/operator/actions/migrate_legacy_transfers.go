package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

// MigrateLegacyTransfers converts a household's remaining single-row
// "transfer" transactions to the two-leg model. The legacy row becomes the
// transfer_out leg and keeps its balance effect; a transfer_in leg is
// synthesized on the destination account and credited there. Rows whose
// destination no longer resolves degrade to plain expenses, which preserves
// the source account's history and balance.
type MigrateLegacyTransfers struct {
	HouseholdID uuid.UUID

	// Migrated and Degraded are populated on success.
	Migrated int
	Degraded int

	IAction
}

func (m *MigrateLegacyTransfers) Perform(ctx context.Context, writer *storage.Writer) error {
	legacy, err := writer.Transaction.ListLegacyTransfers(ctx, m.HouseholdID)
	if err != nil {
		return err
	}

	for _, row := range legacy {
		migrated, err := m.migrateRow(ctx, writer, row)
		if err != nil {
			return err
		}
		if migrated {
			m.Migrated++
		} else {
			m.Degraded++
		}
	}
	return nil
}

func (m *MigrateLegacyTransfers) migrateRow(ctx context.Context, writer *storage.Writer, row *transaction.Transaction) (bool, error) {
	if row.DestinationAccountID == nil {
		return false, writer.Transaction.ConvertToExpense(ctx, m.HouseholdID, row.ID)
	}

	destination, err := writer.Account.FindByIDForUpdate(ctx, m.HouseholdID, *row.DestinationAccountID)
	if err != nil {
		return false, err
	}
	if destination == nil || !destination.Active {
		return false, writer.Transaction.ConvertToExpense(ctx, m.HouseholdID, row.ID)
	}

	transferID, err := uuid.NewV4()
	if err != nil {
		return false, err
	}

	// The legacy row already debited the source, so only the destination
	// side needs a balance adjustment. Legacy rows carry no fee.
	amount := row.Amount.Abs()

	if err := writer.Transaction.ConvertToTransferOut(ctx, m.HouseholdID, row.ID, transferID); err != nil {
		return false, err
	}

	if _, err := ledger.ApplyDelta(ctx, writer.Account, m.HouseholdID, destination.ID, amount); err != nil {
		return false, err
	}

	inID, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		HouseholdID: m.HouseholdID,
		AccountID:   destination.ID,
		Type:        transaction.TypeTransferIn,
		Amount:      amount,
		Name:        row.Name,
		Notes:       row.Notes,
		Date:        row.Date,
		TransferID:  &transferID,
	})
	if err != nil {
		return false, err
	}

	err = writer.Transfer.Insert(ctx, &transfer.TransferCreate{
		ID:                   transferID,
		HouseholdID:          m.HouseholdID,
		SourceAccountID:      row.AccountID,
		DestinationAccountID: destination.ID,
		Amount:               amount,
		Fee:                  0,
		OutTransactionID:     row.ID,
		InTransactionID:      inID,
		Name:                 row.Name,
		Notes:                row.Notes,
		Date:                 row.Date,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
