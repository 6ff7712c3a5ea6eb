package transfer

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

var ErrTransferNotFound = errors.New("transfer not found")

type Writer struct {
	tx pgx.Tx
	Reader
}

func NewWriter(tx pgx.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate locks the transfer record so concurrent edits of the same
// pair serialize. Returns nil when no such transfer exists.
func (w *Writer) FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*Transfer, error) {
	row := w.tx.QueryRow(ctx,
		`SELECT `+transferColumns+` FROM transfers
		 WHERE household_id = $1 AND id = $2
		 FOR UPDATE`,
		householdID, id)
	return scanTransfer(row)
}

// Insert persists the transfer record linking both leg transactions.
func (w *Writer) Insert(ctx context.Context, create *TransferCreate) error {
	_, err := w.tx.Exec(ctx,
		`INSERT INTO transfers
		   (id, household_id, source_account_id, destination_account_id, amount_cents, amount, fee_cents,
		    out_transaction_id, in_transaction_id, transfer_name, notes, transfer_date)
		 VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10, $11, $12)`,
		create.ID, create.HouseholdID, create.SourceAccountID, create.DestinationAccountID,
		create.Amount, create.Amount.String(), create.Fee,
		create.OutTransactionID, create.InTransactionID,
		create.Name, create.Notes, create.Date)
	return err
}

// UpdateDetails updates the non-financial fields of the transfer record.
func (w *Writer) UpdateDetails(ctx context.Context, householdID, id uuid.UUID, name, notes string, date time.Time) error {
	tag, err := w.tx.Exec(ctx,
		`UPDATE transfers SET transfer_name = $3, notes = $4, transfer_date = $5
		 WHERE household_id = $1 AND id = $2`,
		householdID, id, name, notes, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTransferNotFound
	}
	return nil
}

// Delete removes the transfer record. The legs are deleted separately within
// the same store transaction.
func (w *Writer) Delete(ctx context.Context, householdID, id uuid.UUID) error {
	tag, err := w.tx.Exec(ctx,
		`DELETE FROM transfers WHERE household_id = $1 AND id = $2`,
		householdID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTransferNotFound
	}
	return nil
}
