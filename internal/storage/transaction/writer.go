package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

var ErrTransactionNotFound = errors.New("transaction not found")

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

// FindByIDForUpdate locks the transaction row so concurrent edits of the
// same transaction serialize and always read the latest committed amount.
// Returns nil when no such transaction exists.
func (w *Writer) FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*Transaction, error) {
	row := w.tx.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE household_id = $1 AND id = $2
		 FOR UPDATE`,
		householdID, id)
	return scanTransaction(row)
}

// Insert creates a new transaction and returns its generated ID. The derived
// decimal column is written from the cents value in the same statement.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	date := create.Date
	if date.IsZero() {
		date = time.Now()
	}

	_, err = w.tx.Exec(ctx,
		`INSERT INTO transactions
		   (id, household_id, account_id, category_id, type, amount_cents, amount, transaction_name, notes,
		    transaction_date, transfer_id, destination_account_id, bill_instance_id, debt_id, goal_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, $10, $11, $12, $13, $14, $15)`,
		id, create.HouseholdID, create.AccountID, create.CategoryID, create.Type,
		create.Amount, create.Amount.String(), create.Name, create.Notes,
		date, create.TransferID, create.DestinationAccountID,
		create.BillInstanceID, create.DebtID, create.GoalID)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update replaces the mutable fields of a transaction.
func (w *Writer) Update(ctx context.Context, householdID, id uuid.UUID, update *TransactionUpdate) error {
	tag, err := w.tx.Exec(ctx,
		`UPDATE transactions SET
		   account_id = $3, category_id = $4, type = $5, amount_cents = $6, amount = $7::numeric,
		   transaction_name = $8, notes = $9, transaction_date = $10,
		   bill_instance_id = $11, debt_id = $12, goal_id = $13
		 WHERE household_id = $1 AND id = $2`,
		householdID, id, update.AccountID, update.CategoryID, update.Type,
		update.Amount, update.Amount.String(), update.Name, update.Notes, update.Date,
		update.BillInstanceID, update.DebtID, update.GoalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// UpdateDetails updates the non-financial fields of a transaction in place.
// Used for transfer leg edits that carry no balance side effects.
func (w *Writer) UpdateDetails(ctx context.Context, householdID, id uuid.UUID, name, notes string, date time.Time) error {
	tag, err := w.tx.Exec(ctx,
		`UPDATE transactions SET transaction_name = $3, notes = $4, transaction_date = $5
		 WHERE household_id = $1 AND id = $2`,
		householdID, id, name, notes, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction row and its splits. The split delete joins
// through the parent so the household scope holds structurally, not just via
// the parent check.
func (w *Writer) Delete(ctx context.Context, householdID, id uuid.UUID) error {
	if _, err := w.tx.Exec(ctx,
		`DELETE FROM transaction_splits s USING transactions t
		 WHERE s.transaction_id = t.id AND t.household_id = $1 AND t.id = $2`,
		householdID, id); err != nil {
		return err
	}
	tag, err := w.tx.Exec(ctx,
		`DELETE FROM transactions WHERE household_id = $1 AND id = $2`,
		householdID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ReplaceSplits swaps the split set of a transaction. Callers validate the
// sum against the parent amount before getting here.
func (w *Writer) ReplaceSplits(ctx context.Context, householdID, transactionID uuid.UUID, splits []SplitCreate) error {
	if _, err := w.tx.Exec(ctx,
		`DELETE FROM transaction_splits s USING transactions t
		 WHERE s.transaction_id = t.id AND t.household_id = $1 AND t.id = $2`,
		householdID, transactionID); err != nil {
		return err
	}

	for _, split := range splits {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		if _, err := w.tx.Exec(ctx,
			`INSERT INTO transaction_splits (id, transaction_id, category_id, amount_cents, amount)
			 VALUES ($1, $2, $3, $4, $5::numeric)`,
			id, transactionID, split.CategoryID, split.Amount, split.Amount.String()); err != nil {
			return err
		}
	}
	return nil
}

// ListLegacyTransfers locks and returns the household's remaining single-row
// transfer transactions, oldest first.
func (w *Writer) ListLegacyTransfers(ctx context.Context, householdID uuid.UUID) ([]*Transaction, error) {
	rows, err := w.tx.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE household_id = $1 AND type = $2
		 ORDER BY created_at ASC, id ASC
		 FOR UPDATE`,
		householdID, TypeLegacyTransfer)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// ConvertToTransferOut rewrites a legacy transfer row as the out leg of a
// paired transfer, clearing the legacy destination reference.
func (w *Writer) ConvertToTransferOut(ctx context.Context, householdID, id, transferID uuid.UUID) error {
	tag, err := w.tx.Exec(ctx,
		`UPDATE transactions SET type = $3, transfer_id = $4, destination_account_id = NULL
		 WHERE household_id = $1 AND id = $2`,
		householdID, id, TypeTransferOut, transferID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ConvertToExpense degrades a legacy transfer with no resolvable destination
// to a plain expense.
func (w *Writer) ConvertToExpense(ctx context.Context, householdID, id uuid.UUID) error {
	tag, err := w.tx.Exec(ctx,
		`UPDATE transactions SET type = $3, destination_account_id = NULL
		 WHERE household_id = $1 AND id = $2`,
		householdID, id, TypeExpense)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
