package transfer

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx satisfied by both a pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const transferColumns = `id, household_id, source_account_id, destination_account_id, amount_cents, fee_cents,
	out_transaction_id, in_transaction_id, transfer_name, notes, transfer_date, created_at`

type Reader struct {
	exec Querier
}

func NewReader(exec Querier) *Reader {
	return &Reader{exec: exec}
}

func scanTransfer(row pgx.Row) (*Transfer, error) {
	var t Transfer
	err := row.Scan(&t.ID, &t.HouseholdID, &t.SourceAccountID, &t.DestinationAccountID,
		&t.Amount, &t.Fee, &t.OutTransactionID, &t.InTransactionID,
		&t.Name, &t.Notes, &t.Date, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByID retrieves a transfer record by primary key within a household.
// Returns nil when no such transfer exists.
func (r *Reader) FindByID(ctx context.Context, householdID, id uuid.UUID) (*Transfer, error) {
	row := r.exec.QueryRow(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE household_id = $1 AND id = $2`,
		householdID, id)
	return scanTransfer(row)
}

// ListAll returns every transfer record for a household, used by the
// consistency verifier.
func (r *Reader) ListAll(ctx context.Context, householdID uuid.UUID) ([]*Transfer, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE household_id = $1 ORDER BY created_at ASC, id ASC`,
		householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Transfer
	for rows.Next() {
		var t Transfer
		if err := rows.Scan(&t.ID, &t.HouseholdID, &t.SourceAccountID, &t.DestinationAccountID,
			&t.Amount, &t.Fee, &t.OutTransactionID, &t.InTransactionID,
			&t.Name, &t.Notes, &t.Date, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}
