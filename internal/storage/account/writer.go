package account

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/carson-networks/ledger-server/internal/money"
)

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

// FindByIDForUpdate locks the account row for the rest of the transaction so
// concurrent balance mutations serialize at the store. Returns nil when no
// such account exists.
func (w *Writer) FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*Account, error) {
	row := w.tx.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE household_id = $1 AND id = $2
		 FOR UPDATE`,
		householdID, id)
	return scanAccount(row)
}

// Create inserts a new account seeded with its starting balance and returns
// the generated ID.
func (w *Writer) Create(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	_, err = w.tx.Exec(ctx,
		`INSERT INTO accounts
		   (id, household_id, name, type, sub_type, balance_cents, balance, starting_balance_cents, credit_limit_cents, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, TRUE)`,
		id, create.HouseholdID, create.Name, create.Type, create.SubType,
		create.StartingBalance, create.StartingBalance.String(),
		create.StartingBalance, create.CreditLimit)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateBalance writes the integer balance and its derived decimal form in
// the same statement so the two columns can never diverge.
func (w *Writer) UpdateBalance(ctx context.Context, householdID, id uuid.UUID, balance money.Cents) error {
	tag, err := w.tx.Exec(ctx,
		`UPDATE accounts SET balance_cents = $3, balance = $4::numeric
		 WHERE household_id = $1 AND id = $2`,
		householdID, id, balance, balance.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("account not found")
	}
	return nil
}

// Deactivate soft-deletes an account. Accounts are never hard-deleted while
// transactions reference them.
func (w *Writer) Deactivate(ctx context.Context, householdID, id uuid.UUID) error {
	tag, err := w.tx.Exec(ctx,
		`UPDATE accounts SET active = FALSE WHERE household_id = $1 AND id = $2`,
		householdID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("account not found")
	}
	return nil
}
