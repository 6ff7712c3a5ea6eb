// Package ledger maintains account balances as derived, incrementally
// updated integers. Balance changes always go through ApplyDelta against a
// row locked for the duration of the store transaction, so concurrent
// increments are computed from the latest committed value.
package ledger

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account is deactivated")
)

// Accounts is the slice of the account table the ledger needs.
type Accounts interface {
	FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*account.Account, error)
	UpdateBalance(ctx context.Context, householdID, id uuid.UUID, balance money.Cents) error
}

// ApplyDelta adds a signed delta to an account's balance and returns the new
// balance. The account row is locked first, so the increment is always
// computed against the latest committed value.
func ApplyDelta(ctx context.Context, accounts Accounts, householdID, accountID uuid.UUID, delta money.Cents) (money.Cents, error) {
	acct, err := accounts.FindByIDForUpdate(ctx, householdID, accountID)
	if err != nil {
		return 0, err
	}
	if acct == nil {
		return 0, ErrAccountNotFound
	}
	if !acct.Active {
		return 0, ErrAccountInactive
	}

	newBalance := acct.Balance + delta
	if err := accounts.UpdateBalance(ctx, householdID, accountID, newBalance); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// ReverseDelta undoes a previously applied delta. Used when editing or
// deleting a transaction: reverse the old effect first, then apply the new
// one.
func ReverseDelta(ctx context.Context, accounts Accounts, householdID, accountID uuid.UUID, delta money.Cents) (money.Cents, error) {
	return ApplyDelta(ctx, accounts, householdID, accountID, -delta)
}

// AvailableCredit is the derived headroom view of a credit account: the
// credit limit minus what is currently owed. Owed amounts show up as a
// negative balance under the shared sign convention. Never stored.
func AvailableCredit(acct *account.Account) money.Cents {
	owed := money.Cents(0)
	if acct.Balance < 0 {
		owed = -acct.Balance
	}
	return acct.CreditLimit - owed
}
