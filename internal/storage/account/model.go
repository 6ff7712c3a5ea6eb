package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
)

// AccountType distinguishes how an account behaves. Credit accounts carry a
// credit limit; everything else treats the limit as zero.
type AccountType int16

const (
	AccountTypeChecking AccountType = iota
	AccountTypeSavings
	AccountTypeCredit
	AccountTypeInvestment
	AccountTypeCash
)

// Account represents an account record. Balance is derived state: it is
// mutated only by applying transaction and transfer effects, never written
// directly by a caller after the initial seed.
type Account struct {
	ID              uuid.UUID
	HouseholdID     uuid.UUID
	Name            string
	Type            AccountType
	SubType         string
	Balance         money.Cents
	StartingBalance money.Cents
	CreditLimit     money.Cents
	Active          bool
	CreatedAt       time.Time
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	HouseholdID     uuid.UUID
	Name            string
	Type            AccountType
	SubType         string
	StartingBalance money.Cents
	CreditLimit     money.Cents
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	Limit  int
	Offset int
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// AccountListResult contains a page of accounts and an optional next cursor.
type AccountListResult struct {
	Accounts   []*Account
	NextCursor *AccountCursor
}

// IAccountTable defines the interface for account storage operations.
// This abstraction allows swapping the implementation without changing callers.
type IAccountTable interface {
	FindByID(ctx context.Context, householdID, id uuid.UUID) (*Account, error)
	List(ctx context.Context, householdID uuid.UUID, filter *AccountFilter) (*AccountListResult, error)
}
