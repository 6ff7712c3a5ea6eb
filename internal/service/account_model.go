package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// Account represents an account in the service layer. AvailableCredit is
// derived at read time for credit accounts and zero for everything else.
type Account struct {
	ID              uuid.UUID
	Name            string
	Type            account.AccountType
	SubType         string
	Balance         money.Cents
	StartingBalance money.Cents
	CreditLimit     money.Cents
	AvailableCredit money.Cents
	CreatedAt       time.Time
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}
