package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	CategoryID      *uuid.UUID
	Type            transaction.Type
	Amount          money.Cents
	TransactionName string
	Notes           string
	TransactionDate time.Time
	TransferID      *uuid.UUID
	BillInstanceID  *uuid.UUID
	DebtID          *uuid.UUID
	GoalID          *uuid.UUID
	CreatedAt       time.Time
	// Splits is populated on single-transaction reads only.
	Splits []TransactionSplit
}

// TransactionSplit is one category sub-allocation of a transaction amount.
type TransactionSplit struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Amount     money.Cents
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// TransactionFilter narrows a listing to one account or category.
type TransactionFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
}
