package service

import (
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Transfer    *TransferService
	Progress    *ProgressService
	Audit       *AuditService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage) *Service {
	return &Service{
		Transaction: NewTransactionService(store.Read.Transactions),
		Account:     NewAccountService(store.Read.Accounts),
		Transfer:    NewTransferService(store.Read.Transfers),
		Progress:    NewProgressService(store.Read.Bills, store.Read.Debts, store.Read.Goals),
		Audit:       NewAuditService(store.Read.Audit),
	}
}
