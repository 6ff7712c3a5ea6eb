package storage

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/audit"
	"github.com/carson-networks/ledger-server/internal/storage/bill"
	"github.com/carson-networks/ledger-server/internal/storage/debt"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

type Reader struct {
	Accounts     *account.Reader
	Transactions *transaction.Reader
	Transfers    *transfer.Reader
	Bills        *bill.Reader
	Debts        *debt.Reader
	Goals        *goal.Reader
	Audit        *audit.Reader
}

func NewReader(pool *pgxpool.Pool) *Reader {
	return &Reader{
		Accounts:     account.NewReader(pool),
		Transactions: transaction.NewReader(pool),
		Transfers:    transfer.NewReader(pool),
		Bills:        bill.NewReader(pool),
		Debts:        debt.NewReader(pool),
		Goals:        goal.NewReader(pool),
		Audit:        audit.NewReader(pool),
	}
}
