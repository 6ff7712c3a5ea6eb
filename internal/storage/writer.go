package storage

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/bill"
	"github.com/carson-networks/ledger-server/internal/storage/debt"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

type Writer struct {
	tx          pgx.Tx
	Account     *account.Writer
	Transaction *transaction.Writer
	Transfer    *transfer.Writer
	Bill        *bill.Writer
	Debt        *debt.Writer
	Goal        *goal.Writer
}

func NewWriter(tx pgx.Tx) Writer {
	return Writer{
		tx:          tx,
		Account:     account.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
		Transfer:    transfer.NewWriter(tx),
		Bill:        bill.NewWriter(tx),
		Debt:        debt.NewWriter(tx),
		Goal:        goal.NewWriter(tx),
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
