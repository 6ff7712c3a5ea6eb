package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) FindByID(ctx context.Context, householdID, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, householdID, id)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, householdID uuid.UUID, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, householdID, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionTable) ListSplits(ctx context.Context, householdID, transactionID uuid.UUID) ([]*transaction.Split, error) {
	args := m.Called(ctx, householdID, transactionID)
	splits, _ := args.Get(0).([]*transaction.Split)
	return splits, args.Error(1)
}

func makeStorageRows(n int, createdAt time.Time) []*transaction.Transaction {
	rows := make([]*transaction.Transaction, n)
	for i := range rows {
		rows[i] = &transaction.Transaction{
			ID:        uuid.Must(uuid.NewV4()),
			AccountID: uuid.Must(uuid.NewV4()),
			Type:      transaction.TypeExpense,
			Amount:    -1250,
			Name:      "Coffee",
			Date:      createdAt,
			CreatedAt: createdAt,
		}
	}
	return rows
}

// -- GetTransaction tests --

func TestGetTransaction_Found(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	row := makeStorageRows(1, now)[0]

	mockTable := new(mockTransactionTable)
	mockTable.On("FindByID", mock.Anything, householdID, row.ID).Return(row, nil)
	mockTable.On("ListSplits", mock.Anything, householdID, row.ID).
		Return(([]*transaction.Split)(nil), nil)

	svc := NewTransactionService(mockTable)
	tx, err := svc.GetTransaction(context.Background(), householdID, row.ID)

	assert.NoError(t, err)
	assert.NotNil(t, tx)
	assert.Equal(t, row.ID, tx.ID)
	assert.Equal(t, money.Cents(-1250), tx.Amount)
	assert.Equal(t, "Coffee", tx.TransactionName)
	assert.Empty(t, tx.Splits)
}

func TestGetTransaction_IncludesSplits(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	row := makeStorageRows(1, now)[0]
	categoryID := uuid.Must(uuid.NewV4())

	mockTable := new(mockTransactionTable)
	mockTable.On("FindByID", mock.Anything, householdID, row.ID).Return(row, nil)
	mockTable.On("ListSplits", mock.Anything, householdID, row.ID).
		Return([]*transaction.Split{
			{ID: uuid.Must(uuid.NewV4()), TransactionID: row.ID, CategoryID: categoryID, Amount: -750},
			{ID: uuid.Must(uuid.NewV4()), TransactionID: row.ID, CategoryID: uuid.Must(uuid.NewV4()), Amount: -500},
		}, nil)

	svc := NewTransactionService(mockTable)
	tx, err := svc.GetTransaction(context.Background(), householdID, row.ID)

	assert.NoError(t, err)
	assert.NotNil(t, tx)
	assert.Len(t, tx.Splits, 2)
	assert.Equal(t, categoryID, tx.Splits[0].CategoryID)
	assert.Equal(t, money.Cents(-750), tx.Splits[0].Amount)
}

func TestGetTransaction_NotFound(t *testing.T) {
	mockTable := new(mockTransactionTable)
	mockTable.On("FindByID", mock.Anything, mock.Anything, mock.Anything).
		Return((*transaction.Transaction)(nil), nil)

	svc := NewTransactionService(mockTable)
	tx, err := svc.GetTransaction(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))

	assert.NoError(t, err)
	assert.Nil(t, tx)
}

// -- ListTransactions tests --

func TestListTransactions_SinglePage(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockTable := new(mockTransactionTable)
	mockTable.On("List", mock.Anything, householdID, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == defaultLimit && f.Offset == 0 && f.MaxCreationTime == nil
	})).Return(makeStorageRows(3, now), nil)

	svc := NewTransactionService(mockTable)
	txs, next, err := svc.ListTransactions(context.Background(), householdID, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 3)
	assert.Nil(t, next)
}

func TestListTransactions_NextCursorFromExtraRow(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockTable := new(mockTransactionTable)
	mockTable.On("List", mock.Anything, householdID, mock.Anything).
		Return(makeStorageRows(defaultLimit+1, now), nil)

	svc := NewTransactionService(mockTable)
	txs, next, err := svc.ListTransactions(context.Background(), householdID, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, defaultLimit)
	assert.NotNil(t, next)
	assert.Equal(t, defaultLimit, next.Position)
	assert.Equal(t, defaultLimit, next.Limit)
	assert.True(t, next.MaxCreationTime.Equal(now))
}

func TestListTransactions_CursorCarriesMaxCreationTime(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	maxTime := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	cursor := &TransactionCursor{Position: 10, Limit: 10, MaxCreationTime: maxTime}

	mockTable := new(mockTransactionTable)
	mockTable.On("List", mock.Anything, householdID, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == 10 && f.Offset == 10 &&
			f.MaxCreationTime != nil && f.MaxCreationTime.Equal(maxTime)
	})).Return(makeStorageRows(11, maxTime), nil)

	svc := NewTransactionService(mockTable)
	txs, next, err := svc.ListTransactions(context.Background(), householdID, nil, cursor)

	assert.NoError(t, err)
	assert.Len(t, txs, 10)
	assert.NotNil(t, next)
	assert.Equal(t, 20, next.Position)
	assert.True(t, next.MaxCreationTime.Equal(maxTime))
}

func TestListTransactions_FilterPassedThrough(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	mockTable := new(mockTransactionTable)
	mockTable.On("List", mock.Anything, householdID, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.AccountID != nil && *f.AccountID == accountID
	})).Return(([]*transaction.Transaction)(nil), nil)

	svc := NewTransactionService(mockTable)
	txs, next, err := svc.ListTransactions(context.Background(), householdID,
		&TransactionFilter{AccountID: &accountID}, nil)

	assert.NoError(t, err)
	assert.Empty(t, txs)
	assert.Nil(t, next)
	mockTable.AssertExpectations(t)
}

func TestListTransactions_StorageError(t *testing.T) {
	mockTable := new(mockTransactionTable)
	mockTable.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(([]*transaction.Transaction)(nil), errors.New("connection refused"))

	svc := NewTransactionService(mockTable)
	txs, next, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), nil, nil)

	assert.Error(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, next)
}
