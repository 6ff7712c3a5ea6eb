package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

type mockAccountTable struct {
	mock.Mock
}

func (m *mockAccountTable) FindByID(ctx context.Context, householdID, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, householdID, id)
	row, _ := args.Get(0).(*account.Account)
	return row, args.Error(1)
}

func (m *mockAccountTable) List(ctx context.Context, householdID uuid.UUID, filter *account.AccountFilter) (*account.AccountListResult, error) {
	args := m.Called(ctx, householdID, filter)
	result, _ := args.Get(0).(*account.AccountListResult)
	return result, args.Error(1)
}

func TestGetAccount_CreditAccountDerivesAvailableCredit(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	row := &account.Account{
		ID:          uuid.Must(uuid.NewV4()),
		HouseholdID: householdID,
		Name:        "Visa",
		Type:        account.AccountTypeCredit,
		Balance:     -35000,
		CreditLimit: 100000,
		Active:      true,
	}

	mockTable := new(mockAccountTable)
	mockTable.On("FindByID", mock.Anything, householdID, row.ID).Return(row, nil)

	svc := NewAccountService(mockTable)
	acc, err := svc.GetAccount(context.Background(), householdID, row.ID)

	assert.NoError(t, err)
	assert.NotNil(t, acc)
	assert.Equal(t, money.Cents(65000), acc.AvailableCredit)
}

func TestGetAccount_CheckingAccountHasNoAvailableCredit(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	row := &account.Account{
		ID:          uuid.Must(uuid.NewV4()),
		HouseholdID: householdID,
		Name:        "Checking",
		Type:        account.AccountTypeChecking,
		Balance:     50000,
		Active:      true,
	}

	mockTable := new(mockAccountTable)
	mockTable.On("FindByID", mock.Anything, householdID, row.ID).Return(row, nil)

	svc := NewAccountService(mockTable)
	acc, err := svc.GetAccount(context.Background(), householdID, row.ID)

	assert.NoError(t, err)
	assert.NotNil(t, acc)
	assert.Equal(t, money.Cents(0), acc.AvailableCredit)
	assert.Equal(t, money.Cents(50000), acc.Balance)
}

func TestGetAccount_NotFound(t *testing.T) {
	mockTable := new(mockAccountTable)
	mockTable.On("FindByID", mock.Anything, mock.Anything, mock.Anything).
		Return((*account.Account)(nil), nil)

	svc := NewAccountService(mockTable)
	acc, err := svc.GetAccount(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))

	assert.NoError(t, err)
	assert.Nil(t, acc)
}

func TestListAccounts_PageWithNextCursor(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	rows := []*account.Account{
		{ID: uuid.Must(uuid.NewV4()), Name: "Checking", Type: account.AccountTypeChecking, Balance: 10000, Active: true},
		{ID: uuid.Must(uuid.NewV4()), Name: "Savings", Type: account.AccountTypeSavings, Balance: 250000, Active: true},
	}

	mockTable := new(mockAccountTable)
	mockTable.On("List", mock.Anything, householdID, mock.MatchedBy(func(f *account.AccountFilter) bool {
		return f.Limit == 2 && f.Offset == 0
	})).Return(&account.AccountListResult{
		Accounts:   rows,
		NextCursor: &account.AccountCursor{Position: 2, Limit: 2},
	}, nil)

	svc := NewAccountService(mockTable)
	accounts, next, err := svc.ListAccounts(context.Background(), householdID, &AccountCursor{Position: 0, Limit: 2})

	assert.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, "Checking", accounts[0].Name)
	assert.NotNil(t, next)
	assert.Equal(t, 2, next.Position)
}

func TestListAccounts_Empty(t *testing.T) {
	mockTable := new(mockAccountTable)
	mockTable.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(&account.AccountListResult{}, nil)

	svc := NewAccountService(mockTable)
	accounts, next, err := svc.ListAccounts(context.Background(), uuid.Must(uuid.NewV4()), nil)

	assert.NoError(t, err)
	assert.Empty(t, accounts)
	assert.Nil(t, next)
}

func TestListAccounts_StorageError(t *testing.T) {
	mockTable := new(mockAccountTable)
	mockTable.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return((*account.AccountListResult)(nil), errors.New("connection refused"))

	svc := NewAccountService(mockTable)
	accounts, next, err := svc.ListAccounts(context.Background(), uuid.Must(uuid.NewV4()), nil)

	assert.Error(t, err)
	assert.Nil(t, accounts)
	assert.Nil(t, next)
}
