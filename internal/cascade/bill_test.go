package cascade

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/bill"
)

type mockBillTable struct {
	mock.Mock
}

func (m *mockBillTable) FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*bill.Instance, error) {
	args := m.Called(ctx, householdID, id)
	instance, _ := args.Get(0).(*bill.Instance)
	return instance, args.Error(1)
}

func (m *mockBillTable) UpdateProgress(ctx context.Context, householdID, id uuid.UUID, amountPaid, remaining money.Cents, status bill.Status) error {
	args := m.Called(ctx, householdID, id, amountPaid, remaining, status)
	return args.Error(0)
}

func (m *mockBillTable) AchievedPercents(ctx context.Context, householdID, billInstanceID uuid.UUID) ([]int16, error) {
	args := m.Called(ctx, householdID, billInstanceID)
	percents, _ := args.Get(0).([]int16)
	return percents, args.Error(1)
}

func (m *mockBillTable) StampMilestone(ctx context.Context, householdID, billInstanceID uuid.UUID, percent int16, achievedAt time.Time) error {
	args := m.Called(ctx, householdID, billInstanceID, percent, achievedAt)
	return args.Error(0)
}

type mockBillPayments struct {
	mock.Mock
}

func (m *mockBillPayments) SumByBillInstance(ctx context.Context, householdID, billInstanceID uuid.UUID) (money.Cents, error) {
	args := m.Called(ctx, householdID, billInstanceID)
	return args.Get(0).(money.Cents), args.Error(1)
}

func testBill(due money.Cents, dueDate time.Time) *bill.Instance {
	return &bill.Instance{
		ID:          uuid.Must(uuid.NewV4()),
		HouseholdID: uuid.Must(uuid.NewV4()),
		Name:        "Electric",
		DueAmount:   due,
		DueDate:     dueDate,
		Status:      bill.StatusUnpaid,
	}
}

func TestRecalculateBill_FullyPaidStampsRemainingMilestones(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	instance := testBill(20000, now.AddDate(0, 0, 10))

	// $80 then $120 linked against a $200 bill: the first payment already
	// stamped 25, so reaching the full amount stamps 50, 75, and 100.
	bills := new(mockBillTable)
	bills.On("FindByIDForUpdate", mock.Anything, instance.HouseholdID, instance.ID).Return(instance, nil)
	bills.On("UpdateProgress", mock.Anything, instance.HouseholdID, instance.ID,
		money.Cents(20000), money.Cents(0), bill.StatusPaid).Return(nil)
	bills.On("AchievedPercents", mock.Anything, instance.HouseholdID, instance.ID).
		Return([]int16{25}, nil)
	bills.On("StampMilestone", mock.Anything, instance.HouseholdID, instance.ID, int16(50), now).Return(nil)
	bills.On("StampMilestone", mock.Anything, instance.HouseholdID, instance.ID, int16(75), now).Return(nil)
	bills.On("StampMilestone", mock.Anything, instance.HouseholdID, instance.ID, int16(100), now).Return(nil)

	payments := new(mockBillPayments)
	payments.On("SumByBillInstance", mock.Anything, instance.HouseholdID, instance.ID).
		Return(money.Cents(20000), nil)

	err := RecalculateBill(context.Background(), bills, payments, instance.HouseholdID, instance.ID, now)

	assert.NoError(t, err)
	bills.AssertExpectations(t)
}

func TestRecalculateBill_PartiallyPaidBeforeDue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	instance := testBill(20000, now.AddDate(0, 0, 10))

	bills := new(mockBillTable)
	bills.On("FindByIDForUpdate", mock.Anything, instance.HouseholdID, instance.ID).Return(instance, nil)
	bills.On("UpdateProgress", mock.Anything, instance.HouseholdID, instance.ID,
		money.Cents(8000), money.Cents(12000), bill.StatusUnpaid).Return(nil)
	bills.On("AchievedPercents", mock.Anything, instance.HouseholdID, instance.ID).
		Return([]int16{25}, nil)

	payments := new(mockBillPayments)
	payments.On("SumByBillInstance", mock.Anything, instance.HouseholdID, instance.ID).
		Return(money.Cents(8000), nil)

	err := RecalculateBill(context.Background(), bills, payments, instance.HouseholdID, instance.ID, now)

	assert.NoError(t, err)
	bills.AssertExpectations(t)
	// 40% paid with 25 already stamped: nothing new to stamp.
	bills.AssertNotCalled(t, "StampMilestone")
}

func TestRecalculateBill_UnpaidPastDueIsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	instance := testBill(20000, now.AddDate(0, 0, -1))

	bills := new(mockBillTable)
	bills.On("FindByIDForUpdate", mock.Anything, instance.HouseholdID, instance.ID).Return(instance, nil)
	bills.On("UpdateProgress", mock.Anything, instance.HouseholdID, instance.ID,
		money.Cents(0), money.Cents(20000), bill.StatusOverdue).Return(nil)
	bills.On("AchievedPercents", mock.Anything, instance.HouseholdID, instance.ID).
		Return([]int16(nil), nil)

	payments := new(mockBillPayments)
	payments.On("SumByBillInstance", mock.Anything, instance.HouseholdID, instance.ID).
		Return(money.Cents(0), nil)

	err := RecalculateBill(context.Background(), bills, payments, instance.HouseholdID, instance.ID, now)

	assert.NoError(t, err)
	bills.AssertExpectations(t)
	bills.AssertNotCalled(t, "StampMilestone")
}

func TestRecalculateBill_OverpaymentFloorsRemainingAtZero(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	instance := testBill(20000, now.AddDate(0, 0, 10))

	// A later $0.01 correcting transaction pushes the sum past the due amount.
	bills := new(mockBillTable)
	bills.On("FindByIDForUpdate", mock.Anything, instance.HouseholdID, instance.ID).Return(instance, nil)
	bills.On("UpdateProgress", mock.Anything, instance.HouseholdID, instance.ID,
		money.Cents(20001), money.Cents(0), bill.StatusPaid).Return(nil)
	bills.On("AchievedPercents", mock.Anything, instance.HouseholdID, instance.ID).
		Return([]int16{25, 50, 75, 100}, nil)

	payments := new(mockBillPayments)
	payments.On("SumByBillInstance", mock.Anything, instance.HouseholdID, instance.ID).
		Return(money.Cents(20001), nil)

	err := RecalculateBill(context.Background(), bills, payments, instance.HouseholdID, instance.ID, now)

	assert.NoError(t, err)
	bills.AssertExpectations(t)
	// The bill was already fully stamped when it first reached paid; the
	// correcting link must not stamp 100 a second time.
	bills.AssertNotCalled(t, "StampMilestone")
}

func TestRecalculateBill_MissingInstance(t *testing.T) {
	bills := new(mockBillTable)
	bills.On("FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return((*bill.Instance)(nil), nil)

	payments := new(mockBillPayments)

	err := RecalculateBill(context.Background(), bills, payments,
		uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), time.Now())

	assert.ErrorIs(t, err, ErrBillInstanceNotFound)
	payments.AssertNotCalled(t, "SumByBillInstance")
}
