package verify

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/money"
)

type snapshot struct {
	moneyRows []MoneyRow
	records   []TransferRecord
	legs      []Leg
}

func (s *snapshot) MoneyRows(ctx context.Context, householdID uuid.UUID) ([]MoneyRow, error) {
	return s.moneyRows, nil
}

func (s *snapshot) TransferRecords(ctx context.Context, householdID uuid.UUID) ([]TransferRecord, error) {
	return s.records, nil
}

func (s *snapshot) TransferLegs(ctx context.Context, householdID uuid.UUID) ([]Leg, error) {
	return s.legs, nil
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

func pairedTransfer(amount, fee money.Cents) ([]TransferRecord, []Leg) {
	recID := newID()
	outID := newID()
	inID := newID()
	return []TransferRecord{{
			ID:               recID,
			OutTransactionID: outID,
			InTransactionID:  inID,
			Amount:           amount,
			Fee:              fee,
		}}, []Leg{
			{ID: outID, TransferID: &recID, Out: true, Amount: -(amount + fee)},
			{ID: inID, TransferID: &recID, Out: false, Amount: amount},
		}
}

func TestRun_CleanSnapshotHasNoViolations(t *testing.T) {
	records, legs := pairedTransfer(10000, 150)
	src := &snapshot{
		moneyRows: []MoneyRow{
			{Table: "accounts", ID: newID(), Cents: 123456, Decimal: decimal.RequireFromString("1234.56")},
			{Table: "transactions", ID: newID(), Cents: -5000, Decimal: decimal.RequireFromString("-50.00")},
		},
		records: records,
		legs:    legs,
	}

	violations, err := Run(context.Background(), src, newID())

	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestRun_FlagsDecimalDrift(t *testing.T) {
	driftedID := newID()
	src := &snapshot{
		moneyRows: []MoneyRow{
			{Table: "accounts", ID: newID(), Cents: 123456, Decimal: decimal.RequireFromString("1234.56")},
			{Table: "accounts", ID: driftedID, Cents: 123456, Decimal: decimal.RequireFromString("1234.57")},
		},
	}

	violations, err := Run(context.Background(), src, newID())

	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, Violation{Table: "accounts", RowID: driftedID, Kind: KindDecimalDrift}, violations[0])
}

func TestRun_ToleratesSubEpsilonDifference(t *testing.T) {
	src := &snapshot{
		moneyRows: []MoneyRow{
			{Table: "debts", ID: newID(), Cents: 123456, Decimal: decimal.RequireFromString("1234.5600000001")},
		},
	}

	violations, err := Run(context.Background(), src, newID())

	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestRun_MissingLegReportsRecordAndSurvivingLeg(t *testing.T) {
	recID := newID()
	outID := newID()
	src := &snapshot{
		records: []TransferRecord{{
			ID:               recID,
			OutTransactionID: outID,
			InTransactionID:  newID(), // no such leg
			Amount:           10000,
		}},
		legs: []Leg{
			{ID: outID, TransferID: &recID, Out: true, Amount: -10000},
		},
	}

	violations, err := Run(context.Background(), src, newID())

	require.NoError(t, err)
	// The record is flagged, and the surviving out leg is identified as the
	// orphaned half of the pair.
	require.Len(t, violations, 2)
	assert.Equal(t, Violation{Table: "transfers", RowID: recID, Kind: KindMissingLeg}, violations[0])
	assert.Equal(t, Violation{Table: "transactions", RowID: outID, Kind: KindOrphanedLeg}, violations[1])
}

func TestRun_FlagsTransferIDMismatch(t *testing.T) {
	records, legs := pairedTransfer(10000, 0)
	otherID := newID()
	legs[1].TransferID = &otherID

	src := &snapshot{records: records, legs: legs}
	violations, err := Run(context.Background(), src, newID())

	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, KindTransferIDMismatch, violations[0].Kind)
	assert.Equal(t, records[0].ID, violations[0].RowID)
}

func TestRun_FlagsSignMismatch(t *testing.T) {
	records, legs := pairedTransfer(10000, 0)
	legs[0].Amount = 10000 // out leg must be negative

	src := &snapshot{records: records, legs: legs}
	violations, err := Run(context.Background(), src, newID())

	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, KindSignMismatch, violations[0].Kind)
}

func TestRun_FeeBelongsOnOutLegOnly(t *testing.T) {
	// Fee applied to the in leg instead of the out leg: both magnitudes wrong.
	recID := newID()
	outID := newID()
	inID := newID()
	src := &snapshot{
		records: []TransferRecord{{
			ID:               recID,
			OutTransactionID: outID,
			InTransactionID:  inID,
			Amount:           10000,
			Fee:              150,
		}},
		legs: []Leg{
			{ID: outID, TransferID: &recID, Out: true, Amount: -10000},
			{ID: inID, TransferID: &recID, Out: false, Amount: 10150},
		},
	}

	violations, err := Run(context.Background(), src, newID())

	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, Violation{Table: "transfers", RowID: recID, Kind: KindMagnitudeMismatch}, violations[0])
}

func TestRun_OrphanedLegYieldsExactlyOneViolation(t *testing.T) {
	recID := newID()
	orphan := Leg{ID: newID(), TransferID: &recID, Out: true, Amount: -5000}

	src := &snapshot{legs: []Leg{orphan}}
	violations, err := Run(context.Background(), src, newID())

	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, Violation{Table: "transactions", RowID: orphan.ID, Kind: KindOrphanedLeg}, violations[0])
}

func TestRun_MultipleViolationClassesAccumulate(t *testing.T) {
	records, legs := pairedTransfer(10000, 150)
	legs[0].Amount = -9999 // breaks the out magnitude
	driftedID := newID()

	src := &snapshot{
		moneyRows: []MoneyRow{
			{Table: "savings_goals", ID: driftedID, Cents: 50000, Decimal: decimal.RequireFromString("499.99")},
		},
		records: records,
		legs: append(legs,
			Leg{ID: newID(), TransferID: nil, Out: false, Amount: 2500}),
	}

	violations, err := Run(context.Background(), src, newID())

	require.NoError(t, err)
	kinds := make(map[Kind]int)
	for _, v := range violations {
		kinds[v.Kind]++
	}
	assert.Equal(t, map[Kind]int{
		KindDecimalDrift:      1,
		KindMagnitudeMismatch: 1,
		KindOrphanedLeg:       1,
	}, kinds)
}
