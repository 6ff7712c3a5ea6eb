// Package verify implements the batch consistency audit: a read-only scan
// that flags drift between integer and decimal money columns and broken
// transfer pairing. It reports violations and never repairs them; repair is
// a separate, explicit operation.
package verify

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/money"
)

// Kind identifies a class of consistency violation.
type Kind string

const (
	KindDecimalDrift       Kind = "decimal_drift"
	KindMissingLeg         Kind = "missing_leg"
	KindTransferIDMismatch Kind = "transfer_id_mismatch"
	KindSignMismatch       Kind = "sign_mismatch"
	KindMagnitudeMismatch  Kind = "magnitude_mismatch"
	KindOrphanedLeg        Kind = "orphaned_leg"
)

// Violation identifies one inconsistent row.
type Violation struct {
	Table string
	RowID uuid.UUID
	Kind  Kind
}

// MoneyRow is one integer/decimal column pair of a stored row.
type MoneyRow struct {
	Table   string
	ID      uuid.UUID
	Cents   money.Cents
	Decimal decimal.Decimal
}

// TransferRecord is the pairing record as seen by the audit.
type TransferRecord struct {
	ID               uuid.UUID
	OutTransactionID uuid.UUID
	InTransactionID  uuid.UUID
	Amount           money.Cents
	Fee              money.Cents
}

// Leg is a transfer_out or transfer_in transaction as seen by the audit.
type Leg struct {
	ID         uuid.UUID
	TransferID *uuid.UUID
	Out        bool
	Amount     money.Cents
}

// Source supplies the raw rows the audit scans. Implementations read from
// the store; tests feed fixed snapshots.
type Source interface {
	MoneyRows(ctx context.Context, householdID uuid.UUID) ([]MoneyRow, error)
	TransferRecords(ctx context.Context, householdID uuid.UUID) ([]TransferRecord, error)
	TransferLegs(ctx context.Context, householdID uuid.UUID) ([]Leg, error)
}

var epsilon = decimal.New(1, -9)

// Run scans one household's rows and returns every violation found.
func Run(ctx context.Context, src Source, householdID uuid.UUID) ([]Violation, error) {
	var violations []Violation

	moneyRows, err := src.MoneyRows(ctx, householdID)
	if err != nil {
		return nil, err
	}
	for _, row := range moneyRows {
		if row.Decimal.Sub(row.Cents.Decimal()).Abs().GreaterThan(epsilon) {
			violations = append(violations, Violation{Table: row.Table, RowID: row.ID, Kind: KindDecimalDrift})
		}
	}

	records, err := src.TransferRecords(ctx, householdID)
	if err != nil {
		return nil, err
	}
	legs, err := src.TransferLegs(ctx, householdID)
	if err != nil {
		return nil, err
	}

	legByID := make(map[uuid.UUID]Leg, len(legs))
	for _, leg := range legs {
		legByID[leg.ID] = leg
	}

	claimed := make(map[uuid.UUID]bool, len(legs))
	for _, rec := range records {
		out, okOut := legByID[rec.OutTransactionID]
		in, okIn := legByID[rec.InTransactionID]
		if !okOut || !okIn {
			// The surviving half stays unclaimed so the orphan pass below
			// identifies it alongside the broken record.
			violations = append(violations, Violation{Table: "transfers", RowID: rec.ID, Kind: KindMissingLeg})
			continue
		}
		claimed[out.ID] = true
		claimed[in.ID] = true

		if out.TransferID == nil || *out.TransferID != rec.ID ||
			in.TransferID == nil || *in.TransferID != rec.ID {
			violations = append(violations, Violation{Table: "transfers", RowID: rec.ID, Kind: KindTransferIDMismatch})
			continue
		}

		if out.Amount >= 0 || in.Amount <= 0 {
			violations = append(violations, Violation{Table: "transfers", RowID: rec.ID, Kind: KindSignMismatch})
			continue
		}

		if in.Amount.Abs() != rec.Amount || out.Amount.Abs() != rec.Amount+rec.Fee {
			violations = append(violations, Violation{Table: "transfers", RowID: rec.ID, Kind: KindMagnitudeMismatch})
		}
	}

	// Legs no transfer record points at are orphans: half of a pair whose
	// record (or sibling) was removed out of band.
	for _, leg := range legs {
		if !claimed[leg.ID] {
			violations = append(violations, Violation{Table: "transactions", RowID: leg.ID, Kind: KindOrphanedLeg})
		}
	}

	return violations, nil
}
