package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/verify"
)

// AuditService runs the read-only consistency audit over one household.
type AuditService struct {
	source verify.Source
}

// NewAuditService creates a new AuditService.
func NewAuditService(source verify.Source) *AuditService {
	return &AuditService{source: source}
}

// RunAudit scans the household and returns every violation found. The audit
// only ever reads; repairing a violation is a deliberate manual step.
func (s *AuditService) RunAudit(ctx context.Context, householdID uuid.UUID) ([]verify.Violation, error) {
	return verify.Run(ctx, s.source, householdID)
}
