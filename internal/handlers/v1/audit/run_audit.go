package audit

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/verify"
)

// RunAuditBody is the request body for running the consistency audit.
type RunAuditBody struct {
	HouseholdID string `json:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
}

// RunAuditInput is the Huma input for running the consistency audit.
type RunAuditInput struct {
	Body RunAuditBody
}

// Violation is the API model for one reported inconsistency.
type Violation struct {
	Table string `json:"table" doc:"Table the row lives in"`
	RowID string `json:"rowID" doc:"UUID of the inconsistent row"`
	Kind  string `json:"kind" doc:"Violation class"`
}

// RunAuditResponseBody is the response body for the consistency audit.
type RunAuditResponseBody struct {
	Violations []Violation `json:"violations" doc:"Every inconsistency found; empty when the household is clean"`
}

// RunAuditOutput is the Huma output for the consistency audit.
type RunAuditOutput struct {
	Body RunAuditResponseBody
}

// auditRunner is the interface for running the consistency audit.
type auditRunner interface {
	RunAudit(ctx context.Context, householdID uuid.UUID) ([]verify.Violation, error)
}

// RunAuditHandler handles POST /v1/audit.
type RunAuditHandler struct {
	AuditService auditRunner
}

// NewRunAuditHandler creates a new RunAuditHandler.
func NewRunAuditHandler(svc auditRunner) *RunAuditHandler {
	return &RunAuditHandler{AuditService: svc}
}

// Register registers the audit endpoint with the Huma API.
func (h *RunAuditHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "run-audit",
		Method:      http.MethodPost,
		Path:        "/v1/audit",
		Summary:     "Run consistency audit",
		Description: "Scans the household for money column drift and broken transfer pairing. Reports only, never repairs.",
		Tags:        []string{"Audit"},
	}, h.handle)
}

func (h *RunAuditHandler) handle(ctx context.Context, input *RunAuditInput) (*RunAuditOutput, error) {
	logData := logging.GetLogData(ctx)

	householdID, err := uuid.FromString(input.Body.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("runAuditMs")
	}
	violations, err := h.AuditService.RunAudit(ctx, householdID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to run audit", err)
	}

	if logData != nil {
		logData.AddData("violationCount", len(violations))
	}

	resp := RunAuditResponseBody{
		Violations: make([]Violation, len(violations)),
	}
	for i, v := range violations {
		resp.Violations[i] = Violation{
			Table: v.Table,
			RowID: v.RowID.String(),
			Kind:  string(v.Kind),
		}
	}

	return &RunAuditOutput{Body: resp}, nil
}
