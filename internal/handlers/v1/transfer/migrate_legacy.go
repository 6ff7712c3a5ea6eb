package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// MigrateLegacyBody is the request body for the legacy transfer migration.
type MigrateLegacyBody struct {
	HouseholdID string `json:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
}

// MigrateLegacyInput is the Huma input for the legacy transfer migration.
type MigrateLegacyInput struct {
	Body MigrateLegacyBody
}

// MigrateLegacyResponse reports how each legacy row was handled.
type MigrateLegacyResponse struct {
	Migrated int `json:"migrated" doc:"Rows converted to paired transfers"`
	Degraded int `json:"degraded" doc:"Rows degraded to expenses because the destination no longer resolves"`
}

// MigrateLegacyOutput is the Huma output for the legacy transfer migration.
type MigrateLegacyOutput struct {
	Body MigrateLegacyResponse
}

// MigrateLegacyHandler handles POST /v1/transfer/migrate-legacy.
type MigrateLegacyHandler struct {
	Operator actionProcessor
}

// NewMigrateLegacyHandler creates a new MigrateLegacyHandler.
func NewMigrateLegacyHandler(op actionProcessor) *MigrateLegacyHandler {
	return &MigrateLegacyHandler{Operator: op}
}

// Register registers the legacy migration endpoint with the Huma API.
func (h *MigrateLegacyHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "migrate-legacy-transfers",
		Method:      http.MethodPost,
		Path:        "/v1/transfer/migrate-legacy",
		Summary:     "Migrate legacy transfers",
		Description: "Converts a household's remaining single-row transfers to the two-leg model in one transaction.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *MigrateLegacyHandler) handle(ctx context.Context, input *MigrateLegacyInput) (*MigrateLegacyOutput, error) {
	logData := logging.GetLogData(ctx)

	householdID, err := uuid.FromString(input.Body.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}

	action := &actions.MigrateLegacyTransfers{HouseholdID: householdID}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("migrateLegacyTransfersMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map("failed to migrate legacy transfers", err)
	}

	if logData != nil {
		logData.AddData("migrated", action.Migrated)
		logData.AddData("degraded", action.Degraded)
	}

	return &MigrateLegacyOutput{
		Body: MigrateLegacyResponse{
			Migrated: action.Migrated,
			Degraded: action.Degraded,
		},
	}, nil
}
