package debt

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// GetDebtInput is the Huma input for fetching one debt.
type GetDebtInput struct {
	ID          string `path:"id" format:"uuid" doc:"Debt UUID"`
	HouseholdID string `query:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
}

// Milestone is the API model for one stamped payoff threshold.
type Milestone struct {
	Percent    int16  `json:"percent" doc:"Threshold percentage: 25, 50, 75, or 100"`
	AchievedAt string `json:"achievedAt" doc:"RFC3339 time the threshold was first crossed"`
}

// Debt is the API response model for a debt.
type Debt struct {
	ID               string      `json:"id" doc:"Debt UUID"`
	Name             string      `json:"name" doc:"Debt name"`
	OriginalBalance  string      `json:"originalBalance" doc:"Decimal starting balance"`
	RemainingBalance string      `json:"remainingBalance" doc:"Decimal balance still owed"`
	AnnualRate       string      `json:"annualRate" doc:"Annual interest rate as a decimal fraction"`
	Compounding      string      `json:"compounding" doc:"Interest compounding period"`
	CreatedAt        string      `json:"createdAt" doc:"RFC3339 creation time"`
	Milestones       []Milestone `json:"milestones" doc:"Stamped payoff thresholds, never un-stamped"`
}

// GetDebtOutput is the Huma output for fetching one debt.
type GetDebtOutput struct {
	Body Debt
}

// debtGetter is the interface for fetching a single debt.
type debtGetter interface {
	GetDebt(ctx context.Context, householdID, id uuid.UUID) (*service.Debt, error)
}

// GetDebtHandler handles GET /v1/debt/{id}.
type GetDebtHandler struct {
	ProgressService debtGetter
}

// NewGetDebtHandler creates a new GetDebtHandler.
func NewGetDebtHandler(svc debtGetter) *GetDebtHandler {
	return &GetDebtHandler{ProgressService: svc}
}

// Register registers the get debt endpoint with the Huma API.
func (h *GetDebtHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-debt",
		Method:      http.MethodGet,
		Path:        "/v1/debt/{id}",
		Summary:     "Get a debt",
		Description: "Returns a debt with its derived remaining balance and milestone history.",
		Tags:        []string{"Debts"},
	}, h.handle)
}

func (h *GetDebtHandler) handle(ctx context.Context, input *GetDebtInput) (*GetDebtOutput, error) {
	logData := logging.GetLogData(ctx)

	householdID, err := uuid.FromString(input.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid debt id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getDebtMs")
	}
	result, err := h.ProgressService.GetDebt(ctx, householdID, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get debt", err)
	}
	if result == nil {
		return nil, huma.NewError(http.StatusNotFound, "debt not found")
	}

	body := Debt{
		ID:               result.ID.String(),
		Name:             result.DebtName,
		OriginalBalance:  result.OriginalBalance.String(),
		RemainingBalance: result.RemainingBalance.String(),
		AnnualRate:       result.AnnualRate.String(),
		Compounding:      string(result.Compounding),
		CreatedAt:        result.CreatedAt.Format(time.RFC3339),
		Milestones:       make([]Milestone, len(result.Milestones)),
	}
	for i, m := range result.Milestones {
		body.Milestones[i] = Milestone{
			Percent:    m.Percent,
			AchievedAt: m.AchievedAt.Format(time.RFC3339),
		}
	}

	return &GetDebtOutput{Body: body}, nil
}
