package debt

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage/debt"
)

// CreateDebtBody is the request body for creating a debt.
type CreateDebtBody struct {
	HouseholdID     string `json:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
	Name            string `json:"name" required:"true" minLength:"1" doc:"Debt name"`
	OriginalBalance string `json:"originalBalance" required:"true" doc:"Positive decimal starting balance (e.g. '10000.00')"`
	AnnualRate      string `json:"annualRate,omitempty" doc:"Annual interest rate as a decimal fraction (e.g. '0.12'), defaults to 0"`
	Compounding     string `json:"compounding,omitempty" enum:"monthly,biweekly,weekly" doc:"Interest compounding period, defaults to monthly"`
}

// CreateDebtInput is the Huma input for creating a debt.
type CreateDebtInput struct {
	Body CreateDebtBody
}

// CreateDebtResponse is the response body for creating a debt.
type CreateDebtResponse struct {
	ID string `json:"id" doc:"Created debt UUID"`
}

// CreateDebtOutput is the response for creating a debt.
type CreateDebtOutput struct {
	Status int
	Body   CreateDebtResponse
}

// actionProcessor is the interface for submitting write actions.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateDebtHandler handles POST /v1/debt.
type CreateDebtHandler struct {
	Operator actionProcessor
}

// NewCreateDebtHandler creates a new CreateDebtHandler.
func NewCreateDebtHandler(op actionProcessor) *CreateDebtHandler {
	return &CreateDebtHandler{Operator: op}
}

// Register registers the create debt endpoint with the Huma API.
func (h *CreateDebtHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-debt",
		Method:      http.MethodPost,
		Path:        "/v1/debt",
		Summary:     "Create a debt",
		Description: "Creates a new debt with its full balance remaining. Payoff progress is derived from the payments linked to it.",
		Tags:        []string{"Debts"},
	}, h.handle)
}

func parseCreateDebtInput(input *CreateDebtInput) (*actions.CreateDebt, error) {
	householdID, err := uuid.FromString(input.Body.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}

	originalBalance, err := money.FromString(input.Body.OriginalBalance)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid originalBalance", err)
	}

	annualRate := decimal.Zero
	if input.Body.AnnualRate != "" {
		annualRate, err = decimal.NewFromString(input.Body.AnnualRate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid annualRate", err)
		}
	}

	return &actions.CreateDebt{
		HouseholdID:     householdID,
		Name:            input.Body.Name,
		OriginalBalance: originalBalance,
		AnnualRate:      annualRate,
		Compounding:     debt.Compounding(input.Body.Compounding),
	}, nil
}

func (h *CreateDebtHandler) handle(ctx context.Context, input *CreateDebtInput) (*CreateDebtOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateDebtInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createDebtMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map("failed to create debt", err)
	}

	if logData != nil {
		logData.AddData("debtID", action.CreatedID.String())
	}

	return &CreateDebtOutput{
		Status: http.StatusCreated,
		Body:   CreateDebtResponse{ID: action.CreatedID.String()},
	}, nil
}
