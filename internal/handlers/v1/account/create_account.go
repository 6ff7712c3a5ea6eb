package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	HouseholdID     string `json:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
	Name            string `json:"name" required:"true" minLength:"1" doc:"Account name"`
	Type            int    `json:"type" minimum:"0" maximum:"4" doc:"Account type: 0=Checking, 1=Savings, 2=Credit, 3=Investment, 4=Cash"`
	SubType         string `json:"subType,omitempty" doc:"Account sub-type"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Starting balance when account is created (e.g. '0' or '1234.56'), defaults to 0"`
	CreditLimit     string `json:"creditLimit,omitempty" doc:"Credit limit, credit accounts only, defaults to 0"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID string `json:"id" doc:"Created account UUID"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// actionProcessor is the interface for submitting write actions.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	Operator actionProcessor
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(op actionProcessor) *CreateAccountHandler {
	return &CreateAccountHandler{Operator: op}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new account with the given name, type, sub-type, and starting balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (*actions.CreateAccount, error) {
	householdID, err := uuid.FromString(input.Body.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}

	startingBalance := money.Cents(0)
	if input.Body.StartingBalance != "" {
		startingBalance, err = money.FromString(input.Body.StartingBalance)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid startingBalance", err)
		}
	}

	creditLimit := money.Cents(0)
	if input.Body.CreditLimit != "" {
		creditLimit, err = money.FromString(input.Body.CreditLimit)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid creditLimit", err)
		}
	}

	return &actions.CreateAccount{
		HouseholdID:     householdID,
		Name:            input.Body.Name,
		Type:            account.AccountType(input.Body.Type),
		SubType:         input.Body.SubType,
		StartingBalance: startingBalance,
		CreditLimit:     creditLimit,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map("failed to create account", err)
	}

	if logData != nil {
		logData.AddData("accountID", action.CreatedID.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: action.CreatedID.String()},
	}, nil
}
