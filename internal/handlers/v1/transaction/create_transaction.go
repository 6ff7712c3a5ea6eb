package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	HouseholdID     string  `json:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
	AccountID       string  `json:"accountID" required:"true" format:"uuid" doc:"Account UUID"`
	CategoryID      string  `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
	Type            string  `json:"type" required:"true" enum:"income,expense" doc:"Transaction type"`
	Amount          string  `json:"amount" required:"true" doc:"Signed decimal amount, negative for expenses"`
	TransactionName string  `json:"transactionName" required:"true" minLength:"1" doc:"Name of the transaction"`
	Notes           string  `json:"notes,omitempty" doc:"Free-form notes"`
	TransactionDate string  `json:"transactionDate,omitempty" format:"date-time" doc:"RFC3339 transaction date, defaults to now"`
	Splits          []Split `json:"splits,omitempty" doc:"Category splits, must sum to the transaction amount"`
	BillInstanceID  string  `json:"billInstanceID,omitempty" format:"uuid" doc:"Bill instance to apply the payment to"`
	DebtID          string  `json:"debtID,omitempty" format:"uuid" doc:"Debt to apply the payment to"`
	GoalID          string  `json:"goalID,omitempty" format:"uuid" doc:"Savings goal to apply the contribution to"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// actionProcessor is the interface for submitting write actions.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator actionProcessor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op actionProcessor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a new income or expense transaction and applies it to the account balance.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (*actions.CreateTransaction, error) {
	householdID, err := uuid.FromString(input.Body.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	categoryID, err := parseOptionalUUID(input.Body.CategoryID, "categoryID")
	if err != nil {
		return nil, err
	}
	amount, err := money.FromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var transactionDate time.Time
	if input.Body.TransactionDate != "" {
		transactionDate, err = time.Parse(time.RFC3339, input.Body.TransactionDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
		}
	}

	splits, err := parseSplits(input.Body.Splits)
	if err != nil {
		return nil, err
	}

	billInstanceID, err := parseOptionalUUID(input.Body.BillInstanceID, "billInstanceID")
	if err != nil {
		return nil, err
	}
	debtID, err := parseOptionalUUID(input.Body.DebtID, "debtID")
	if err != nil {
		return nil, err
	}
	goalID, err := parseOptionalUUID(input.Body.GoalID, "goalID")
	if err != nil {
		return nil, err
	}

	return &actions.CreateTransaction{
		HouseholdID:    householdID,
		AccountID:      accountID,
		CategoryID:     categoryID,
		Type:           transaction.Type(input.Body.Type),
		Amount:         amount,
		Name:           input.Body.TransactionName,
		Notes:          input.Body.Notes,
		Date:           transactionDate,
		Splits:         splits,
		BillInstanceID: billInstanceID,
		DebtID:         debtID,
		GoalID:         goalID,
	}, nil
}

func parseOptionalUUID(value, field string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.FromString(value)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return &id, nil
}

func parseSplits(splits []Split) ([]transaction.SplitCreate, error) {
	if len(splits) == 0 {
		return nil, nil
	}
	parsed := make([]transaction.SplitCreate, len(splits))
	for i, s := range splits {
		categoryID, err := uuid.FromString(s.CategoryID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid split categoryID", err)
		}
		amount, err := money.FromString(s.Amount)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid split amount", err)
		}
		parsed[i] = transaction.SplitCreate{CategoryID: categoryID, Amount: amount}
	}
	return parsed, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map("failed to create transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", action.CreatedID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: action.CreatedID.String()},
	}, nil
}
