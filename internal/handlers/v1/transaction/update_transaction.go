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

// UpdateTransactionBody is the request body for editing a transaction. The
// body carries the full replacement state, not a diff.
type UpdateTransactionBody struct {
	HouseholdID     string  `json:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
	AccountID       string  `json:"accountID" required:"true" format:"uuid" doc:"Account UUID, may differ from the original"`
	CategoryID      string  `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
	Type            string  `json:"type" required:"true" enum:"income,expense" doc:"Transaction type"`
	Amount          string  `json:"amount" required:"true" doc:"Signed decimal amount"`
	TransactionName string  `json:"transactionName" required:"true" minLength:"1" doc:"Name of the transaction"`
	Notes           string  `json:"notes,omitempty" doc:"Free-form notes"`
	TransactionDate string  `json:"transactionDate" required:"true" format:"date-time" doc:"RFC3339 transaction date"`
	Splits          []Split `json:"splits,omitempty" doc:"Replacement splits, must sum to the transaction amount"`
	BillInstanceID  string  `json:"billInstanceID,omitempty" format:"uuid" doc:"Bill instance to apply the payment to"`
	DebtID          string  `json:"debtID,omitempty" format:"uuid" doc:"Debt to apply the payment to"`
	GoalID          string  `json:"goalID,omitempty" format:"uuid" doc:"Savings goal to apply the contribution to"`
}

// UpdateTransactionInput is the Huma input for editing a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for editing a transaction.
type UpdateTransactionOutput struct {
	Status int
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	Operator actionProcessor
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(op actionProcessor) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Replaces a transaction's state, reversing the old balance effect and applying the new one.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (*actions.UpdateTransaction, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
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
	transactionDate, err := time.Parse(time.RFC3339, input.Body.TransactionDate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
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

	return &actions.UpdateTransaction{
		HouseholdID:    householdID,
		ID:             id,
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

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map("failed to update transaction", err)
	}

	return &UpdateTransactionOutput{Status: http.StatusNoContent}, nil
}
