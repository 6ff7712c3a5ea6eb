package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// mockActionProcessor is a mock for actionProcessor.
type mockActionProcessor struct {
	mock.Mock
}

func (m *mockActionProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func newTestAPI(t *testing.T, op actionProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransferHandler(op).Register(api)
	return api
}

func TestParseCreateTransferInput_ValidInput(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	sourceID := uuid.Must(uuid.NewV4())
	destinationID := uuid.Must(uuid.NewV4())

	input := &CreateTransferInput{
		Body: CreateTransferBody{
			HouseholdID:          householdID.String(),
			SourceAccountID:      sourceID.String(),
			DestinationAccountID: destinationID.String(),
			Amount:               "100.00",
			Fee:                  "1.50",
			TransferName:         "Savings top-up",
		},
	}

	action, err := parseCreateTransferInput(input)
	assert.NoError(t, err)
	assert.Equal(t, householdID, action.HouseholdID)
	assert.Equal(t, sourceID, action.SourceAccountID)
	assert.Equal(t, destinationID, action.DestinationAccountID)
	assert.Equal(t, money.Cents(10000), action.Amount)
	assert.Equal(t, money.Cents(150), action.Fee)
	assert.False(t, action.Date.IsZero())
}

func TestParseCreateTransferInput_FeeDefaultsToZero(t *testing.T) {
	input := &CreateTransferInput{
		Body: CreateTransferBody{
			HouseholdID:          uuid.Must(uuid.NewV4()).String(),
			SourceAccountID:      uuid.Must(uuid.NewV4()).String(),
			DestinationAccountID: uuid.Must(uuid.NewV4()).String(),
			Amount:               "50.00",
			TransferName:         "No fee",
		},
	}

	action, err := parseCreateTransferInput(input)
	assert.NoError(t, err)
	assert.Equal(t, money.Cents(0), action.Fee)
}

func TestHTTP_CreateTransfer_Success(t *testing.T) {
	transferID := uuid.Must(uuid.NewV4())
	sourceID := uuid.Must(uuid.NewV4())
	destinationID := uuid.Must(uuid.NewV4())

	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateTransfer) bool {
		return a.SourceAccountID == sourceID &&
			a.DestinationAccountID == destinationID &&
			a.Amount == money.Cents(10000) &&
			a.Fee == money.Cents(150)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateTransfer).CreatedID = transferID
	}).Return(nil)

	resp := newTestAPI(t, mockOp).Post("/v1/transfer", CreateTransferBody{
		HouseholdID:          uuid.Must(uuid.NewV4()).String(),
		SourceAccountID:      sourceID.String(),
		DestinationAccountID: destinationID.String(),
		Amount:               "100.00",
		Fee:                  "1.50",
		TransferName:         "Savings top-up",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateTransferResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, transferID.String(), body.ID)
	mockOp.AssertExpectations(t)
}

func TestHTTP_CreateTransfer_SameAccountRejected(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())

	// Source/destination equality is checked inside the action; the handler
	// maps the validation failure to a 400.
	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.Anything).
		Return(&money.ValidationError{Field: "destination_account_id", Reason: "must differ from the source account"})

	resp := newTestAPI(t, mockOp).Post("/v1/transfer", CreateTransferBody{
		HouseholdID:          uuid.Must(uuid.NewV4()).String(),
		SourceAccountID:      accountID.String(),
		DestinationAccountID: accountID.String(),
		Amount:               "100.00",
		TransferName:         "Self transfer",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockOp.AssertExpectations(t)
}

func TestHTTP_CreateTransfer_MissingRequiredFields(t *testing.T) {
	mockOp := new(mockActionProcessor)

	resp := newTestAPI(t, mockOp).Post("/v1/transfer", CreateTransferBody{
		HouseholdID: uuid.Must(uuid.NewV4()).String(),
		// SourceAccountID, DestinationAccountID, Amount, TransferName omitted
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransfer_InvalidAmount(t *testing.T) {
	mockOp := new(mockActionProcessor)

	resp := newTestAPI(t, mockOp).Post("/v1/transfer", CreateTransferBody{
		HouseholdID:          uuid.Must(uuid.NewV4()).String(),
		SourceAccountID:      uuid.Must(uuid.NewV4()).String(),
		DestinationAccountID: uuid.Must(uuid.NewV4()).String(),
		Amount:               "not-a-decimal",
		TransferName:         "Broken",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransfer_OperatorError(t *testing.T) {
	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.Anything).
		Return(errors.New("database unavailable"))

	resp := newTestAPI(t, mockOp).Post("/v1/transfer", CreateTransferBody{
		HouseholdID:          uuid.Must(uuid.NewV4()).String(),
		SourceAccountID:      uuid.Must(uuid.NewV4()).String(),
		DestinationAccountID: uuid.Must(uuid.NewV4()).String(),
		Amount:               "100.00",
		TransferName:         "Savings top-up",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockOp.AssertExpectations(t)
}
