package transaction

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string  `json:"id" doc:"Transaction UUID"`
	AccountID       string  `json:"accountID" doc:"Account UUID"`
	CategoryID      string  `json:"categoryID,omitempty" doc:"Category UUID"`
	Type            string  `json:"type" doc:"Transaction type: income, expense, transfer_out, transfer_in"`
	Amount          string  `json:"amount" doc:"Signed decimal amount"`
	TransactionName string  `json:"transactionName" doc:"Name of the transaction"`
	Notes           string  `json:"notes,omitempty" doc:"Free-form notes"`
	TransactionDate string  `json:"transactionDate" doc:"RFC3339 transaction date"`
	TransferID      string  `json:"transferID,omitempty" doc:"Transfer UUID when the row is a transfer leg"`
	BillInstanceID  string  `json:"billInstanceID,omitempty" doc:"Linked bill instance UUID"`
	DebtID          string  `json:"debtID,omitempty" doc:"Linked debt UUID"`
	GoalID          string  `json:"goalID,omitempty" doc:"Linked savings goal UUID"`
	CreatedAt       string  `json:"createdAt" doc:"RFC3339 creation time"`
	Splits          []Split `json:"splits,omitempty" doc:"Category splits, present on single-transaction reads"`
}

// Split is the API model for one split row in requests and responses.
type Split struct {
	CategoryID string `json:"categoryID" required:"true" format:"uuid" doc:"Category UUID"`
	Amount     string `json:"amount" required:"true" doc:"Signed decimal amount"`
}
