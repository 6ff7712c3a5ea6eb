package account

// Account is the API response model for an account.
type Account struct {
	ID              string `json:"id" doc:"Account UUID"`
	Name            string `json:"name" doc:"Account name"`
	Type            int    `json:"type" doc:"Account type: 0=Checking, 1=Savings, 2=Credit, 3=Investment, 4=Cash"`
	SubType         string `json:"subType" doc:"Account sub-type"`
	Balance         string `json:"balance" doc:"Decimal balance"`
	StartingBalance string `json:"startingBalance" doc:"Decimal starting balance"`
	CreditLimit     string `json:"creditLimit,omitempty" doc:"Decimal credit limit, credit accounts only"`
	AvailableCredit string `json:"availableCredit,omitempty" doc:"Derived decimal headroom, credit accounts only"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}
