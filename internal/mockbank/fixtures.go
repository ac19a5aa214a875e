package mockbank

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/easybank/portal/internal/model"
)

// SeedDemo loads the demo user and a ledger whose closing balances
// reconcile cleanly when diffed by the client.
func (b *Bank) SeedDemo() {
	b.RegisterUser("demo@easybank.com", "demo1234", model.Profile{
		Name:  "Demo User",
		Email: "demo@easybank.com",
	})

	b.mu.Lock()
	defer b.mu.Unlock()

	b.accounts = []accountRow{
		{AccountNumber: "4532001245", AccountType: "Savings", BranchAddress: "123 Main Street, New York"},
		{AccountNumber: "4532001246", AccountType: "Checking", BranchAddress: "123 Main Street, New York"},
	}

	b.cards = []model.Card{
		{ID: "card-1", CardNumber: "4532 1111 2222 4245", CardholderName: "Demo User", CardType: "Credit", ExpiryDate: "08/28"},
	}

	b.loans = []model.Loan{
		{
			LoanNumber:        "LN-2024-0042",
			LoanType:          "Home",
			TotalLoan:         decimal.NewFromInt(200000),
			AmountPaid:        decimal.NewFromInt(48500),
			OutstandingAmount: decimal.NewFromInt(151500),
		},
	}

	b.notices = []model.Notice{
		{Title: "Scheduled maintenance", Body: "Online banking will be unavailable Sunday 02:00-04:00 UTC.", CreatedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)},
		{Title: "New savings rates", Body: "Savings accounts now earn 3.1% APY.", CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)},
	}

	day := func(d int) string {
		return time.Date(2026, 8, d, 12, 0, 0, 0, time.UTC).Format(time.RFC3339)
	}

	b.transactions = []transactionRow{
		{TransactionID: "1", AccountNumber: "4532001245", PostedAt: day(1), ClosingBalance: 1000.00, Summary: "Opening balance"},
		{TransactionID: "2", AccountNumber: "4532001245", PostedAt: day(3), ClosingBalance: 2500.00, Summary: "Salary credit"},
		{TransactionID: "3", AccountNumber: "4532001245", CardNumber: "4532 1111 2222 4245", PostedAt: day(5), ClosingBalance: 2437.55, Summary: "Grocery store"},
		{TransactionID: "4", AccountNumber: "4532001245", CardNumber: "4532 1111 2222 4245", PostedAt: day(8), ClosingBalance: 2398.05, Summary: "Restaurant"},
		{TransactionID: "5", AccountNumber: "4532001245", PostedAt: day(12), ClosingBalance: 2198.05, Summary: "Rent transfer"},
		{TransactionID: "6", AccountNumber: "4532001245", PostedAt: day(15), ClosingBalance: 2198.05, Summary: "Duplicate posting"},
		{TransactionID: "7", AccountNumber: "4532001246", PostedAt: day(2), ClosingBalance: 300.00, Summary: "Opening balance"},
		{TransactionID: "8", AccountNumber: "4532001246", PostedAt: day(9), ClosingBalance: 260.00, Summary: "Streaming subscription"},
	}
}
