// Package mockbank is a development stub of the EasyBank backend. It
// implements the REST contract the portal consumes with in-memory
// fixture data so the client can be exercised end to end. Not a real
// bank: tokens live in memory and everything resets on restart.
package mockbank

import (
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/easybank/portal/internal/model"
)

type user struct {
	password string
	profile  model.Profile
}

// transactionRow is the wire shape of one ledger row. The stub emits
// the snake_case spellings so clients must normalize on ingest, same as
// the production backend.
type transactionRow struct {
	TransactionID  string  `json:"transaction_id"`
	AccountNumber  string  `json:"account_number"`
	CardNumber     string  `json:"card_number,omitempty"`
	PostedAt       string  `json:"posted_at"`
	ClosingBalance float64 `json:"closing_balance"`
	Summary        string  `json:"transaction_summary"`
}

type accountRow struct {
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	BranchAddress string `json:"branch_address"`
}

// Bank holds the mutable in-memory state behind the stub endpoints.
type Bank struct {
	mu           sync.Mutex
	users        map[string]user
	tokens       map[string]string
	csrfToken    string
	accounts     []accountRow
	cards        []model.Card
	loans        []model.Loan
	notices      []model.Notice
	transactions []transactionRow
}

func NewBank() *Bank {
	return &Bank{
		users:     make(map[string]user),
		tokens:    make(map[string]string),
		csrfToken: uuid.Must(uuid.NewV4()).String(),
	}
}

// Login checks a Basic credential pair and mints a bearer token.
func (b *Bank) Login(email, password string) (string, model.Profile, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[strings.ToLower(email)]
	if !ok || u.password != password {
		return "", model.Profile{}, false
	}
	token := uuid.Must(uuid.NewV4()).String()
	b.tokens[token] = strings.ToLower(email)
	return token, u.profile, true
}

// Authorize resolves a bearer token to a user email.
func (b *Bank) Authorize(token string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	email, ok := b.tokens[token]
	return email, ok
}

// CSRFToken is the per-instance token issued as a cookie and expected
// back as a header on state-changing calls.
func (b *Bank) CSRFToken() string {
	return b.csrfToken
}

func (b *Bank) RegisterUser(email, password string, profile model.Profile) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := b.users[key]; exists {
		return false
	}
	b.users[key] = user{password: password, profile: profile}
	return true
}

func (b *Bank) Accounts() []accountRow {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]accountRow, len(b.accounts))
	copy(out, b.accounts)
	return out
}

func (b *Bank) CreateAccount(accountType, branchAddress string) accountRow {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := accountRow{
		AccountNumber: uuid.Must(uuid.NewV4()).String()[:8],
		AccountType:   accountType,
		BranchAddress: branchAddress,
	}
	b.accounts = append(b.accounts, row)
	return row
}

func (b *Bank) DeleteAccount(accountNumber string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, a := range b.accounts {
		if a.AccountNumber == accountNumber {
			b.accounts = append(b.accounts[:i], b.accounts[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Bank) Cards() []model.Card {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Card, len(b.cards))
	copy(out, b.cards)
	return out
}

func (b *Bank) CreateCard(cardType, cardholderName string) model.Card {
	b.mu.Lock()
	defer b.mu.Unlock()

	card := model.Card{
		ID:             uuid.Must(uuid.NewV4()).String(),
		CardNumber:     "4532 **** **** " + uuid.Must(uuid.NewV4()).String()[:4],
		CardholderName: cardholderName,
		CardType:       cardType,
		ExpiryDate:     "12/29",
	}
	b.cards = append(b.cards, card)
	return card
}

func (b *Bank) DeleteCard(cardID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, c := range b.cards {
		if c.ID == cardID {
			b.cards = append(b.cards[:i], b.cards[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Bank) Loans() []model.Loan {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Loan, len(b.loans))
	copy(out, b.loans)
	return out
}

func (b *Bank) Notices() []model.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

func (b *Bank) Transactions() []transactionRow {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]transactionRow, len(b.transactions))
	copy(out, b.transactions)
	return out
}
