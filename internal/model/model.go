package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a read-mostly backend-owned entity.
type Account struct {
	AccountNumber string
	AccountType   string
	BranchAddress string
}

type accountWire struct {
	AccountNumber  flexString `json:"accountNumber"`
	AccountNumberS flexString `json:"account_number"`
	AccountType    string     `json:"accountType"`
	AccountTypeS   string     `json:"account_type"`
	BranchAddress  string     `json:"branchAddress"`
	BranchAddressS string     `json:"branch_address"`
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var wire accountWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	a.AccountNumber = firstString(string(wire.AccountNumber), string(wire.AccountNumberS))
	a.AccountType = firstString(wire.AccountType, wire.AccountTypeS)
	a.BranchAddress = firstString(wire.BranchAddress, wire.BranchAddressS)
	return nil
}

type Card struct {
	ID             string `json:"id"`
	CardNumber     string `json:"cardNumber"`
	CardholderName string `json:"cardholderName"`
	CardType       string `json:"cardType"`
	ExpiryDate     string `json:"expiryDate"`
}

type Loan struct {
	LoanNumber        string          `json:"loanNumber"`
	LoanType          string          `json:"loanType"`
	TotalLoan         decimal.Decimal `json:"totalLoan"`
	AmountPaid        decimal.Decimal `json:"amountPaid"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
}

type Notice struct {
	Title     string    `json:"noticeSummary"`
	Body      string    `json:"noticeDetails"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the cached identity of the logged-in user.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the client-held proof of authentication. Exactly one is
// live per browsing context; it is created on login and destroyed on
// logout or the first 401.
type Session struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// Registration is the signup form payload. Field names map to the
// backend's customer columns.
type Registration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"pwd"`
	Role         string `json:"role"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
}
