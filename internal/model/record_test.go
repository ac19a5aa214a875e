package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionRecord_UnmarshalCamelSpelling(t *testing.T) {
	data := []byte(`{
		"id": "tx-9",
		"accountNumber": "4532001245",
		"cardNumber": "4532 1111",
		"postedAt": "2024-01-10T12:00:00Z",
		"closingBalance": 150.25,
		"summary": "Grocery store"
	}`)

	var record TransactionRecord
	assert.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "tx-9", record.ID)
	assert.Equal(t, "4532001245", record.AccountNumber)
	assert.Equal(t, "4532 1111", record.CardNumber)
	assert.Equal(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), record.PostedAt)
	assert.True(t, record.ClosingBalance.Equal(decimal.RequireFromString("150.25")))
	assert.Equal(t, "Grocery store", record.Summary)
}

func TestTransactionRecord_UnmarshalSnakeSpelling(t *testing.T) {
	data := []byte(`{
		"transaction_id": 42,
		"account_number": 4532001245,
		"card_number": "4532 1111",
		"posted_at": "2024-01-10",
		"closing_balance": "150.25",
		"transaction_summary": "Grocery store"
	}`)

	var record TransactionRecord
	assert.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "42", record.ID)
	assert.Equal(t, "4532001245", record.AccountNumber)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), record.PostedAt)
	assert.True(t, record.ClosingBalance.Equal(decimal.RequireFromString("150.25")))
	assert.Equal(t, "Grocery store", record.Summary)
}

func TestTransactionRecord_UnmarshalDefaults(t *testing.T) {
	var record TransactionRecord
	assert.NoError(t, json.Unmarshal([]byte(`{"id":"1","accountNumber":"A"}`), &record))

	assert.True(t, record.PostedAt.IsZero())
	assert.True(t, record.ClosingBalance.IsZero(), "missing closing balance reads as zero")
	assert.Empty(t, record.CardNumber)
	assert.Empty(t, record.Summary)
}

func TestTransactionRecord_UnparseableDateReadsAsZero(t *testing.T) {
	var record TransactionRecord
	assert.NoError(t, json.Unmarshal([]byte(`{"id":"1","postedAt":"not-a-date"}`), &record))
	assert.True(t, record.PostedAt.IsZero())
}

func TestAccount_UnmarshalBothSpellings(t *testing.T) {
	var camel Account
	assert.NoError(t, json.Unmarshal([]byte(`{"accountNumber":"123","accountType":"Savings","branchAddress":"Main St"}`), &camel))
	assert.Equal(t, Account{AccountNumber: "123", AccountType: "Savings", BranchAddress: "Main St"}, camel)

	var snake Account
	assert.NoError(t, json.Unmarshal([]byte(`{"account_number":123,"account_type":"Savings","branch_address":"Main St"}`), &snake))
	assert.Equal(t, camel, snake)
}
