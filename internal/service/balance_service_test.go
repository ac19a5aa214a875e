package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBalanceTransactions_NormalizesMixedSpellings(t *testing.T) {
	gw := new(mockGateway)
	svc := NewBalanceService(gw)

	gw.On("Do", mock.Anything, http.MethodGet, "/myBalance", nil).
		Return(jsonResponse(http.StatusOK, `[
			{"transaction_id":1,"account_number":"A","posted_at":"2024-01-01T00:00:00Z","closing_balance":100},
			{"id":"2","accountNumber":"A","postedAt":"2024-01-05T00:00:00Z","closingBalance":80,"summary":"ATM withdrawal"}
		]`), nil)

	records, err := svc.Transactions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "A", records[0].AccountNumber)
	assert.True(t, records[0].ClosingBalance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), records[0].PostedAt)

	assert.Equal(t, "2", records[1].ID)
	assert.Equal(t, "ATM withdrawal", records[1].Summary)
}

func TestBalanceTransactions_GatewayErrorPropagates(t *testing.T) {
	gw := new(mockGateway)
	svc := NewBalanceService(gw)

	gw.On("Do", mock.Anything, http.MethodGet, "/myBalance", nil).
		Return(nil, assert.AnError)

	_, err := svc.Transactions(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
