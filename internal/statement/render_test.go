package statement

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/easybank/portal/internal/ledger"
	"github.com/easybank/portal/internal/model"
)

func entry(id, summary string, day int, signed, balance string) ledger.Entry {
	amount := decimal.RequireFromString(signed)
	return ledger.Entry{
		Record: model.TransactionRecord{
			ID:       id,
			PostedAt: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
			Summary:  summary,
		},
		SignedAmount:   amount,
		RunningBalance: decimal.RequireFromString(balance),
		IsDebit:        amount.IsNegative(),
	}
}

func TestRender_EmptyLedgerEmitsHeadersOnly(t *testing.T) {
	var out strings.Builder
	assert.NoError(t, Render(&out, "4532001245", nil))

	html := out.String()
	assert.Contains(t, html, "<th>Date</th>")
	assert.Contains(t, html, "4532001245")
	assert.NotContains(t, html, "<td>", "no data rows for an empty ledger")
}

func TestRender_RowsInInputOrder(t *testing.T) {
	entries := []ledger.Entry{
		entry("2", "Salary credit", 10, "1500", "2500"),
		entry("1", "Grocery store", 5, "-62.45", "1000"),
	}

	var out strings.Builder
	assert.NoError(t, Render(&out, "4532001245", entries))
	html := out.String()

	salary := strings.Index(html, "Salary credit")
	grocery := strings.Index(html, "Grocery store")
	assert.Greater(t, salary, 0)
	assert.Greater(t, grocery, salary, "rows keep the engine's ordering")

	assert.Contains(t, html, "+1,500.00")
	assert.Contains(t, html, "-62.45")
	assert.Contains(t, html, "2,500.00")
	assert.Contains(t, html, "Mar 10, 2024")
}

func TestRender_AbsentFieldsRenderEmpty(t *testing.T) {
	entries := []ledger.Entry{
		{
			SignedAmount:   decimal.NewFromInt(10),
			RunningBalance: decimal.NewFromInt(10),
		},
	}

	var out strings.Builder
	assert.NoError(t, Render(&out, "X", entries))
	// Zero posted time and missing summary come out as empty cells.
	assert.Contains(t, out.String(), "<td></td><td></td>")
}

func TestFormatAmount_GroupsAndRounds(t *testing.T) {
	assert.Equal(t, "1,234,567.90", FormatAmount(decimal.RequireFromString("1234567.899")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+70.00", FormatSigned(decimal.NewFromInt(70)))
	assert.Equal(t, "-20.00", FormatSigned(decimal.NewFromInt(-20)))
}
