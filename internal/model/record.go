package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one posted ledger event, owned by the backend.
// The client reads snapshots of these; signed amount and direction are
// derived downstream, never stored.
type TransactionRecord struct {
	ID             string
	AccountNumber  string
	CardNumber     string
	PostedAt       time.Time
	ClosingBalance decimal.Decimal
	Summary        string
}

// transactionRecordWire accepts both the lower-camel and snake field
// spellings the backend emits interchangeably. Normalization happens
// here, once, so everything downstream sees one schema.
type transactionRecordWire struct {
	ID             flexString       `json:"id"`
	TransactionID  flexString       `json:"transaction_id"`
	AccountNumber  flexString       `json:"accountNumber"`
	AccountNumberS flexString       `json:"account_number"`
	CardNumber     flexString       `json:"cardNumber"`
	CardNumberS    flexString       `json:"card_number"`
	PostedAt       flexTime         `json:"postedAt"`
	PostedAtS      flexTime         `json:"posted_at"`
	TransactionDt  flexTime         `json:"transaction_dt"`
	ClosingBalance *decimal.Decimal `json:"closingBalance"`
	ClosingBalS    *decimal.Decimal `json:"closing_balance"`
	Summary        string           `json:"summary"`
	SummaryS       string           `json:"transaction_summary"`
}

func (r *TransactionRecord) UnmarshalJSON(data []byte) error {
	var wire transactionRecordWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.ID = firstString(string(wire.ID), string(wire.TransactionID))
	r.AccountNumber = firstString(string(wire.AccountNumber), string(wire.AccountNumberS))
	r.CardNumber = firstString(string(wire.CardNumber), string(wire.CardNumberS))
	r.Summary = firstString(wire.Summary, wire.SummaryS)

	r.PostedAt = time.Time(wire.PostedAt)
	if r.PostedAt.IsZero() {
		r.PostedAt = time.Time(wire.PostedAtS)
	}
	if r.PostedAt.IsZero() {
		r.PostedAt = time.Time(wire.TransactionDt)
	}

	// Missing closing balance is treated as zero.
	switch {
	case wire.ClosingBalance != nil:
		r.ClosingBalance = *wire.ClosingBalance
	case wire.ClosingBalS != nil:
		r.ClosingBalance = *wire.ClosingBalS
	default:
		r.ClosingBalance = decimal.Zero
	}

	return nil
}

func (r TransactionRecord) MarshalJSON() ([]byte, error) {
	out := struct {
		ID             string          `json:"id"`
		AccountNumber  string          `json:"accountNumber"`
		CardNumber     string          `json:"cardNumber,omitempty"`
		PostedAt       string          `json:"postedAt,omitempty"`
		ClosingBalance decimal.Decimal `json:"closingBalance"`
		Summary        string          `json:"summary,omitempty"`
	}{
		ID:             r.ID,
		AccountNumber:  r.AccountNumber,
		CardNumber:     r.CardNumber,
		ClosingBalance: r.ClosingBalance,
		Summary:        r.Summary,
	}
	if !r.PostedAt.IsZero() {
		out.PostedAt = r.PostedAt.Format(time.RFC3339)
	}
	return json.Marshal(out)
}

// flexString accepts a JSON string or number (account and transaction
// identifiers appear as either).
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexTime accepts RFC3339 or a bare date. Unparseable or absent values
// normalize to the zero time, which the reconciliation engine sorts as
// earliest.
type flexTime time.Time

var timeLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = flexTime(time.Time{})
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, v); err == nil {
			*t = flexTime(parsed)
			return nil
		}
	}
	*t = flexTime(time.Time{})
	return nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
