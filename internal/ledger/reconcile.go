// Package ledger derives a signed, ordered transaction ledger from the
// flat transaction+balance feed the backend returns. The backend stores
// only the closing balance after each event; direction and amount are
// recovered by diffing chronologically adjacent balances within a group.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/easybank/portal/internal/model"
)

// DefaultInlineLimit is the number of entries a group exposes before
// collapsing behind Expand.
const DefaultInlineLimit = 4

// KeyFunc selects the dimension transactions are partitioned by before
// reconciliation. Records yielding an empty key are unattributable and
// excluded from every group.
type KeyFunc func(model.TransactionRecord) string

// ByAccount groups by account number.
func ByAccount(r model.TransactionRecord) string { return r.AccountNumber }

// ByCard groups by card number. Records not originating from card usage
// have no card number and fall out.
func ByCard(r model.TransactionRecord) string { return r.CardNumber }

// Entry is one reconciled ledger line. Ephemeral: recomputed from the
// current snapshot on every invocation, never persisted.
type Entry struct {
	Record         model.TransactionRecord
	SignedAmount   decimal.Decimal
	RunningBalance decimal.Decimal
	IsDebit        bool
}

// Amount is the unsigned magnitude of the entry.
func (e Entry) Amount() decimal.Decimal {
	return e.SignedAmount.Abs()
}

// Group is the reconciled ledger for one grouping key. Entries holds
// the inline view (most recent first, capped); the full list stays
// available through Expand.
type Group struct {
	Key     string
	Entries []Entry
	HasMore bool

	all []Entry
}

// Expand returns the complete sorted, filtered ledger for the group.
func (g Group) Expand() []Entry {
	return g.all
}

// Reconcile partitions records by key, orders each group descending by
// posted time, derives per-entry signed amounts from adjacent closing
// balances, and drops zero-delta rows (duplicate or no-op ledger rows,
// and the oldest entry of each group, which has no prior balance to
// diff against). Groups come back sorted by key. Total over its input:
// malformed records are excluded or defaulted, never rejected.
func Reconcile(records []model.TransactionRecord, key KeyFunc, inlineLimit int) []Group {
	if inlineLimit <= 0 {
		inlineLimit = DefaultInlineLimit
	}

	grouped := make(map[string][]model.TransactionRecord)
	keys := make([]string, 0)
	for _, record := range records {
		k := key(record)
		if k == "" {
			continue
		}
		if _, seen := grouped[k]; !seen {
			keys = append(keys, k)
		}
		grouped[k] = append(grouped[k], record)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		entries := reconcileGroup(grouped[k])
		group := Group{Key: k, Entries: entries, all: entries}
		if len(entries) > inlineLimit {
			group.Entries = entries[:inlineLimit]
			group.HasMore = true
		}
		groups = append(groups, group)
	}
	return groups
}

func reconcileGroup(records []model.TransactionRecord) []Entry {
	sorted := make([]model.TransactionRecord, len(records))
	copy(sorted, records)

	// Most recent first; missing timestamps sort last (treated as
	// earliest). Ties keep input order: the feed defines no secondary
	// key, so the sort must stay stable.
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].PostedAt, sorted[j].PostedAt
		if ti.IsZero() {
			return false
		}
		if tj.IsZero() {
			return true
		}
		return ti.After(tj)
	})

	entries := make([]Entry, 0, len(sorted))
	for i, record := range sorted {
		previousBalance := record.ClosingBalance
		if i+1 < len(sorted) {
			previousBalance = sorted[i+1].ClosingBalance
		}

		signed := record.ClosingBalance.Sub(previousBalance)
		if signed.IsZero() {
			continue
		}

		entries = append(entries, Entry{
			Record:         record,
			SignedAmount:   signed,
			RunningBalance: record.ClosingBalance,
			IsDebit:        signed.IsNegative(),
		})
	}
	return entries
}
