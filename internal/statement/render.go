// Package statement formats a reconciled ledger as a printable,
// self-contained HTML document. Pure formatting: no network or storage
// side effects, and absent fields render as empty strings.
package statement

import (
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/easybank/portal/internal/ledger"
)

const dateLayout = "Jan 2, 2006"

var printer = message.NewPrinter(language.English)

var statementTemplate = template.Must(template.New("statement").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Statement - {{.Label}}</title>
<style>
  body { font-family: Georgia, serif; margin: 2rem; color: #1a1a2e; }
  h1 { font-size: 1.4rem; border-bottom: 2px solid #1a1a2e; padding-bottom: .4rem; }
  .meta { color: #555; font-size: .85rem; margin-bottom: 1.2rem; }
  table { border-collapse: collapse; width: 100%; }
  th, td { padding: .45rem .6rem; border-bottom: 1px solid #ccc; text-align: left; }
  td.num, th.num { text-align: right; font-variant-numeric: tabular-nums; }
  .debit { color: #8b0000; }
  .credit { color: #006400; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>EasyBank Statement &mdash; {{.Label}}</h1>
<div class="meta">Generated {{.GeneratedAt}}</div>
<table>
<thead>
<tr><th>Date</th><th>Description</th><th class="num">Amount</th><th class="num">Balance</th></tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Date}}</td><td>{{.Description}}</td><td class="num {{.Class}}">{{.Amount}}</td><td class="num">{{.Balance}}</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

type row struct {
	Date        string
	Description string
	Amount      string
	Balance     string
	Class       string
}

type document struct {
	Label       string
	GeneratedAt string
	Rows        []row
}

// Render writes the statement for one reconciled group. Rows come out
// in input order (the engine already sorted them most recent first); an
// empty entry sequence produces the header row and no data rows.
func Render(w io.Writer, groupLabel string, entries []ledger.Entry) error {
	doc := document{
		Label:       groupLabel,
		GeneratedAt: time.Now().Format(dateLayout),
		Rows:        make([]row, 0, len(entries)),
	}

	for _, entry := range entries {
		class := "credit"
		if entry.IsDebit {
			class = "debit"
		}
		doc.Rows = append(doc.Rows, row{
			Date:        formatDate(entry.Record.PostedAt),
			Description: entry.Record.Summary,
			Amount:      FormatSigned(entry.SignedAmount),
			Balance:     FormatAmount(entry.RunningBalance),
			Class:       class,
		})
	}

	return statementTemplate.Execute(w, doc)
}

// FormatAmount renders a balance with two decimal places and locale
// digit grouping.
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}

// FormatSigned renders an amount with an explicit sign.
func FormatSigned(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatAmount(d.Neg())
	}
	return "+" + FormatAmount(d)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
