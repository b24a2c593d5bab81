package quote

import (
	"encoding/csv"
	"html/template"
	"io"
	"strconv"
	"time"
)

// ProjectInfo is the header block both export formats print above the line
// items.
type ProjectInfo struct {
	TenantName  string
	ProjectName string
	QuoteNumber string
	Currency    string
	ValidUntil  *time.Time
	GeneratedAt time.Time
}

// WriteCSV streams the workbook-style export: a project-info section, a blank
// separator, the line items, and a totals row.
func WriteCSV(w io.Writer, q *Quote, info ProjectInfo) error {
	cw := csv.NewWriter(w)

	infoRows := [][]string{
		{"Project", info.ProjectName},
		{"Tenant", info.TenantName},
		{"Quote", q.Name},
		{"Quote Number", q.QuoteNumber},
		{"Currency", q.Currency},
		{"Generated", info.GeneratedAt.Format("2006-01-02")},
	}
	if q.ValidUntil != nil {
		infoRows = append(infoRows, []string{"Valid Until", q.ValidUntil.Format("2006-01-02")})
	}
	for _, row := range infoRows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{}); err != nil {
		return err
	}

	if err := cw.Write([]string{"Pos", "Description", "Quantity", "Unit Price", "Discount %", "Line Total"}); err != nil {
		return err
	}
	for i, item := range q.Items {
		row := []string{
			strconv.Itoa(i + 1),
			item.Description,
			item.Quantity.String(),
			item.UnitPrice.StringFixed(2),
			item.DiscountPct.StringFixed(2),
			item.LineTotal.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := cw.Write([]string{"", "Subtotal", "", "", "", q.Subtotal.StringFixed(2)}); err != nil {
		return err
	}
	if err := cw.Write([]string{"", "Discount", "", "", "", q.Discount.StringFixed(2)}); err != nil {
		return err
	}
	if err := cw.Write([]string{"", "Total", "", "", "", q.Total.StringFixed(2)}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

var printTemplate = template.Must(template.New("quote").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Quote.Name}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f0f0f0; }
td.num, th.num { text-align: right; }
tfoot td { font-weight: bold; }
.meta { color: #555; }
</style>
</head>
<body>
<h1>{{.Quote.Name}}</h1>
<p class="meta">
{{.Info.TenantName}}{{if .Info.ProjectName}} &mdash; {{.Info.ProjectName}}{{end}}<br>
{{if .Quote.QuoteNumber}}Quote {{.Quote.QuoteNumber}} &middot; {{end}}Generated {{.Info.GeneratedAt.Format "2006-01-02"}}
{{if .Quote.ValidUntil}} &middot; Valid until {{.Quote.ValidUntil.Format "2006-01-02"}}{{end}}
</p>
<table>
<thead>
<tr><th>Pos</th><th>Description</th><th class="num">Qty</th><th class="num">Unit Price</th><th class="num">Discount %</th><th class="num">Line Total</th></tr>
</thead>
<tbody>
{{range $i, $item := .Quote.Items}}
<tr>
<td>{{add $i 1}}</td>
<td>{{$item.Description}}</td>
<td class="num">{{$item.Quantity.String}}</td>
<td class="num">{{$item.UnitPrice.StringFixed 2}}</td>
<td class="num">{{$item.DiscountPct.StringFixed 2}}</td>
<td class="num">{{$item.LineTotal.StringFixed 2}}</td>
</tr>
{{end}}
</tbody>
<tfoot>
<tr><td colspan="5">Subtotal ({{.Quote.Currency}})</td><td class="num">{{.Quote.Subtotal.StringFixed 2}}</td></tr>
<tr><td colspan="5">Discount</td><td class="num">{{.Quote.Discount.StringFixed 2}}</td></tr>
<tr><td colspan="5">Total ({{.Quote.Currency}})</td><td class="num">{{.Quote.Total.StringFixed 2}}</td></tr>
</tfoot>
</table>
<script>window.print();</script>
</body>
</html>`))

// RenderPrintHTML writes the print document. The page invokes the browser
// print dialog itself; there is no server-side PDF generation.
func RenderPrintHTML(w io.Writer, q *Quote, info ProjectInfo) error {
	return printTemplate.Execute(w, struct {
		Quote *Quote
		Info  ProjectInfo
	}{Quote: q, Info: info})
}
