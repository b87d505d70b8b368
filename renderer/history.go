package renderer

import (
	"strings"
	"text/template"
)

// PricePoint is one (date, price) entry in a security's history.
type PricePoint struct {
	Date  string
	Price string
}

// History describes the recorded price history of one security.
// Prices are preformatted in the security's currency.
type History struct {
	Ticker string
	Name   string // the security's description, may be empty
	Points []PricePoint
}

var historyTemplate = template.Must(template.New("history").Parse(`# {{.Ticker}}{{if .Name}} ({{.Name}}){{end}}

{{if .Points -}}
| Date | Price |
|---|---:|
{{range .Points -}}
| {{.Date}} | {{.Price}} |
{{end}}
{{- else -}}
No prices recorded.
{{end}}`))

// RenderHistory renders a security's price history as markdown.
func RenderHistory(h History) string {
	var b strings.Builder
	if err := historyTemplate.Execute(&b, h); err != nil {
		panic(err)
	}
	return b.String()
}
