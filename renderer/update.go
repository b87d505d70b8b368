// Package renderer produces the markdown reports printed by the fq commands.
package renderer

import (
	"strings"
	"text/template"
)

// PriceChange is one row of the update report.
type PriceChange struct {
	Ticker string
	Date   string
	Old    string // empty when the ledger had no previous price
	New    string
}

// Skipped is one fund or pair that received no update.
type Skipped struct {
	Ticker string
	Reason string
}

// UpdateReport holds the outcome of one update run.
type UpdateReport struct {
	Date    string // the day the update ran
	Changes []PriceChange
	Skipped []Skipped
}

var updateTemplate = template.Must(template.New("update").Parse(`# Price update on {{.Date}}

{{if .Changes -}}
| Ticker | Date | Old | New |
|---|---|---:|---:|
{{range .Changes -}}
| {{.Ticker}} | {{.Date}} | {{if .Old}}{{.Old}}{{else}}n/a{{end}} | {{.New}} |
{{end}}
{{- else -}}
Nothing to update.
{{end}}
{{- if .Skipped}}

## Skipped

{{range .Skipped -}}
- **{{.Ticker}}**: {{.Reason}}
{{end}}
{{- end}}`))

// Update renders the result of an update run as markdown.
func Update(report UpdateReport) string {
	var b strings.Builder
	if err := updateTemplate.Execute(&b, report); err != nil {
		// The template and its data are fully under our control.
		panic(err)
	}
	return b.String()
}
