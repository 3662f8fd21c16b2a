package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
)

var htmlFuncs = template.FuncMap{
	"mm": func(v float64) template.CSS {
		return template.CSS(fmt.Sprintf("%.1fmm", v))
	},
	"png": func(b []byte) template.URL {
		return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(b))
	},
	"last": func(i, n int) bool { return i == n-1 },
}

var htmlTemplate = template.Must(template.New("ascomp").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 10mm; }
* { box-sizing: border-box; }
body { margin: 0; font-family: Helvetica, Arial, sans-serif; font-size: 8pt; color: #000; }
.page { width: 190mm; }
.page.break { page-break-after: always; break-after: page; }
h1 { font-size: 13pt; margin: 0; text-align: center; }
h2 { font-size: 9pt; margin: 0 0 3mm 0; text-align: center; font-weight: normal; }
h3 { font-size: 8.5pt; margin: 2.5mm 0 1mm 0; text-transform: uppercase; }
.band { display: flex; justify-content: space-between; }
table { border-collapse: collapse; table-layout: fixed; }
td, th { border: 0.2mm solid #000; padding: 0.6mm 1mm; height: 5mm; text-align: left; vertical-align: middle; word-wrap: break-word; }
th { background: #e6e6e6; font-weight: bold; }
.c { text-align: center; }
.signatures { display: flex; justify-content: space-between; margin-top: 3mm; }
.signatures div { width: 60mm; height: 25mm; }
.signatures img { max-width: 60mm; max-height: 25mm; }
</style>
</head>
<body>
{{- $pages := len .Pages}}
{{- $doc := .}}
{{- range $i, $page := .Pages}}
<div class="page{{if not (last $i $pages)}} break{{end}}">
{{- if eq $i 0}}
<h1>{{$doc.Title}}</h1>
<h2>{{$doc.Subtitle}}</h2>
{{- end}}
{{- range $page.Blocks}}
<h3>{{.Title}}</h3>
<div class="band">
{{- range .Tables}}
<table style="width: {{mm .Width}}">
<colgroup>{{range .Widths}}<col style="width: {{mm .}}">{{end}}</colgroup>
{{- range .Rows}}
<tr>{{range .}}{{if .Header}}<th{{if gt .Span 1}} colspan="{{.Span}}"{{end}}{{if .Center}} class="c"{{end}}>{{.Text}}</th>{{else}}<td{{if gt .Span 1}} colspan="{{.Span}}"{{end}}{{if .Center}} class="c"{{end}}>{{.Text}}</td>{{end}}{{end}}</tr>
{{- end}}
</table>
{{- end}}
</div>
{{- end}}
{{- if last $i $pages}}
<div class="signatures">
{{- range $doc.Signatures}}
<div>{{if .Image}}<img src="{{png .Image}}" alt="{{.Label}}">{{end}}</div>
{{- end}}
</div>
{{- end}}
</div>
{{- end}}
</body>
</html>
`))

// HTML renders doc as one self-contained page: inline CSS, inline images,
// and a forced page break between the form's pages.
func HTML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
