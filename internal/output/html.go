package output

import (
	"html/template"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/selimozcann/SiteHunter/internal/model"
	"github.com/selimozcann/SiteHunter/internal/report"
)

// PageData provides the full context for the HTML report.
type PageData struct {
	Title         string
	Target        string
	RunID         string
	GeneratedAt   time.Time
	Params        map[string]string
	OrderedParams []Param
	Report        report.Report
	// Recurring counts findings also seen in the previous run; -1 when unknown.
	Recurring int
}

// Param represents a rendered configuration key/value pair.
type Param struct {
	Key   string
	Value string
}

var titleCase = cases.Title(language.English)

// KindTitle turns a kind such as "font_size_mobile" into "Font Size Mobile".
func KindTitle(k model.Kind) string {
	return titleCase.String(strings.ReplaceAll(string(k), "_", " "))
}

var htmlTemplate = template.Must(template.New("report").Funcs(sprig.FuncMap()).Funcs(template.FuncMap{
	"formatTime": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"kindTitle":  KindTitle,
	"sevClass":   func(s model.Severity) string { return strings.ToLower(string(s)) },
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root { color-scheme: light dark; }
body { font-family: system-ui, -apple-system, Segoe UI, Roboto, sans-serif; margin: 24px; background:#fafafa; color:#111; }
header { margin-bottom: 24px; }
h1 { font-size: 26px; margin: 0 0 8px; }
.section { border:1px solid #e5e7eb; border-radius:16px; padding:16px 20px; margin-bottom:18px; background:#fff; box-shadow:0 1px 2px rgba(15,23,42,0.08); }
h2 { font-size:20px; margin:0 0 12px; }
.summary-grid { display:grid; gap:12px; grid-template-columns: repeat(auto-fit,minmax(160px,1fr)); }
.summary-card { display:block; padding:12px; border-radius:12px; border:1px solid #cbd5f5; text-decoration:none; color:inherit; position:relative; background:linear-gradient(180deg,#eef2ff,#fff); }
.summary-card[data-active="true"] { border-color:#4f46e5; box-shadow:0 0 0 2px rgba(79,70,229,0.4); }
.summary-card .badge { position:absolute; top:12px; right:12px; padding:2px 10px; border-radius:999px; background:#4f46e5; color:#fff; font-size:12px; }
.meta { color:#6b7280; font-size:12px; }
.table { width:100%; border-collapse:collapse; font-size:14px; }
.table th, .table td { border-bottom:1px solid #e5e7eb; padding:6px 8px; text-align:left; vertical-align:top; }
.table th { background:#f9fafb; }
.sev { display:inline-block; padding:2px 8px; border-radius:999px; font-size:12px; color:#fff; }
.sev.high { background:#dc2626; } .sev.medium { background:#d97706; } .sev.low { background:#0891b2; } .sev.info { background:#16a34a; }
.steps { margin:0; padding-left:18px; }
.footer { text-align:center; font-size:12px; color:#6b7280; margin-top:24px; }
@media (prefers-color-scheme: dark) {
        body { background:#0f172a; color:#e2e8f0; }
        .section { background:#1e293b; border-color:#334155; box-shadow:none; }
        .summary-card { background:linear-gradient(180deg,#312e81,#1e293b); border-color:#4338ca; color:#e0e7ff; }
        .meta { color:#94a3b8; }
        .table th { background:#1e293b; }
}
</style>
<script>
document.addEventListener('DOMContentLoaded', function() {
  const cards = document.querySelectorAll('[data-filter]');
  const rows = document.querySelectorAll('.finding-row');
  function apply(filter) {
    cards.forEach(c => c.dataset.active = (c.dataset.filter === filter ? 'true' : 'false'));
    rows.forEach(row => { row.style.display = (filter === 'all' || row.dataset.severity === filter) ? '' : 'none'; });
  }
  cards.forEach(card => card.addEventListener('click', function (ev) {
    ev.preventDefault();
    apply(card.dataset.filter || 'all');
  }));
  apply('all');
});
</script>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p class="meta">{{.Target}} &middot; generated at {{formatTime .GeneratedAt}}{{if .RunID}} &middot; run {{.RunID | trunc 8}}{{end}}</p>
</header>
{{- $sum := .Report.Summary }}
<section id="summary" class="section">
  <h2>Summary</h2>
  <div class="summary-grid">
    <a class="summary-card" href="#findings" data-filter="all"><strong>Total Bugs</strong><span class="badge">{{$sum.Total}}</span></a>
    <a class="summary-card" href="#findings" data-filter="high"><strong>High</strong><span class="badge">{{$sum.High}}</span></a>
    <a class="summary-card" href="#findings" data-filter="medium"><strong>Medium</strong><span class="badge">{{$sum.Medium}}</span></a>
    <a class="summary-card" href="#findings" data-filter="low"><strong>Low</strong><span class="badge">{{$sum.Low}}</span></a>
  </div>
  <p><strong>Build Stability:</strong> {{$sum.Stability}}</p>
  <p><strong>Recommendation:</strong> {{$sum.Recommendation}}</p>
  {{- if ge .Recurring 0 }}
  <p class="meta">{{.Recurring}} {{if eq .Recurring 1}}finding{{else}}findings{{end}} also reported by the previous run.</p>
  {{- end }}
</section>
<section id="findings" class="section">
  <h2>Bug Report</h2>
  <table class="table">
    <thead>
      <tr><th>Bug ID</th><th>Bug Title</th><th>Severity</th><th>Steps to Reproduce</th><th>Expected Result</th><th>Actual Result</th><th>Screenshot</th><th>Status</th><th>Environment</th></tr>
    </thead>
    <tbody>
    {{- range .Report.Findings }}
      <tr class="finding-row" data-severity="{{sevClass .Severity}}">
        <td>{{.ID}}</td>
        <td>{{.Title}}{{if .Kind}}<div class="meta">{{kindTitle .Kind}}</div>{{end}}</td>
        <td><span class="sev {{sevClass .Severity}}">{{.Severity}}</span></td>
        <td><ol class="steps">{{range .Steps}}<li>{{.}}</li>{{end}}</ol></td>
        <td>{{.Expected}}</td>
        <td>{{.Actual}}</td>
        <td>{{.Screenshot | default "-"}}</td>
        <td>{{.Status}}</td>
        <td>{{.Environment}}</td>
      </tr>
    {{- end }}
    </tbody>
  </table>
</section>
<section id="environment" class="section">
  <h2>Environment</h2>
  <table class="table">
  {{- range .Report.Environment.Rows }}
    <tr><th>{{.Key}}</th><td>{{.Value}}</td></tr>
  {{- end }}
  </table>
</section>
{{- if .OrderedParams }}
<section id="parameters" class="section">
  <h2>Parameters</h2>
  <dl>
  {{- range .OrderedParams }}
    <dt>{{.Key}}</dt>
    <dd>{{.Value}}</dd>
  {{- end }}
  </dl>
</section>
{{- end }}
<footer class="footer">
  SiteHunter report generated at {{formatTime .GeneratedAt}}
</footer>
</body>
</html>
`))

// RenderHTML renders the HTML report using the provided data.
func RenderHTML(w io.Writer, data PageData) error {
	if data.Params != nil {
		keys := make([]string, 0, len(data.Params))
		for k := range data.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ordered := make([]Param, 0, len(keys))
		for _, k := range keys {
			ordered = append(ordered, Param{Key: k, Value: data.Params[k]})
		}
		data.OrderedParams = ordered
	}
	return htmlTemplate.Execute(w, data)
}

// WriteHTML renders the report to path.
func WriteHTML(path string, data PageData) error {
	return writeAtomic(path, func(w io.Writer) error { return RenderHTML(w, data) })
}
