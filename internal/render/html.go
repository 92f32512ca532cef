package render

import (
	"github.com/berkocan/genelpara-api/internal/entities"
	"html/template"
	"io"
	"time"
)

// Page is the data behind the rate cards page.
type Page struct {
	Category   string
	Categories []string
	Symbols    string
	Response   *entities.RateResponse
	Origin     entities.Origin
	Error      string
	UpdatedAt  time.Time
}

// CustomCategory reports whether the current category list is not one of the menu entries,
// as with a multi-category query. It is then offered as an extra, selected option.
func (p Page) CustomCategory() bool {
	if p.Category == "" {
		return false
	}
	for _, c := range p.Categories {
		if c == p.Category {
			return false
		}
	}
	return true
}

var pageTemplate = template.Must(template.New("rates").Funcs(template.FuncMap{
	"price": func(s string) string { return Price(s, pricePlaces) },
	"stamp": func(t time.Time) string { return t.Format("02.01.2006 15:04:05") },
}).Parse(pageHTML))

func HTML(w io.Writer, page Page) error {
	return pageTemplate.Execute(w, page)
}

const pageHTML = `<!DOCTYPE html>
<html lang="tr">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>GenelPara rates</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Arial, sans-serif; background: #f5f5f5; padding: 20px; }
        .container { max-width: 1000px; margin: 0 auto; background: white; border-radius: 12px; padding: 30px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #2563eb; margin-bottom: 20px; }
        form { margin-bottom: 20px; }
        select, input, button { padding: 10px 14px; border: 1px solid #e2e8f0; border-radius: 8px; font-size: 1rem; margin-right: 8px; }
        button { background: #2563eb; color: white; border: none; cursor: pointer; font-weight: 600; }
        .rate-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr)); gap: 20px; margin-bottom: 30px; }
        .rate-card { background: #f8fafc; border-radius: 8px; padding: 20px; border-left: 4px solid #2563eb; }
        .rate-card.up { border-left-color: #10b981; }
        .rate-card.down { border-left-color: #ef4444; }
        .symbol { font-size: 1.5rem; font-weight: 700; color: #1e293b; margin-bottom: 10px; }
        .price { font-size: 2rem; font-weight: 700; color: #2563eb; margin-bottom: 5px; }
        .change { font-size: 0.875rem; font-weight: 600; padding: 4px 8px; border-radius: 4px; display: inline-block; }
        .change.up { background: #d1fae5; color: #065f46; }
        .change.down { background: #fee2e2; color: #991b1b; }
        .change.flat { background: #e2e8f0; color: #475569; }
        .info { background: #dbeafe; border-left: 4px solid #2563eb; padding: 15px; border-radius: 8px; }
        .error { background: #fee2e2; color: #991b1b; padding: 20px; border-radius: 8px; }
        .timestamp { text-align: center; color: #94a3b8; font-size: 0.875rem; margin-top: 20px; }
    </style>
</head>
<body>
<div class="container">
    <h1>Live exchange rates</h1>
    <form method="get" action="/">
        <select name="category">
            {{- if .CustomCategory}}
            <option value="{{.Category}}" selected>{{.Category}}</option>
            {{- end}}
            {{- range .Categories}}
            <option value="{{.}}"{{if eq . $.Category}} selected{{end}}>{{.}}</option>
            {{- end}}
        </select>
        <input type="text" name="symbols" value="{{.Symbols}}" placeholder="USD,EUR or all">
        <button type="submit">Refresh</button>
    </form>
{{- if .Error}}
    <div class="error"><strong>Error:</strong> {{.Error}}</div>
{{- else if not .Response.Success}}
    <div class="error"><strong>API error:</strong> {{.Response.ErrorMessage}}</div>
{{- else}}
    <div class="rate-grid">
        {{- range .Response.Records}}
        <div class="rate-card {{.Direction}}">
            <div class="symbol">{{.Symbol}}</div>
            <div class="price">{{price .Sell}} {{.Unit}}</div>
            <span class="change {{.Direction}}">{{.Direction.Arrow}} {{if .Rate}}{{.Rate}} {{end}}({{.ChangePercent}}%)</span>
        </div>
        {{- end}}
    </div>
    {{- with .Response.RateLimit}}
    <div class="info"><strong>Rate limit:</strong> {{.Remaining}}/{{.Limit}} requests left, resets at {{.ResetAt}}</div>
    {{- end}}
{{- end}}
    <div class="timestamp">Source: {{.Origin}} &middot; updated {{stamp .UpdatedAt}}</div>
</div>
</body>
</html>
`
