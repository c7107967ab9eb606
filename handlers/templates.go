// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielhkuo/pollscope/viewer"
)

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"pageURL": pageURL,
	"sortURL": sortURL,
}).Parse(layoutTemplate + rowsTemplate + controlsTemplate + viewTemplate + analysisTemplate + indexTemplate))

// pageURL links to a page of the viewer, keeping query and page size
func pageURL(base string, s viewer.State, page int) string {
	v := url.Values{}
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.PageSize != viewer.DefaultPageSize {
		v.Set("size", strconv.Itoa(s.PageSize))
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return base
	}
	return base + "?" + v.Encode()
}

func sortURL(base string, column int) string {
	return base + "?sort=" + strconv.Itoa(column)
}

// renderHTML executes a named template into a buffer first so a failed
// render never sends a half-written page.
func renderHTML(w http.ResponseWriter, statusCode int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render page", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "template", name, "error", err)
	}
}

const layoutTemplate = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.}} | Pollscope</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 0; color: #212529; }
    header { background: #1a237e; color: #fff; padding: 12px 24px; }
    header a { color: #fff; text-decoration: none; margin-right: 16px; }
    main { padding: 24px; max-width: 1200px; margin: 0 auto; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #dee2e6; padding: 6px 10px; }
    th { background: #f1f3f5; }
    .text-center { text-align: center; }
    .text-right { text-align: right; }
    .positive { color: #2e7d32; }
    .negative { color: #c62828; }
    .party-badge { padding: 2px 8px; border-radius: 10px; color: #fff; background: #757575; }
    .party-bjp { background: #ff9933; }
    .party-congress { background: #19aaed; }
    .party-jdu, .party-rld { background: #006400; }
    .party-rjd, .party-sp { background: #e41e1e; }
    .party-bsp { background: #22409a; }
    .party-ysrcp { background: #1569c7; }
    .party-tdp { background: #ffd700; color: #212529; }
    .party-jsp { background: #dc143c; }
    .no-data, .error-row { text-align: center; font-style: italic; }
    .error-row { color: #c62828; }
    .pagination { display: flex; gap: 6px; align-items: center; margin: 12px 0; flex-wrap: wrap; }
    .page-btn { padding: 4px 10px; border: 1px solid #dee2e6; text-decoration: none; color: #1a237e; }
    .page-btn.active { background: #1a237e; color: #fff; }
    .page-btn.disabled { pointer-events: none; color: #adb5bd; }
    .stats { display: flex; gap: 24px; margin: 16px 0; }
    .charts img { width: 400px; height: 400px; }
  </style>
</head>
<body>
  <header><a href="/">Pollscope</a><a href="/?status=completed">Completed</a><a href="/?status=upcoming">Upcoming</a></header>
  <main>
{{end}}
{{define "foot"}}  </main>
</body>
</html>
{{end}}
`

const rowsTemplate = `
{{define "rows"}}{{range .}}
{{if eq .Kind "error"}}    <tr class="error-row"><td colspan="{{.ColSpan}}">{{.Message}}</td></tr>
{{else if eq .Kind "no-data"}}    <tr class="no-data"><td colspan="{{.ColSpan}}">{{.Message}}</td></tr>
{{else}}    <tr>{{range .Cells}}{{if not .Omitted}}<td{{if gt .RowSpan 1}} rowspan="{{.RowSpan}}"{{end}}{{with .Align}} class="text-{{.}}"{{end}}>{{if .Badge}}<span class="party-badge party-{{.Badge}}">{{.Text}}</span>{{else if .Class}}<span class="{{.Class}}">{{.Text}}</span>{{else}}{{.Text}}{{end}}</td>{{end}}{{end}}</tr>
{{end}}{{end}}{{end}}
`

const controlsTemplate = `
{{define "controls"}}{{with .View.Controls}}
  <div class="pagination">
    <a class="page-btn{{if .Prev.Disabled}} disabled{{end}}" href="{{pageURL $.Base $.View.State .Prev.Page}}">Previous</a>
    {{range .Pages}}{{if .Ellipsis}}<span class="ellipsis">…</span>{{else}}<a class="page-btn{{if .Active}} active{{end}}" href="{{pageURL $.Base $.View.State .Page}}">{{.Page}}</a>{{end}}
    {{end}}<a class="page-btn{{if .Next.Disabled}} disabled{{end}}" href="{{pageURL $.Base $.View.State .Next.Page}}">Next</a>
    <form method="get" action="{{$.Base}}">
      {{with $.View.State.Query}}<input type="hidden" name="q" value="{{.}}">{{end}}
      <select name="size" onchange="this.form.submit()">
        {{range .PageSizes}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
      </select>
      <noscript><button type="submit">Apply</button></noscript>
    </form>
    <span class="summary">{{.Summary}}</span>
  </div>
{{end}}{{end}}
`

const viewTemplate = `
{{define "view"}}{{template "head" .View.Title}}
  <h1>{{.View.Title}}</h1>
  <p><a href="{{.Base}}/analysis">Full table analysis</a></p>
  {{with .Stats}}<div class="stats">
    <div><strong>{{.Total}}</strong> constituencies</div>
    <div><strong>{{.Accurate}}</strong> accurate</div>
    <div><strong>{{.AccuracyPct}}%</strong> accuracy</div>
    <div><strong>{{.Close}}</strong> close contests</div>
  </div>{{end}}
  <form method="get" action="{{.Base}}" class="search">
    <input type="search" name="q" value="{{.View.State.Query}}" placeholder="Search constituencies">
    {{if ne .View.State.PageSize 25}}<input type="hidden" name="size" value="{{.View.State.PageSize}}">{{end}}
    <button type="submit">Search</button>
  </form>
{{template "controls" .}}
  <table>
    <thead><tr>{{range .View.Headers}}<th{{with .Align}} class="text-{{.}}"{{end}}>{{.Title}}</th>{{end}}</tr></thead>
    <tbody>{{template "rows" .View.Rows}}    </tbody>
  </table>
{{template "controls" .}}
  {{if .Charts}}<section class="charts">
    {{range .Charts}}<figure><img src="{{.URL}}" alt="{{.Title}}"><figcaption>{{.Title}}</figcaption></figure>
    {{end}}</section>{{end}}
{{template "foot"}}{{end}}
`

const analysisTemplate = `
{{define "analysis"}}{{template "head" .Table.Title}}
  <h1>{{.Table.Title}}: analysis</h1>
  <p><a href="{{.ViewURL}}">Back to viewer</a></p>
  <table>
    <thead><tr>{{range $i, $h := .Table.Headers}}<th{{with $h.Align}} class="text-{{.}}"{{end}}><a href="{{sortURL $.Base $i}}">{{$h.Title}}</a>{{if eq $.SortBy $i}} {{if $h.Numeric}}▼{{else}}▲{{end}}{{end}}</th>{{end}}</tr></thead>
    <tbody>{{template "rows" .Table.Rows}}    </tbody>
  </table>
{{template "foot"}}{{end}}
`

const indexTemplate = `
{{define "index"}}{{template "head" "States"}}
  <h1>States</h1>
  <nav class="pagination">
    {{range .Filters}}<a class="page-btn{{if .Active}} active{{end}}" href="/?status={{.Status}}">{{.Label}}</a>
    {{end}}</nav>
  {{if .Datasets}}<table>
    <thead><tr><th>State</th><th>Year</th><th>Status</th><th class="text-right">Constituencies</th></tr></thead>
    <tbody>
    {{range .Datasets}}<tr>
      <td><a href="/states/{{.Name}}">{{.Title}}</a></td>
      <td class="text-center">{{if .Year}}{{.Year}}{{else}}-{{end}}</td>
      <td class="text-center">{{.Status}}</td>
      <td class="text-right">{{if .Loaded}}{{.Records}}{{else}}<span class="negative">not loaded</span>{{end}}</td>
    </tr>
    {{end}}</tbody>
  </table>{{else}}<p class="no-data">No states found</p>{{end}}
{{template "foot"}}{{end}}
`
