// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewer

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/pollscope/catalog"
	"github.com/danielhkuo/pollscope/models"
)

var ErrInvalidPageSize = errors.New("page size must be one of 25, 50, 100")

// State is the user-controlled part of a view: the search query and the
// requested page. Transitions return a new State and never modify the
// receiver.
type State struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// PageView is everything needed to draw one page of a dataset
type PageView struct {
	Dataset  string    `json:"dataset"`
	Title    string    `json:"title"`
	State    State     `json:"state"`
	Headers  []Header  `json:"headers"`
	Rows     []Row     `json:"rows"`
	Controls *Controls `json:"controls,omitempty"`
}

// NewState starts on page 1 with the default page size and no query
func NewState() State {
	return State{Page: 1, PageSize: DefaultPageSize}
}

// WithQuery changes the search query. A different query restarts at page 1.
func (s State) WithQuery(q string) State {
	if q != s.Query {
		s.Query = q
		s.Page = 1
	}
	return s
}

// WithPageSize changes the page size and restarts at page 1
func (s State) WithPageSize(n int) (State, error) {
	if !ValidPageSize(n) {
		return s, fmt.Errorf("%w: got %d", ErrInvalidPageSize, n)
	}
	s.PageSize = n
	s.Page = 1
	return s, nil
}

// GoTo requests a page. The request is clamped to the pages that exist
// when the state is rendered.
func (s State) GoTo(page int) State {
	s.Page = max(page, 1)
	return s
}

// Next requests the following page
func (s State) Next() State {
	return s.GoTo(s.Page + 1)
}

// Prev requests the preceding page; on page 1 it stays put
func (s State) Prev() State {
	return s.GoTo(s.Page - 1)
}

// Render runs filter, pagination, row rendering and controls for the
// state. The returned view carries the clamped state.
func (f *Formatter) Render(spec catalog.DatasetSpec, ds models.Dataset, s State) PageView {
	if !ValidPageSize(s.PageSize) {
		s.PageSize = DefaultPageSize
	}

	filtered := Filter(ds.Records, s.Query, spec.SearchFields)
	w := Paginate(len(filtered), s.PageSize, s.Page)
	s.Page = w.Page

	rows := f.RenderRows(spec, PageOf(filtered, w), w.Start)
	if len(rows) == 0 {
		rows = []Row{MessageRow(RowNoData, NoDataMessage, len(spec.Columns))}
	}

	controls := BuildControls(w, s.PageSize)
	return PageView{
		Dataset:  spec.Name,
		Title:    spec.Title,
		State:    s,
		Headers:  Headers(spec),
		Rows:     rows,
		Controls: &controls,
	}
}

// ErrorView is the view of a dataset whose source could not be loaded:
// a single error row in place of the table body and no pagination.
func ErrorView(spec catalog.DatasetSpec, s State) PageView {
	return PageView{
		Dataset: spec.Name,
		Title:   spec.Title,
		State:   s,
		Headers: Headers(spec),
		Rows:    []Row{errorRow(spec)},
	}
}

func errorRow(spec catalog.DatasetSpec) Row {
	return MessageRow(RowError, "Error: "+spec.Title+" data not loaded", len(spec.Columns))
}
