// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewer

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"golang.org/x/text/collate"

	"github.com/danielhkuo/pollscope/catalog"
	"github.com/danielhkuo/pollscope/models"
)

var ErrInvalidColumn = errors.New("invalid sort column")

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

// Table is a complete, unpaginated rendering of a dataset, used by the
// analysis view where rows are reordered by column.
type Table struct {
	Dataset string   `json:"dataset"`
	Title   string   `json:"title"`
	Headers []Header `json:"headers"`
	Rows    []Row    `json:"rows"`
	SortBy  *int     `json:"sort_by,omitempty"`
}

// BuildTable renders every record. Group columns are not collapsed since
// sorting would scatter the groups anyway.
func (f *Formatter) BuildTable(spec catalog.DatasetSpec, ds models.Dataset) Table {
	rows := make([]Row, 0, len(ds.Records))
	for i, rec := range ds.Records {
		rows = append(rows, f.RenderRow(spec, rec, i+1))
	}
	if len(rows) == 0 {
		rows = []Row{MessageRow(RowNoData, NoDataMessage, len(spec.Columns))}
	}

	return Table{
		Dataset: spec.Name,
		Title:   spec.Title,
		Headers: Headers(spec),
		Rows:    rows,
	}
}

// ErrorTable is the table of a dataset whose source could not be loaded
func ErrorTable(spec catalog.DatasetSpec) Table {
	return Table{
		Dataset: spec.Name,
		Title:   spec.Title,
		Headers: Headers(spec),
		Rows:    []Row{errorRow(spec)},
	}
}

// SortTable reorders t.Rows in place by the text of one column.
// Numeric columns sort descending by the number left after stripping
// everything but digits, '.' and '-'; cells without a number go last.
// Other columns sort ascending by locale collation. The sort is stable
// and not toggled, so sorting twice gives the same order.
func (f *Formatter) SortTable(t *Table, column int) error {
	if column < 0 || column >= len(t.Headers) {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}

	if t.Headers[column].Numeric {
		slices.SortStableFunc(t.Rows, func(a, b Row) int {
			an, aok := cellNumber(a, column)
			bn, bok := cellNumber(b, column)
			switch {
			case aok && bok:
				return cmp.Compare(bn, an)
			case aok:
				return -1
			case bok:
				return 1
			}
			return 0
		})
	} else {
		// Collators keep scratch buffers, so one per sort.
		c := collate.New(f.tag)
		slices.SortStableFunc(t.Rows, func(a, b Row) int {
			return c.CompareString(cellText(a, column), cellText(b, column))
		})
	}

	t.SortBy = &column
	return nil
}

func cellText(r Row, column int) string {
	if column >= len(r.Cells) {
		return ""
	}
	return r.Cells[column].Text
}

func cellNumber(r Row, column int) (float64, bool) {
	s := nonNumeric.ReplaceAllString(cellText(r, column), "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
