// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewer

import (
	"strconv"
	"strings"

	"github.com/danielhkuo/pollscope/catalog"
	"github.com/danielhkuo/pollscope/models"
)

// Row kinds. Message rows replace the whole table body.
const (
	RowData   = ""
	RowNoData = "no-data"
	RowError  = "error"
)

// NoDataMessage is shown when a filter or dataset leaves nothing to display
const NoDataMessage = "No data found"

type Cell struct {
	Text  string `json:"text"`
	Class string `json:"class,omitempty"`
	Badge string `json:"badge,omitempty"`
	Align string `json:"align,omitempty"`

	// RowSpan is set on the first cell of a collapsed group; Omitted marks
	// the cells it covers.
	RowSpan int  `json:"row_span,omitempty"`
	Omitted bool `json:"omitted,omitempty"`
}

type Row struct {
	Kind    string `json:"kind,omitempty"`
	Key     string `json:"key,omitempty"`
	Cells   []Cell `json:"cells,omitempty"`
	Message string `json:"message,omitempty"`
	ColSpan int    `json:"col_span,omitempty"`
}

type Header struct {
	Title   string `json:"title"`
	Align   string `json:"align,omitempty"`
	Numeric bool   `json:"numeric"`
}

// Headers describes the table head for a dataset
func Headers(spec catalog.DatasetSpec) []Header {
	headers := make([]Header, len(spec.Columns))
	for i, col := range spec.Columns {
		headers[i] = Header{Title: col.Title, Align: col.Align, Numeric: col.Numeric()}
	}
	return headers
}

// MessageRow builds a row that spans the whole table
func MessageRow(kind, message string, colSpan int) Row {
	return Row{Kind: kind, Message: message, ColSpan: colSpan}
}

// RenderRows renders one page of records. offset is the index of the
// first record within the filtered set and numbers serial cells.
//
// Group columns are collapsed within this page only: a district that
// continues on the next page starts a new group there, header cells and all.
func (f *Formatter) RenderRows(spec catalog.DatasetSpec, records []models.Record, offset int) []Row {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		rows = append(rows, f.RenderRow(spec, rec, offset+i+1))
	}
	collapseGroups(spec, records, rows)
	return rows
}

// RenderRow maps one record through the column schema
func (f *Formatter) RenderRow(spec catalog.DatasetSpec, rec models.Record, serial int) Row {
	cells := make([]Cell, len(spec.Columns))
	for i, col := range spec.Columns {
		cell := f.renderCell(spec, col, rec, serial)
		cell.Align = col.Align
		cells[i] = cell
	}

	key, _ := textOf(rec[spec.Key])
	return Row{Key: key, Cells: cells}
}

func (f *Formatter) renderCell(spec catalog.DatasetSpec, col catalog.Column, rec models.Record, serial int) Cell {
	v := rec[col.Field]

	switch col.Kind {
	case catalog.KindSerial:
		if present(v) {
			s, _ := textOf(v)
			return Cell{Text: strings.TrimSpace(s)}
		}
		return Cell{Text: strconv.Itoa(serial)}
	case catalog.KindNumber:
		return Cell{Text: f.FormatNumber(v)}
	case catalog.KindCompact:
		return Cell{Text: f.FormatCompact(v)}
	case catalog.KindPercent:
		return Cell{Text: f.FormatPercentage(v)}
	case catalog.KindParty:
		return Cell{Text: PartyName(v), Badge: ClassifyParty(v, spec.PartyTokens)}
	case catalog.KindMargin:
		return f.FormatMargin(v, rec[col.CompareField])
	default:
		if !present(v) {
			return Cell{Text: models.Placeholder}
		}
		s, _ := textOf(v)
		return Cell{Text: strings.TrimSpace(s)}
	}
}

// collapseGroups merges the group cells of consecutive records that share
// a group key. Records without a key never merge.
func collapseGroups(spec catalog.DatasetSpec, records []models.Record, rows []Row) {
	if spec.GroupField == "" {
		return
	}

	var groupCols []int
	for i, col := range spec.Columns {
		if col.Group {
			groupCols = append(groupCols, i)
		}
	}
	if len(groupCols) == 0 {
		return
	}

	for start := 0; start < len(records); {
		end := start + 1
		if key, ok := groupKey(records[start], spec.GroupField); ok {
			for end < len(records) {
				next, ok := groupKey(records[end], spec.GroupField)
				if !ok || next != key {
					break
				}
				end++
			}
		}

		for _, c := range groupCols {
			rows[start].Cells[c].RowSpan = end - start
			for j := start + 1; j < end; j++ {
				rows[j].Cells[c].Omitted = true
			}
		}
		start = end
	}
}

func groupKey(rec models.Record, field string) (string, bool) {
	if !present(rec[field]) {
		return "", false
	}
	s, _ := textOf(rec[field])
	return strings.TrimSpace(s), true
}
