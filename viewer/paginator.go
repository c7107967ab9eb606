// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewer

import "slices"

// DefaultPageSize is the page size a fresh view starts with
const DefaultPageSize = 25

// PageSizes lists the selectable page sizes, in selector order
var PageSizes = []int{25, 50, 100}

// Window is one page of a record set. Start and End are 0-based slice
// bounds (End exclusive); Page and TotalPages are 1-based.
type Window struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Start      int `json:"start"`
	End        int `json:"end"`
	Total      int `json:"total"`
}

// ValidPageSize reports whether n is one of PageSizes
func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// Paginate computes the window for the requested page. There is always at
// least one page, and requested is clamped into [1, TotalPages].
func Paginate(total, pageSize, requested int) Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := min(max(requested, 1), totalPages)
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	return Window{
		Page:       page,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
		Total:      total,
	}
}

// HasPrevious reports whether a page exists before this one
func (w Window) HasPrevious() bool {
	return w.Page > 1
}

// HasNext reports whether a page exists after this one
func (w Window) HasNext() bool {
	return w.Page < w.TotalPages
}

// PageOf returns the items inside w
func PageOf[T any](items []T, w Window) []T {
	return items[w.Start:w.End]
}
