// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewer

import "fmt"

// pageRadius is how many page numbers are shown on each side of the current one
const pageRadius = 2

type NavLink struct {
	Page     int  `json:"page"`
	Disabled bool `json:"disabled"`
}

// PageLink is a numbered page button, or an ellipsis gap when Ellipsis is set
type PageLink struct {
	Page     int  `json:"page,omitempty"`
	Active   bool `json:"active,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

type SizeOption struct {
	Value    int  `json:"value"`
	Selected bool `json:"selected"`
}

type Controls struct {
	Prev      NavLink      `json:"prev"`
	Next      NavLink      `json:"next"`
	Pages     []PageLink   `json:"pages"`
	PageSizes []SizeOption `json:"page_sizes"`
	Summary   string       `json:"summary"`
}

// BuildControls describes the pagination bar for a window. The same
// description is rendered above and below the table.
func BuildControls(w Window, pageSize int) Controls {
	return Controls{
		Prev:      NavLink{Page: max(w.Page-1, 1), Disabled: !w.HasPrevious()},
		Next:      NavLink{Page: min(w.Page+1, w.TotalPages), Disabled: !w.HasNext()},
		Pages:     pageLinks(w.Page, w.TotalPages),
		PageSizes: sizeOptions(pageSize),
		Summary:   Summary(w),
	}
}

// pageLinks shows current ± pageRadius, always keeping the first and last
// page, with an ellipsis wherever numbers are skipped.
func pageLinks(current, total int) []PageLink {
	start := max(1, current-pageRadius)
	end := min(total, current+pageRadius)

	var links []PageLink
	if start > 1 {
		links = append(links, PageLink{Page: 1})
		if start > 2 {
			links = append(links, PageLink{Ellipsis: true})
		}
	}

	for p := start; p <= end; p++ {
		links = append(links, PageLink{Page: p, Active: p == current})
	}

	if end < total {
		if end < total-1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Page: total})
	}
	return links
}

func sizeOptions(pageSize int) []SizeOption {
	opts := make([]SizeOption, len(PageSizes))
	for i, size := range PageSizes {
		opts[i] = SizeOption{Value: size, Selected: size == pageSize}
	}
	return opts
}

// Summary renders "start-end of total" with 1-based inclusive bounds
func Summary(w Window) string {
	if w.Total == 0 {
		return "0-0 of 0"
	}
	return fmt.Sprintf("%d-%d of %d", w.Start+1, w.End, w.Total)
}
