// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package viewer implements the paginated, filterable constituency table.

Nothing here touches HTTP or HTML. A view is computed from a dataset, its
catalog spec and a State, and comes back as a PageView description that
the handlers render as markup or JSON.

# Pipeline

	records → Filter (query) → Paginate (page, size) → RenderRows → Controls

	f, _ := viewer.NewFormatter("en-IN")
	s := viewer.NewState().WithQuery("patna").GoTo(2)
	view := f.Render(spec, dataset, s)

State transitions (WithQuery, WithPageSize, GoTo, Next, Prev) return a
new State. A query or page size change restarts at page 1; page requests
are clamped to the pages that exist when rendered.

# Rows

Each column kind has a formatter:

  - number: 152000 → "1,52,000" (locale grouping)
  - percent: 67.84 → "67.8%"
  - compact: 145000 → "145K"
  - party: name plus a badge from the dataset's ordered token list
  - margin: "+25,000" / "-3,000" with a positive/negative class

Missing or malformed values render as "-". An empty page renders a single
"No data found" row; a dataset that failed to load renders an error row
(ErrorView).

Group columns (district) are collapsed per page: a district split by a
page boundary shows its header cell again on the next page.

# Analysis table

BuildTable renders all records without pagination and SortTable orders it
by one column: numeric columns descending, text columns ascending by
locale collation.
*/
package viewer
