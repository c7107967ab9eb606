// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Pollscope server.

# Handler Types

  - DatasetHandler: Table viewer pages and the JSON API
  - ChartHandler: Pie chart SVGs from the catalog
  - StatesHandler: States index with status filter

Handlers are created via constructor functions:

	datasetHandler := handlers.NewDatasetHandler(st, formatter)

# Viewer Parameters

	q     search text, matched against the dataset's search fields
	page  1-based page, clamped to the last page
	size  25, 50 or 100

A page or size that is not a valid number gives 400. So does a sort
column outside the table.

# Missing Data

A dataset whose source could not be read is still served: HTML pages and
the page/table API show a single error row in place of the records. The
stats API answers 503 for it. Datasets not in the catalog give 404.

# Templates

Pages are html/template definitions in templates.go, parsed once at
startup. Pagination controls are drawn above and below the table from the
same viewer.Controls.
*/
package handlers
