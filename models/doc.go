// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the shared domain and response types.

# Domain Types

  - Record: one constituency row, a flat field → value map
  - Dataset: the ordered records of one state, immutable after load

Record values come straight from the source JSON or SQL payload. Numbers
are kept as json.Number so large vote counts are not rounded, and absent
values are either missing keys, nil, or the placeholder "-".

# Response Types

  - DatasetSummary: catalog entry plus load status
  - ListDatasetsResponse: GET /api/datasets
  - ErrorResponse: error, message

# Constants

Dataset status values, used by the states index filter:

	StatusCompleted = "completed"
	StatusUpcoming  = "upcoming"
	StatusAll       = "all"

Placeholder for missing values:

	Placeholder = "-"
*/
package models
