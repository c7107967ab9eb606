// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pollscope server.

Pollscope publishes constituency level election predictions and results
for Indian state assembly elections. Each state is a dataset described in
a YAML catalog; the server renders it as a searchable, paginated table
with party badges, margin colouring, statistics and pie charts.

# Starting the Server

With no configuration the server uses the built in catalog and data:

	go run .

Or with flags:

	go run . -p 3318 -data-dir ./exports -catalog ./catalog.yaml

# Configuration

All settings are optional:

  - PORT (-p): Server port (default: 3318)
  - CATALOG_PATH (-catalog): Dataset catalog YAML
  - DATA_DIR (-data-dir): Directory of dataset JSON files
  - DATABASE_URL (-d): Database holding sql sourced datasets
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - LOCALE (-locale): Digit grouping locale (default: en-IN)
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Architecture

  - catalog: Dataset catalog (columns, party tokens, charts)
  - store: Loads every dataset once at startup
  - db: SQL record source and schema
  - viewer: Filtering, pagination, row rendering, sorting, statistics
  - charts: SVG pie charts
  - handlers: HTML pages and JSON API
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Shared types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
