// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Pollscope server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, formatter)

# Endpoints

Health:

	GET /health

Pages:

	GET /                         - States index (?status=all|completed|upcoming)
	GET /states/{name}            - Table viewer (?q=&page=&size=)
	GET /states/{name}/analysis   - Full table (?sort=N)

JSON API:

	GET /api/datasets              - Dataset summaries (?status=)
	GET /api/datasets/{name}/page  - One page of the viewer
	GET /api/datasets/{name}/table - Full table (?sort=N)
	GET /api/datasets/{name}/stats - Prediction accuracy

Charts:

	GET /charts/{name}/{chart} - Pie chart as SVG (?size=N)

Every route except /health is wrapped with middleware.WithLogging.
*/
package router
