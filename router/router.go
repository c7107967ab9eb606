// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/pollscope/handlers"
	"github.com/danielhkuo/pollscope/middleware"
	"github.com/danielhkuo/pollscope/store"
	"github.com/danielhkuo/pollscope/viewer"
)

func NewRouter(st *store.Store, f *viewer.Formatter) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	datasetHandler := handlers.NewDatasetHandler(st, f)
	chartHandler := handlers.NewChartHandler(st.Catalog())
	statesHandler := handlers.NewStatesHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Pages
	mux.HandleFunc("GET /{$}", middleware.WithLogging(statesHandler.Index))
	mux.HandleFunc("GET /states/{name}", middleware.WithLogging(datasetHandler.View))
	mux.HandleFunc("GET /states/{name}/analysis", middleware.WithLogging(datasetHandler.Analysis))

	// JSON API
	mux.HandleFunc("GET /api/datasets", middleware.WithLogging(datasetHandler.List))
	mux.HandleFunc("GET /api/datasets/{name}/page", middleware.WithLogging(datasetHandler.Page))
	mux.HandleFunc("GET /api/datasets/{name}/table", middleware.WithLogging(datasetHandler.Table))
	mux.HandleFunc("GET /api/datasets/{name}/stats", middleware.WithLogging(datasetHandler.Stats))

	// Charts
	mux.HandleFunc("GET /charts/{name}/{chart}", middleware.WithLogging(chartHandler.Get))

	return mux
}
