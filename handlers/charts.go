// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/pollscope/catalog"
	"github.com/danielhkuo/pollscope/charts"
	"github.com/danielhkuo/pollscope/middleware"
)

// Chart drawing bounds, in pixels
const (
	defaultChartSize = 400
	minChartSize     = 100
	maxChartSize     = 1200
)

type ChartHandler struct {
	catalog *catalog.Catalog
}

func NewChartHandler(cat *catalog.Catalog) *ChartHandler {
	return &ChartHandler{catalog: cat}
}

// Get handles GET /charts/{name}/{chart}?size=N
// Returns the pie chart as SVG. Charts come from the catalog, so they are
// served even when the dataset's records are missing.
func (h *ChartHandler) Get(w http.ResponseWriter, r *http.Request) {
	size := defaultChartSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < minChartSize || n > maxChartSize {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("size must be between %d and %d", minChartSize, maxChartSize))
			return
		}
		size = n
	}

	spec, ok := h.catalog.Lookup(r.PathValue("name"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Dataset not found")
		return
	}
	chart, ok := spec.Chart(r.PathValue("chart"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Chart not found")
		return
	}

	svg := charts.FromCatalog(chart).SVG(spec.Name+"-"+chart.Name, size, size)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(svg)); err != nil {
		slog.Error("failed to write chart", "dataset", spec.Name, "chart", chart.Name, "error", err)
	}
}
