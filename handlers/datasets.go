// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollscope/catalog"
	"github.com/danielhkuo/pollscope/middleware"
	"github.com/danielhkuo/pollscope/models"
	"github.com/danielhkuo/pollscope/store"
	"github.com/danielhkuo/pollscope/viewer"
)

type DatasetHandler struct {
	store     *store.Store
	formatter *viewer.Formatter
}

func NewDatasetHandler(st *store.Store, f *viewer.Formatter) *DatasetHandler {
	return &DatasetHandler{store: st, formatter: f}
}

type chartLink struct {
	Title string
	URL   string
}

type viewPage struct {
	Base   string
	View   viewer.PageView
	Stats  *viewer.Stats
	Charts []chartLink
}

type analysisPage struct {
	Base    string
	ViewURL string
	Table   viewer.Table
	SortBy  int
}

// StatsResponse is the body of GET /api/datasets/{name}/stats
type StatsResponse struct {
	Dataset string       `json:"dataset"`
	Stats   viewer.Stats `json:"stats"`
}

// lookup resolves the dataset in the path. loaded is false when the
// dataset is in the catalog but its source could not be read; the error
// row is shown in that case. For unknown datasets the 404 has already
// been written.
func (h *DatasetHandler) lookup(w http.ResponseWriter, r *http.Request, asJSON bool) (spec catalog.DatasetSpec, ds models.Dataset, loaded, found bool) {
	name := r.PathValue("name")

	spec, ds, err := h.store.Get(name)
	switch {
	case err == nil:
		return spec, ds, true, true
	case errors.Is(err, store.ErrDataSourceMissing):
		slog.Warn("serving dataset without data", "dataset", name, "error", err)
		return spec, ds, false, true
	}

	if asJSON {
		middleware.ErrorResponse(w, http.StatusNotFound, "Dataset not found")
	} else {
		http.NotFound(w, r)
	}
	return spec, ds, false, false
}

// View handles GET /states/{name}
// Renders one page of the constituency table as HTML
func (h *DatasetHandler) View(w http.ResponseWriter, r *http.Request) {
	state, err := parseViewState(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	spec, ds, loaded, found := h.lookup(w, r, false)
	if !found {
		return
	}

	page := viewPage{Base: "/states/" + spec.Name}
	if loaded {
		page.View = h.formatter.Render(spec, ds, state)
		if stats, ok := viewer.ComputeStats(spec, ds.Records); ok {
			page.Stats = &stats
		}
	} else {
		page.View = viewer.ErrorView(spec, state)
	}
	for _, c := range spec.Charts {
		page.Charts = append(page.Charts, chartLink{
			Title: c.Title,
			URL:   "/charts/" + spec.Name + "/" + c.Name,
		})
	}

	renderHTML(w, http.StatusOK, "view", page)
}

// Analysis handles GET /states/{name}/analysis?sort=N
// Renders every record in one table, optionally sorted by a column
func (h *DatasetHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	column, sorted, err := parseSort(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	spec, ds, loaded, found := h.lookup(w, r, false)
	if !found {
		return
	}

	table, err := h.table(spec, ds, loaded, column, sorted)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := analysisPage{
		Base:    "/states/" + spec.Name + "/analysis",
		ViewURL: "/states/" + spec.Name,
		Table:   table,
		SortBy:  -1,
	}
	if table.SortBy != nil {
		page.SortBy = *table.SortBy
	}

	renderHTML(w, http.StatusOK, "analysis", page)
}

// table builds the full table, sorted when asked. A dataset that failed
// to load gets the error row and ignores sorting.
func (h *DatasetHandler) table(spec catalog.DatasetSpec, ds models.Dataset, loaded bool, column int, sorted bool) (viewer.Table, error) {
	if !loaded {
		return viewer.ErrorTable(spec), nil
	}

	table := h.formatter.BuildTable(spec, ds)
	if sorted {
		if err := h.formatter.SortTable(&table, column); err != nil {
			return viewer.Table{}, err
		}
	}
	return table, nil
}

// List handles GET /api/datasets?status=
// Returns the catalog with load status
func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	status, err := parseStatus(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListDatasetsResponse{
		Datasets: h.store.Summaries(status),
	})
}

// Page handles GET /api/datasets/{name}/page?q=&page=&size=
// Returns the same page description the HTML viewer draws
func (h *DatasetHandler) Page(w http.ResponseWriter, r *http.Request) {
	state, err := parseViewState(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	spec, ds, loaded, found := h.lookup(w, r, true)
	if !found {
		return
	}

	if !loaded {
		middleware.JSONResponse(w, http.StatusOK, viewer.ErrorView(spec, state))
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.formatter.Render(spec, ds, state))
}

// Table handles GET /api/datasets/{name}/table?sort=N
func (h *DatasetHandler) Table(w http.ResponseWriter, r *http.Request) {
	column, sorted, err := parseSort(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	spec, ds, loaded, found := h.lookup(w, r, true)
	if !found {
		return
	}

	table, err := h.table(spec, ds, loaded, column, sorted)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, table)
}

// Stats handles GET /api/datasets/{name}/stats
// 404 if the dataset has no statistics configured, 503 if its data is missing
func (h *DatasetHandler) Stats(w http.ResponseWriter, r *http.Request) {
	spec, ds, loaded, found := h.lookup(w, r, true)
	if !found {
		return
	}

	if spec.Stats == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No statistics for dataset")
		return
	}
	if !loaded {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, spec.Title+" data not loaded")
		return
	}

	stats, _ := viewer.ComputeStats(spec, ds.Records)
	middleware.JSONResponse(w, http.StatusOK, StatsResponse{Dataset: spec.Name, Stats: stats})
}
