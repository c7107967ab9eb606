// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollscope/models"
	"github.com/danielhkuo/pollscope/store"
)

type StatesHandler struct {
	store *store.Store
}

func NewStatesHandler(st *store.Store) *StatesHandler {
	return &StatesHandler{store: st}
}

type statusFilter struct {
	Status string
	Label  string
	Active bool
}

type indexPage struct {
	Filters  []statusFilter
	Datasets []models.DatasetSummary
}

// Index handles GET /?status=
// Lists the states, optionally only completed or upcoming elections
func (h *StatesHandler) Index(w http.ResponseWriter, r *http.Request) {
	status, err := parseStatus(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := indexPage{Datasets: h.store.Summaries(status)}
	for _, f := range []statusFilter{
		{Status: models.StatusAll, Label: "All"},
		{Status: models.StatusCompleted, Label: "Completed"},
		{Status: models.StatusUpcoming, Label: "Upcoming"},
	} {
		f.Active = f.Status == status
		page.Filters = append(page.Filters, f)
	}

	renderHTML(w, http.StatusOK, "index", page)
}
