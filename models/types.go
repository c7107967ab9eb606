// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Dataset status constants
const (
	StatusCompleted = "completed"
	StatusUpcoming  = "upcoming"
	StatusAll       = "all"
)

// Placeholder is shown for absent or malformed values
const Placeholder = "-"

// Domain types

// Record is one constituency row as it appears in the source.
// Values are strings, json.Number, nil, or the "-" placeholder.
type Record map[string]any

type Dataset struct {
	Name    string
	Records []Record
}

// Response types

type DatasetSummary struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	State    string `json:"state"`
	Year     int    `json:"year,omitempty"`
	Status   string `json:"status"`
	Records  int    `json:"records"`
	Loaded   bool   `json:"loaded"`
	LoadNote string `json:"load_note,omitempty"`
}

type ListDatasetsResponse struct {
	Datasets []DatasetSummary `json:"datasets"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
