// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pollscope/catalog"
	"github.com/danielhkuo/pollscope/db"
	"github.com/danielhkuo/pollscope/models"
	"github.com/danielhkuo/pollscope/store"
)

// SampleCatalogYAML has one dataset per source situation: "sample" is a
// file dataset, "missing" points at a file that does not exist and
// "stored" reads from the database.
const SampleCatalogYAML = `
datasets:
  - name: sample
    title: Sample Assembly
    state: Sample
    year: 2024
    status: completed
    source: file:sample.json
    key: constituency
    group_field: district
    search_fields: [constituency, district, party]
    party_tokens:
      - { badge: ysrcp, match: [ysrcp, ysr] }
      - { badge: tdp, match: [tdp] }
      - { badge: sp, match: [sp] }
      - { badge: bsp, match: [bsp] }
    columns:
      - { title: "S.No", kind: serial }
      - { field: district, title: District, group: true }
      - { field: constituency, title: Constituency, align: left }
      - { field: party, title: Party, kind: party }
      - { field: votes, title: Votes, kind: number }
      - { field: share, title: Share, kind: percent }
      - { field: margin, title: Margin, kind: margin, compare_field: actual }
    charts:
      - name: seats
        title: Seats
        slices:
          - { label: YSRCP, value: 3, color: "#1569C7" }
          - { label: TDP, value: 1, color: "#FFD700" }
    stats: { margin_field: margin, comparison_field: actual }

  - name: missing
    title: Missing Assembly
    state: Missing
    status: upcoming
    source: file:missing.json
    columns:
      - { field: constituency, title: Constituency }

  - name: stored
    title: Stored Assembly
    state: Stored
    source: sql
    key: constituency
    search_fields: [constituency]
    columns:
      - { title: "S.No", kind: serial }
      - { field: constituency, title: Constituency }
      - { field: votes, title: Votes, kind: compact }
`

// Parties cycled through by MakeRecords
var sampleParties = []string{"YSRCP", "TDP", "BSP", "Independent"}

// SampleCatalog parses SampleCatalogYAML
func SampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.Parse([]byte(SampleCatalogYAML))
	if err != nil {
		t.Fatalf("Failed to parse sample catalog: %v", err)
	}
	return cat
}

// SampleSpec returns the "sample" dataset spec
func SampleSpec(t *testing.T) catalog.DatasetSpec {
	t.Helper()

	spec, ok := SampleCatalog(t).Lookup("sample")
	if !ok {
		t.Fatal("sample dataset missing from sample catalog")
	}
	return spec
}

// MakeRecords generates n sample records. Districts come in runs of three
// ("District 1" for records 1-3, and so on), votes are 1000*i and margins
// alternate sign. Every fourth record has no actual result.
func MakeRecords(n int) []models.Record {
	records := make([]models.Record, n)
	for i := range records {
		pos := i + 1
		margin := json.Number(fmt.Sprint(pos * 100))
		if pos%2 == 0 {
			margin = json.Number(fmt.Sprint(-pos * 100))
		}

		rec := models.Record{
			"district":     fmt.Sprintf("District %d", i/3+1),
			"constituency": fmt.Sprintf("Constituency %d", pos),
			"party":        sampleParties[i%len(sampleParties)],
			"votes":        json.Number(fmt.Sprint(pos * 1000)),
			"share":        json.Number(fmt.Sprintf("%d.25", 30+i%20)),
			"margin":       margin,
			"actual":       json.Number(fmt.Sprint(pos * 900)),
		}
		if pos%4 == 0 {
			rec["actual"] = models.Placeholder
		}
		records[i] = rec
	}
	return records
}

// SampleFS serves records as sample.json
func SampleFS(t *testing.T, records []models.Record) fstest.MapFS {
	t.Helper()

	raw, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("Failed to encode records: %v", err)
	}
	return fstest.MapFS{"sample.json": &fstest.MapFile{Data: raw}}
}

// SetupTestDB opens a fresh in-memory SQLite database with the schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is its own database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// NewTestStore loads the sample catalog with sampleCount file records and
// storedCount database records. "missing" always fails to load.
func NewTestStore(t *testing.T, sampleCount, storedCount int) *store.Store {
	t.Helper()

	conn := SetupTestDB(t)
	if err := db.ImportRecords(context.Background(), conn, "stored", MakeRecords(storedCount)); err != nil {
		t.Fatalf("Failed to import stored records: %v", err)
	}

	st := store.New(SampleCatalog(t), SampleFS(t, MakeRecords(sampleCount)), conn)
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load store: %v", err)
	}
	return st
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
