// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollscope/models"
	"github.com/danielhkuo/pollscope/testutil"
	"github.com/danielhkuo/pollscope/viewer"
)

// newTestMux wires the handlers the way the router does, over 30 sample
// records and 5 stored ones
func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	st := testutil.NewTestStore(t, 30, 5)
	f, err := viewer.NewFormatter("en-IN")
	require.NoError(t, err)

	datasetHandler := NewDatasetHandler(st, f)
	chartHandler := NewChartHandler(st.Catalog())
	statesHandler := NewStatesHandler(st)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", statesHandler.Index)
	mux.HandleFunc("GET /states/{name}", datasetHandler.View)
	mux.HandleFunc("GET /states/{name}/analysis", datasetHandler.Analysis)
	mux.HandleFunc("GET /api/datasets", datasetHandler.List)
	mux.HandleFunc("GET /api/datasets/{name}/page", datasetHandler.Page)
	mux.HandleFunc("GET /api/datasets/{name}/table", datasetHandler.Table)
	mux.HandleFunc("GET /api/datasets/{name}/stats", datasetHandler.Stats)
	mux.HandleFunc("GET /charts/{name}/{chart}", chartHandler.Get)
	return mux
}

func get(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", path, nil))
	return w
}

func TestPage(t *testing.T) {
	mux := newTestMux(t)

	testCases := []struct {
		name        string
		path        string
		page        int
		rows        int
		summary     string
		prevEnabled bool
		nextEnabled bool
	}{
		{"first page", "/api/datasets/sample/page", 1, 25, "1-25 of 30", false, true},
		{"last page", "/api/datasets/sample/page?page=2", 2, 5, "26-30 of 30", true, false},
		{"page past the end is clamped", "/api/datasets/sample/page?page=9", 2, 5, "26-30 of 30", true, false},
		{"larger page size", "/api/datasets/sample/page?size=50", 1, 30, "1-30 of 30", false, false},
		{"search", "/api/datasets/sample/page?q=Constituency+1", 1, 11, "1-11 of 11", false, false},
		{"search is case-insensitive", "/api/datasets/sample/page?q=ysr", 1, 8, "1-8 of 8", false, false},
		{"sql source", "/api/datasets/stored/page", 1, 5, "1-5 of 5", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(t, mux, tc.path)
			testutil.AssertStatus(t, w, http.StatusOK)

			var view viewer.PageView
			testutil.AssertJSON(t, w, &view)

			assert.Equal(t, tc.page, view.State.Page)
			assert.Len(t, view.Rows, tc.rows)
			require.NotNil(t, view.Controls)
			assert.Equal(t, tc.summary, view.Controls.Summary)
			assert.Equal(t, !tc.prevEnabled, view.Controls.Prev.Disabled)
			assert.Equal(t, !tc.nextEnabled, view.Controls.Next.Disabled)
		})
	}
}

func TestPage_NoMatches(t *testing.T) {
	mux := newTestMux(t)

	w := get(t, mux, "/api/datasets/sample/page?q=zzz")
	testutil.AssertStatus(t, w, http.StatusOK)

	var view viewer.PageView
	testutil.AssertJSON(t, w, &view)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, viewer.RowNoData, view.Rows[0].Kind)
	assert.Equal(t, viewer.NoDataMessage, view.Rows[0].Message)
	assert.Equal(t, 7, view.Rows[0].ColSpan)
	assert.Equal(t, "0-0 of 0", view.Controls.Summary)
}

func TestPage_MissingSource(t *testing.T) {
	mux := newTestMux(t)

	w := get(t, mux, "/api/datasets/missing/page")
	testutil.AssertStatus(t, w, http.StatusOK)

	var view viewer.PageView
	testutil.AssertJSON(t, w, &view)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, viewer.RowError, view.Rows[0].Kind)
	assert.Equal(t, "Error: Missing Assembly data not loaded", view.Rows[0].Message)
	assert.Nil(t, view.Controls)
}

func TestPage_BadParameters(t *testing.T) {
	mux := newTestMux(t)

	for _, path := range []string{
		"/api/datasets/sample/page?page=0",
		"/api/datasets/sample/page?page=-3",
		"/api/datasets/sample/page?page=two",
		"/api/datasets/sample/page?size=10",
		"/api/datasets/sample/page?size=all",
	} {
		t.Run(path, func(t *testing.T) {
			w := get(t, mux, path)
			testutil.AssertStatus(t, w, http.StatusBadRequest)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, "Bad Request", resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestPage_UnknownDataset(t *testing.T) {
	mux := newTestMux(t)

	w := get(t, mux, "/api/datasets/kerala/page")
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestTable(t *testing.T) {
	mux := newTestMux(t)

	t.Run("unsorted keeps source order", func(t *testing.T) {
		w := get(t, mux, "/api/datasets/sample/table")
		testutil.AssertStatus(t, w, http.StatusOK)

		var table viewer.Table
		testutil.AssertJSON(t, w, &table)

		require.Len(t, table.Rows, 30)
		assert.Nil(t, table.SortBy)
		assert.Equal(t, "Constituency 1", table.Rows[0].Cells[2].Text)
	})

	t.Run("numeric column sorts descending", func(t *testing.T) {
		w := get(t, mux, "/api/datasets/sample/table?sort=4")
		testutil.AssertStatus(t, w, http.StatusOK)

		var table viewer.Table
		testutil.AssertJSON(t, w, &table)

		require.NotNil(t, table.SortBy)
		assert.Equal(t, 4, *table.SortBy)
		assert.Equal(t, "Constituency 30", table.Rows[0].Cells[2].Text)
		assert.Equal(t, "30,000", table.Rows[0].Cells[4].Text)
		assert.Equal(t, "Constituency 1", table.Rows[29].Cells[2].Text)
	})

	t.Run("column out of range", func(t *testing.T) {
		w := get(t, mux, "/api/datasets/sample/table?sort=7")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("sort is not a number", func(t *testing.T) {
		w := get(t, mux, "/api/datasets/sample/table?sort=votes")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("missing source ignores sort", func(t *testing.T) {
		w := get(t, mux, "/api/datasets/missing/table?sort=0")
		testutil.AssertStatus(t, w, http.StatusOK)

		var table viewer.Table
		testutil.AssertJSON(t, w, &table)

		require.Len(t, table.Rows, 1)
		assert.Equal(t, viewer.RowError, table.Rows[0].Kind)
	})
}

func TestStats(t *testing.T) {
	mux := newTestMux(t)

	t.Run("computed from margins", func(t *testing.T) {
		w := get(t, mux, "/api/datasets/sample/stats")
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp StatsResponse
		testutil.AssertJSON(t, w, &resp)

		assert.Equal(t, "sample", resp.Dataset)
		assert.Equal(t, 30, resp.Stats.Total)
		// every fourth record has no actual result
		assert.Equal(t, 23, resp.Stats.WithResults)
		assert.Equal(t, 30, resp.Stats.Accurate)
		assert.Equal(t, 10, resp.Stats.Close)
		assert.InDelta(t, 100.0, resp.Stats.AccuracyPct, 0.001)
	})

	t.Run("dataset without stats", func(t *testing.T) {
		w := get(t, mux, "/api/datasets/stored/stats")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		w := get(t, mux, "/api/datasets/kerala/stats")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestList(t *testing.T) {
	mux := newTestMux(t)

	testCases := []struct {
		name     string
		query    string
		expected []string
	}{
		{"all by default", "", []string{"sample", "missing", "stored"}},
		{"all", "?status=all", []string{"sample", "missing", "stored"}},
		{"completed", "?status=completed", []string{"sample", "stored"}},
		{"upcoming", "?status=upcoming", []string{"missing"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(t, mux, "/api/datasets"+tc.query)
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.ListDatasetsResponse
			testutil.AssertJSON(t, w, &resp)

			names := make([]string, len(resp.Datasets))
			for i, d := range resp.Datasets {
				names[i] = d.Name
			}
			assert.Equal(t, tc.expected, names)
		})
	}

	t.Run("load status", func(t *testing.T) {
		w := get(t, mux, "/api/datasets")

		var resp models.ListDatasetsResponse
		testutil.AssertJSON(t, w, &resp)
		require.Len(t, resp.Datasets, 3)

		assert.True(t, resp.Datasets[0].Loaded)
		assert.Equal(t, 30, resp.Datasets[0].Records)
		assert.False(t, resp.Datasets[1].Loaded)
		assert.NotEmpty(t, resp.Datasets[1].LoadNote)
		assert.Equal(t, 5, resp.Datasets[2].Records)
	})

	t.Run("invalid status", func(t *testing.T) {
		w := get(t, mux, "/api/datasets?status=ongoing")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestView(t *testing.T) {
	mux := newTestMux(t)

	t.Run("first page", func(t *testing.T) {
		w := get(t, mux, "/states/sample")
		testutil.AssertStatus(t, w, http.StatusOK)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

		body := w.Body.String()
		assert.Contains(t, body, "<h1>Sample Assembly</h1>")
		// controls are drawn above and below the table
		assert.Equal(t, 2, strings.Count(body, "1-25 of 30"))
		assert.Contains(t, body, `rowspan="3"`)
		assert.Contains(t, body, `<span class="party-badge party-ysrcp">YSRCP</span>`)
		// html/template writes "+" as &#43; in text; browsers show "+100"
		assert.Contains(t, body, `<span class="positive">&#43;100</span>`)
		assert.Contains(t, body, `<span class="negative">-200</span>`)
		assert.NotContains(t, body, `<span class="negative">&#43;`)
		assert.Contains(t, body, `href="/states/sample?page=2"`)
		assert.Contains(t, body, `src="/charts/sample/seats"`)
		assert.Contains(t, body, "close contests")
	})

	t.Run("search keeps the query in links", func(t *testing.T) {
		w := get(t, mux, "/states/sample?q=District&size=25")
		testutil.AssertStatus(t, w, http.StatusOK)

		assert.Contains(t, w.Body.String(), `href="/states/sample?page=2&amp;q=District"`)
	})

	t.Run("no matches", func(t *testing.T) {
		w := get(t, mux, "/states/sample?q=zzz")
		testutil.AssertStatus(t, w, http.StatusOK)

		body := w.Body.String()
		assert.Contains(t, body, `<tr class="no-data"><td colspan="7">No data found</td></tr>`)
		assert.Contains(t, body, "0-0 of 0")
	})

	t.Run("missing source", func(t *testing.T) {
		w := get(t, mux, "/states/missing")
		testutil.AssertStatus(t, w, http.StatusOK)

		body := w.Body.String()
		assert.Contains(t, body, `<tr class="error-row"><td colspan="1">Error: Missing Assembly data not loaded</td></tr>`)
		assert.NotContains(t, body, `class="pagination"`)
	})

	t.Run("bad page size", func(t *testing.T) {
		w := get(t, mux, "/states/sample?size=7")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		w := get(t, mux, "/states/kerala")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestAnalysis(t *testing.T) {
	mux := newTestMux(t)

	t.Run("sorted by votes", func(t *testing.T) {
		w := get(t, mux, "/states/sample/analysis?sort=4")
		testutil.AssertStatus(t, w, http.StatusOK)

		body := w.Body.String()
		assert.Contains(t, body, `href="/states/sample/analysis?sort=4">Votes</a> ▼`)
		first := strings.Index(body, "Constituency 30")
		last := strings.Index(body, "Constituency 1<")
		require.NotEqual(t, -1, first)
		require.NotEqual(t, -1, last)
		assert.Less(t, first, last)
		assert.NotContains(t, body, "rowspan")
	})

	t.Run("bad sort", func(t *testing.T) {
		w := get(t, mux, "/states/sample/analysis?sort=-1")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestStatesIndex(t *testing.T) {
	mux := newTestMux(t)

	t.Run("all states", func(t *testing.T) {
		w := get(t, mux, "/")
		testutil.AssertStatus(t, w, http.StatusOK)

		body := w.Body.String()
		assert.Contains(t, body, `<a href="/states/sample">Sample Assembly</a>`)
		assert.Contains(t, body, `<a href="/states/missing">Missing Assembly</a>`)
		assert.Contains(t, body, "not loaded")
	})

	t.Run("upcoming only", func(t *testing.T) {
		w := get(t, mux, "/?status=upcoming")
		testutil.AssertStatus(t, w, http.StatusOK)

		body := w.Body.String()
		assert.Contains(t, body, "Missing Assembly")
		assert.NotContains(t, body, "Sample Assembly")
		assert.Contains(t, body, `class="page-btn active" href="/?status=upcoming"`)
	})

	t.Run("bad status", func(t *testing.T) {
		w := get(t, mux, "/?status=soon")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestChart(t *testing.T) {
	mux := newTestMux(t)

	t.Run("svg", func(t *testing.T) {
		w := get(t, mux, "/charts/sample/seats")
		testutil.AssertStatus(t, w, http.StatusOK)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))

		body := w.Body.String()
		assert.True(t, strings.HasPrefix(body, "<svg"))
		assert.Contains(t, body, `id="sample-seats-g0"`)
		assert.Contains(t, body, `width="400"`)
	})

	t.Run("custom size", func(t *testing.T) {
		w := get(t, mux, "/charts/sample/seats?size=200")
		testutil.AssertStatus(t, w, http.StatusOK)
		assert.Contains(t, w.Body.String(), `width="200"`)
	})

	t.Run("unknown chart", func(t *testing.T) {
		w := get(t, mux, "/charts/missing/seats")
		testutil.AssertStatus(t, w, http.StatusNotFound)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, "Chart not found", resp.Message)
	})

	for _, path := range []string{"/charts/sample/seats?size=10", "/charts/sample/seats?size=big"} {
		t.Run(path, func(t *testing.T) {
			w := get(t, mux, path)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	t.Run("unknown dataset", func(t *testing.T) {
		w := get(t, mux, "/charts/kerala/seats")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
