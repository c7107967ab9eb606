// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pollscope/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, CreateSchema(conn))
	return conn
}

func TestDriverName(t *testing.T) {
	testCases := []struct {
		dbType   string
		expected string
		wantErr  bool
	}{
		{TypeSQLite, "sqlite", false},
		{TypePostgres, "postgres", false},
		{"mysql", "", true},
		{"", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.dbType, func(t *testing.T) {
			driver, err := DriverName(tc.dbType)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, driver)
		})
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := openTestDB(t)

	assert.NoError(t, CreateSchema(conn))
}

func TestImportAndLoadRecords(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	records := []models.Record{
		{"constituency": "Patna Sahib", "expectedVotes": json.Number("145000"), "runnerUpParty": "RJD"},
		{"constituency": "Gaya Town", "expectedVotes": json.Number("98000.5"), "runnerUpParty": nil},
		{"constituency": "Kishanganj", "winningMargin": "-"},
	}
	require.NoError(t, ImportRecords(ctx, conn, "bihar", records))
	require.NoError(t, ImportRecords(ctx, conn, "goa", records[:1]))

	got, err := LoadRecords(ctx, conn, "bihar")
	require.NoError(t, err)

	// order and json.Number values survive the round trip
	assert.Equal(t, records, got)

	goa, err := LoadRecords(ctx, conn, "goa")
	require.NoError(t, err)
	assert.Len(t, goa, 1)
}

func TestImportRecords_Replaces(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	require.NoError(t, ImportRecords(ctx, conn, "bihar", []models.Record{{"n": "1"}, {"n": "2"}, {"n": "3"}}))
	require.NoError(t, ImportRecords(ctx, conn, "bihar", []models.Record{{"n": "4"}}))

	got, err := LoadRecords(ctx, conn, "bihar")
	require.NoError(t, err)
	assert.Equal(t, []models.Record{{"n": "4"}}, got)
}

func TestLoadRecords_Unknown(t *testing.T) {
	got, err := LoadRecords(context.Background(), openTestDB(t), "kerala")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadRecords_BadPayload(t *testing.T) {
	conn := openTestDB(t)
	_, err := conn.Exec(`INSERT INTO dataset_record (dataset, position, payload) VALUES ($1, $2, $3)`, "bihar", 0, "{not json")
	require.NoError(t, err)

	_, err = LoadRecords(context.Background(), conn, "bihar")
	assert.Error(t, err)
}
