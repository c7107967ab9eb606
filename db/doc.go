// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides the optional SQL record source.

Datasets whose catalog entry says `source: sql` are read from a single
table instead of a JSON file. SQLite (modernc.org/sqlite) and PostgreSQL
(lib/pq) are both supported; the schema only uses types they share.

# Schema

	dataset_record: dataset, position, payload (JSON object as TEXT)

Records are returned ordered by position, which preserves the order of
the original export.

# Usage

	conn, _ := sql.Open("sqlite", "file:pollscope.db")
	db.CreateSchema(conn)
	db.ImportRecords(ctx, conn, "bihar", records)
	records, err := db.LoadRecords(ctx, conn, "bihar")

The server fills the table at startup with -import dataset=file.

Payload numbers are decoded as json.Number, matching the file source.
*/
package db
