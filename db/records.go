// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/pollscope/models"
)

// LoadRecords returns the records of a dataset in their stored order
func LoadRecords(ctx context.Context, db *sql.DB, dataset string) ([]models.Record, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT payload
		FROM dataset_record
		WHERE dataset = $1
		ORDER BY position
	`, dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		rec, err := decodePayload(payload)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	return records, nil
}

// ImportRecords replaces all stored records of a dataset
func ImportRecords(ctx context.Context, db *sql.DB, dataset string, records []models.Record) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_record WHERE dataset = $1`, dataset); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	for i, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO dataset_record (dataset, position, payload)
			VALUES ($1, $2, $3)
		`, dataset, i, string(payload))
		if err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

func decodePayload(payload string) (models.Record, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()

	var rec models.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return rec, nil
}
