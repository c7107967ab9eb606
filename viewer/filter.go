// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewer

import (
	"strings"

	"github.com/danielhkuo/pollscope/models"
)

// Filter returns the records whose search fields contain query,
// case-insensitively, in their original order. A blank query returns
// records itself. The input slice is never modified.
func Filter(records []models.Record, query string, fields []string) []models.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	out := []models.Record{}
	for _, rec := range records {
		if matchesSearch(rec, q, fields) {
			out = append(out, rec)
		}
	}
	return out
}

// matchesSearch expects q already lowercased
func matchesSearch(rec models.Record, q string, fields []string) bool {
	for _, field := range fields {
		s, ok := textOf(rec[field])
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
