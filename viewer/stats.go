// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewer

import (
	"math"

	"github.com/danielhkuo/pollscope/catalog"
	"github.com/danielhkuo/pollscope/models"
)

// Margin thresholds, in votes
const (
	AccurateMargin = 5000
	CloseMargin    = 1000
)

type Stats struct {
	Total       int     `json:"total"`
	WithResults int     `json:"with_results"`
	Accurate    int     `json:"accurate"`
	Close       int     `json:"close"`
	AccuracyPct float64 `json:"accuracy_pct"`
}

// ComputeStats summarises prediction accuracy over all records.
// Thresholds are inclusive and a margin of exactly 0 is a hit, so it counts
// as both accurate and close. ok is false when the dataset has no stats
// configuration.
func ComputeStats(spec catalog.DatasetSpec, records []models.Record) (stats Stats, ok bool) {
	if spec.Stats == nil {
		return Stats{}, false
	}

	stats.Total = len(records)
	for _, rec := range records {
		if present(rec[spec.Stats.ComparisonField]) {
			stats.WithResults++
		}

		margin, ok := numberOf(rec[spec.Stats.MarginField])
		if !ok {
			continue
		}
		m := math.Abs(math.Trunc(margin))
		if m <= AccurateMargin {
			stats.Accurate++
		}
		if m <= CloseMargin {
			stats.Close++
		}
	}

	if stats.Total > 0 {
		pct := float64(stats.Accurate) / float64(stats.Total) * 100
		stats.AccuracyPct = math.Round(pct*10) / 10
	}
	return stats, true
}
