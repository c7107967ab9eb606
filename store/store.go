// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/pollscope/catalog"
	"github.com/danielhkuo/pollscope/db"
	"github.com/danielhkuo/pollscope/models"
)

var (
	ErrUnknownDataset    = errors.New("unknown dataset")
	ErrDataSourceMissing = errors.New("data source missing")
	ErrNotSQLSource      = errors.New("dataset is not read from the database")
)

// Store holds every catalog dataset in memory. It is filled once by Load
// and read-only afterwards, so concurrent Get calls need no locking.
type Store struct {
	catalog *catalog.Catalog
	files   fs.FS
	db      *sql.DB

	datasets map[string]models.Dataset
	failures map[string]error
}

// New creates a store reading file sources from files and sql sources
// from conn. Either may be nil when no dataset uses it.
func New(cat *catalog.Catalog, files fs.FS, conn *sql.DB) *Store {
	return &Store{
		catalog:  cat,
		files:    files,
		db:       conn,
		datasets: make(map[string]models.Dataset),
		failures: make(map[string]error),
	}
}

// Catalog returns the catalog the store was built from
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// Load reads all datasets. A dataset that fails to load is remembered as
// missing and does not stop the others; Load only fails if ctx is done.
func (s *Store) Load(ctx context.Context) error {
	for _, spec := range s.catalog.Datasets {
		if err := ctx.Err(); err != nil {
			return err
		}

		records, size, err := s.read(ctx, spec)
		if err == nil && len(records) == 0 {
			err = errors.New("no records")
		}
		if err != nil {
			slog.Error("dataset not loaded", "dataset", spec.Name, "source", spec.Source, "error", err)
			s.failures[spec.Name] = err
			continue
		}

		s.datasets[spec.Name] = models.Dataset{Name: spec.Name, Records: records}
		attrs := []any{"dataset", spec.Name, "records", len(records)}
		// sql sources have no file size
		if size > 0 {
			attrs = append(attrs, "size", humanize.Bytes(uint64(size)))
		}
		slog.Info("dataset loaded", attrs...)
	}
	return nil
}

func (s *Store) read(ctx context.Context, spec catalog.DatasetSpec) ([]models.Record, int, error) {
	kind, location := spec.SourceRef()

	var (
		records []models.Record
		size    int
		err     error
	)
	switch kind {
	case catalog.SourceFile:
		if s.files == nil {
			return nil, 0, errors.New("no data directory configured")
		}
		var raw []byte
		raw, err = fs.ReadFile(s.files, location)
		if err != nil {
			return nil, 0, err
		}
		size = len(raw)
		records, err = DecodeRecords(raw)
	case catalog.SourceSQL:
		if s.db == nil {
			return nil, 0, errors.New("no database configured")
		}
		records, err = db.LoadRecords(ctx, s.db, location)
	default:
		err = fmt.Errorf("unknown source kind %q", kind)
	}
	if err != nil {
		return nil, 0, err
	}

	if spec.SkipHeaderRows > 0 {
		records = records[min(spec.SkipHeaderRows, len(records)):]
	}
	return records, size, nil
}

// Import replaces the database records of an sql dataset with the JSON
// array in raw and returns how many were written. Call it before Load.
func (s *Store) Import(ctx context.Context, name string, raw []byte) (int, error) {
	spec, ok := s.catalog.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}

	kind, location := spec.SourceRef()
	if kind != catalog.SourceSQL {
		return 0, fmt.Errorf("%w: %s uses %q", ErrNotSQLSource, name, spec.Source)
	}
	if s.db == nil {
		return 0, errors.New("no database configured")
	}

	records, err := DecodeRecords(raw)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%s: no records to import", name)
	}

	if err := db.ImportRecords(ctx, s.db, location, records); err != nil {
		return 0, err
	}
	slog.Info("dataset imported",
		"dataset", name,
		"records", len(records),
		"size", humanize.Bytes(uint64(len(raw))),
	)
	return len(records), nil
}

// DecodeRecords parses a JSON array of record objects, keeping numbers
// as json.Number
func DecodeRecords(raw []byte) ([]models.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var records []models.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

// Get returns a loaded dataset together with its spec
func (s *Store) Get(name string) (catalog.DatasetSpec, models.Dataset, error) {
	spec, ok := s.catalog.Lookup(name)
	if !ok {
		return catalog.DatasetSpec{}, models.Dataset{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}

	if err, failed := s.failures[name]; failed {
		return spec, models.Dataset{}, fmt.Errorf("%w: %s: %w", ErrDataSourceMissing, name, err)
	}

	ds, ok := s.datasets[name]
	if !ok {
		return spec, models.Dataset{}, fmt.Errorf("%w: %s not loaded", ErrDataSourceMissing, name)
	}
	return spec, ds, nil
}

// Summaries lists the catalog with load status, in catalog order.
// status filters by dataset status unless it is "" or models.StatusAll.
func (s *Store) Summaries(status string) []models.DatasetSummary {
	summaries := []models.DatasetSummary{}
	for _, spec := range s.catalog.Datasets {
		if status != "" && status != models.StatusAll && spec.Status != status {
			continue
		}

		sum := models.DatasetSummary{
			Name:   spec.Name,
			Title:  spec.Title,
			State:  spec.State,
			Year:   spec.Year,
			Status: spec.Status,
		}
		if ds, ok := s.datasets[spec.Name]; ok {
			sum.Loaded = true
			sum.Records = len(ds.Records)
		} else if err, failed := s.failures[spec.Name]; failed {
			sum.LoadNote = err.Error()
		}
		summaries = append(summaries, sum)
	}
	return summaries
}
