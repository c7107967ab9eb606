// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/pollscope/models"
)

// Column kinds
const (
	KindText    = "text"
	KindSerial  = "serial"
	KindNumber  = "number"
	KindCompact = "compact"
	KindPercent = "percent"
	KindParty   = "party"
	KindMargin  = "margin"
)

// Source prefixes
const (
	SourceFile = "file"
	SourceSQL  = "sql"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed catalog.yaml
var defaultCatalog []byte

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Catalog struct {
	Datasets []DatasetSpec `yaml:"datasets"`
}

type DatasetSpec struct {
	Name           string       `yaml:"name"`
	Title          string       `yaml:"title"`
	State          string       `yaml:"state"`
	Year           int          `yaml:"year"`
	Status         string       `yaml:"status"`
	Source         string       `yaml:"source"`
	SkipHeaderRows int          `yaml:"skip_header_rows"`
	Key            string       `yaml:"key"`
	GroupField     string       `yaml:"group_field"`
	SearchFields   []string     `yaml:"search_fields"`
	PartyTokens    []PartyToken `yaml:"party_tokens"`
	Columns        []Column     `yaml:"columns"`
	Charts         []Chart      `yaml:"charts"`
	Stats          *StatsSpec   `yaml:"stats"`
}

// PartyToken maps any of Match (case-insensitive substrings) to Badge.
// Tokens are checked in catalog order and the first match wins.
type PartyToken struct {
	Badge string   `yaml:"badge"`
	Match []string `yaml:"match"`
}

type Column struct {
	Field        string `yaml:"field"`
	Title        string `yaml:"title"`
	Kind         string `yaml:"kind"`
	CompareField string `yaml:"compare_field"`
	Align        string `yaml:"align"`
	Group        bool   `yaml:"group"`
}

type Chart struct {
	Name   string  `yaml:"name"`
	Title  string  `yaml:"title"`
	Slices []Slice `yaml:"slices"`
}

type Slice struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
	Color string  `yaml:"color"`
}

type StatsSpec struct {
	MarginField     string `yaml:"margin_field"`
	ComparisonField string `yaml:"comparison_field"`
}

// Numeric reports whether the column sorts by value rather than by text
func (c Column) Numeric() bool {
	switch c.Kind {
	case KindSerial, KindNumber, KindCompact, KindPercent, KindMargin:
		return true
	}
	return false
}

// SourceRef splits Source into its kind and location.
// "file:bihar.json" → ("file", "bihar.json"); "sql" → ("sql", Name).
func (d DatasetSpec) SourceRef() (kind, location string) {
	if d.Source == SourceSQL {
		return SourceSQL, d.Name
	}
	kind, location, _ = strings.Cut(d.Source, ":")
	return kind, location
}

// Chart returns the named chart
func (d DatasetSpec) Chart(name string) (Chart, bool) {
	for _, c := range d.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return Chart{}, false
}

// Lookup returns the dataset spec with the given name
func (c *Catalog) Lookup(name string) (DatasetSpec, bool) {
	for _, d := range c.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return DatasetSpec{}, false
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and validates a catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML catalog data, fills defaults and validates it.
// Unknown keys are rejected so typos in column definitions surface early.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	for i := range c.Datasets {
		applyDefaults(&c.Datasets[i])
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func applyDefaults(d *DatasetSpec) {
	if d.Status == "" {
		d.Status = models.StatusCompleted
	}
	if d.Source == "" {
		d.Source = SourceFile + ":" + d.Name + ".json"
	}
	if d.Title == "" {
		d.Title = d.State
	}
	for i := range d.Columns {
		if d.Columns[i].Kind == "" {
			d.Columns[i].Kind = KindText
		}
	}
}

// Validate checks every dataset for a usable schema
func (c *Catalog) Validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("%w: no datasets", ErrInvalidCatalog)
	}

	seen := make(map[string]bool)
	for _, d := range c.Datasets {
		if d.Name == "" {
			return fmt.Errorf("%w: dataset without name", ErrInvalidCatalog)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: duplicate dataset %q", ErrInvalidCatalog, d.Name)
		}
		seen[d.Name] = true

		if err := d.validate(); err != nil {
			return fmt.Errorf("%w: dataset %q: %w", ErrInvalidCatalog, d.Name, err)
		}
	}
	return nil
}

func (d DatasetSpec) validate() error {
	if d.Status != models.StatusCompleted && d.Status != models.StatusUpcoming {
		return fmt.Errorf("unknown status %q", d.Status)
	}

	kind, location := d.SourceRef()
	switch kind {
	case SourceFile:
		if location == "" {
			return errors.New("file source needs a file name")
		}
	case SourceSQL:
	default:
		return fmt.Errorf("unknown source %q", d.Source)
	}

	if d.SkipHeaderRows < 0 {
		return errors.New("skip_header_rows cannot be negative")
	}
	if len(d.Columns) == 0 {
		return errors.New("at least one column is required")
	}

	for _, col := range d.Columns {
		switch col.Kind {
		case KindText, KindSerial, KindNumber, KindCompact, KindPercent, KindParty:
		case KindMargin:
			if col.CompareField == "" {
				return fmt.Errorf("margin column %q needs compare_field", col.Field)
			}
		default:
			return fmt.Errorf("column %q has unknown kind %q", col.Field, col.Kind)
		}
		if col.Field == "" && col.Kind != KindSerial {
			return fmt.Errorf("column %q has no field", col.Title)
		}
		if col.Group && d.GroupField == "" {
			return fmt.Errorf("group column %q without group_field", col.Field)
		}
	}

	for _, tok := range d.PartyTokens {
		if tok.Badge == "" || len(tok.Match) == 0 {
			return errors.New("party token needs a badge and at least one match")
		}
		// a blank match is a substring of every name
		for _, m := range tok.Match {
			if strings.TrimSpace(m) == "" {
				return fmt.Errorf("party token %q has a blank match", tok.Badge)
			}
		}
	}

	for _, ch := range d.Charts {
		if ch.Name == "" {
			return errors.New("chart without name")
		}
		for _, s := range ch.Slices {
			if s.Value < 0 {
				return fmt.Errorf("chart %q: negative value for %q", ch.Name, s.Label)
			}
			if !colorPattern.MatchString(s.Color) {
				return fmt.Errorf("chart %q: bad colour %q", ch.Name, s.Color)
			}
		}
	}
	return nil
}
