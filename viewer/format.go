// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/danielhkuo/pollscope/catalog"
	"github.com/danielhkuo/pollscope/models"
)

// Margin cell classes
const (
	ClassPositive = "positive"
	ClassNegative = "negative"
)

// BadgeOthers is the badge of party names that match no token
const BadgeOthers = "others"

// Formatter turns raw field values into display text using the digit
// grouping of one locale. Safe for concurrent use.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter returns a Formatter for a BCP 47 locale such as "en-IN"
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// Tag returns the formatter's locale
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// groupWhole truncates n and groups its digits. Values outside the int64
// range are printed as floats so they keep their sign.
func (f *Formatter) groupWhole(n float64) string {
	n = math.Trunc(n)
	if n >= math.MinInt64 && n < math.MaxInt64 {
		return f.printer.Sprintf("%d", int64(n))
	}
	return f.printer.Sprintf("%.0f", n)
}

// FormatNumber renders v as an integer with locale thousand separators,
// or "-" when v is absent, blank, or not a number. Fractions are truncated.
func (f *Formatter) FormatNumber(v any) string {
	n, ok := numberOf(v)
	if !ok {
		return models.Placeholder
	}
	return f.groupWhole(n)
}

// FormatPercentage renders v with one decimal and a "%" suffix
func (f *Formatter) FormatPercentage(v any) string {
	n, ok := numberOf(v)
	if !ok {
		return models.Placeholder
	}
	return strconv.FormatFloat(n, 'f', 1, 64) + "%"
}

// FormatCompact renders values of a thousand or more in whole thousands
// with a "K" suffix (145000 → "145K") and smaller values as plain integers.
func (f *Formatter) FormatCompact(v any) string {
	n, ok := numberOf(v)
	if !ok {
		return models.Placeholder
	}
	i := math.Trunc(n)
	if i >= 1000 {
		return strconv.FormatFloat(math.Round(i/1000), 'f', 0, 64) + "K"
	}
	if i == 0 {
		return "0"
	}
	return strconv.FormatFloat(i, 'f', 0, 64)
}

// FormatMargin renders a signed margin. Non-negative margins get an
// explicit "+". The cell is "-" when either the margin or the value it is
// measured against is missing.
func (f *Formatter) FormatMargin(margin, comparison any) Cell {
	if !present(comparison) {
		return Cell{Text: models.Placeholder}
	}
	n, ok := numberOf(margin)
	if !ok {
		return Cell{Text: models.Placeholder}
	}

	m := math.Trunc(n)
	if m >= 0 {
		return Cell{Text: "+" + f.groupWhole(m), Class: ClassPositive}
	}
	return Cell{Text: f.groupWhole(m), Class: ClassNegative}
}

// PartyName returns the trimmed party name or "-"
func PartyName(v any) string {
	s, _ := textOf(v)
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Placeholder
	}
	return s
}

// ClassifyParty returns the badge of the first token that matches name.
// Order matters: with tokens sp then bsp, "BSP" is classified as "sp".
func ClassifyParty(name any, tokens []catalog.PartyToken) string {
	s, ok := textOf(name)
	if !ok {
		return BadgeOthers
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return BadgeOthers
	}

	for _, tok := range tokens {
		for _, m := range tok.Match {
			m = strings.ToLower(strings.TrimSpace(m))
			if m != "" && strings.Contains(s, m) {
				return tok.Badge
			}
		}
	}
	return BadgeOthers
}
