// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollscope/catalog"
)

func newFormatter(t *testing.T, locale string) *Formatter {
	t.Helper()

	f, err := NewFormatter(locale)
	require.NoError(t, err)
	return f
}

func TestNewFormatter_InvalidLocale(t *testing.T) {
	_, err := NewFormatter("not a locale!")
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	indian := newFormatter(t, "en-IN")
	us := newFormatter(t, "en-US")

	testCases := []struct {
		name   string
		value  any
		indian string
		us     string
	}{
		{"lakh grouping", json.Number("152000"), "1,52,000", "152,000"},
		{"crore grouping", json.Number("12345678"), "1,23,45,678", "12,345,678"},
		{"small", json.Number("999"), "999", "999"},
		{"zero is a number", json.Number("0"), "0", "0"},
		{"negative", json.Number("-25000"), "-25,000", "-25,000"},
		{"fraction truncated", json.Number("1500.9"), "1,500", "1,500"},
		{"numeric string", "145000", "1,45,000", "145,000"},
		{"string with separators", "1,45,000", "1,45,000", "145,000"},
		{"float", 2500.0, "2,500", "2,500"},
		{"absent", nil, "-", "-"},
		{"blank", "  ", "-", "-"},
		{"placeholder", "-", "-", "-"},
		{"not a number", "N/A", "-", "-"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.indian, indian.FormatNumber(tc.value))
			assert.Equal(t, tc.us, us.FormatNumber(tc.value))
		})
	}
}

func TestFormatNumber_BeyondInt64(t *testing.T) {
	f := newFormatter(t, "en-IN")

	digits := func(s string) string { return strings.ReplaceAll(s, ",", "") }

	assert.Equal(t, "100000000000000000000", digits(f.FormatNumber(1e20)))
	assert.Equal(t, "-100000000000000000000", digits(f.FormatNumber(-1e20)))
	assert.Equal(t, "100000000000000000000", digits(f.FormatNumber(json.Number("100000000000000000000"))))

	big := f.FormatMargin(1e20, json.Number("1"))
	assert.Equal(t, ClassPositive, big.Class)
	assert.Equal(t, "+100000000000000000000", digits(big.Text))

	small := f.FormatMargin(-1e20, json.Number("1"))
	assert.Equal(t, ClassNegative, small.Class)
	assert.Equal(t, "-100000000000000000000", digits(small.Text))

	assert.Equal(t, "100000000000000000K", f.FormatCompact(1e20))
	assert.Equal(t, "-100000000000000000000", f.FormatCompact(-1e20))
}

func TestFormatPercentage(t *testing.T) {
	f := newFormatter(t, "en-IN")

	testCases := []struct {
		value    any
		expected string
	}{
		{json.Number("67.84"), "67.8%"},
		{json.Number("80"), "80.0%"},
		{"12.06", "12.1%"},
		{json.Number("0"), "0.0%"},
		{nil, "-"},
		{"-", "-"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, f.FormatPercentage(tc.value), "%v", tc.value)
	}
}

func TestFormatCompact(t *testing.T) {
	f := newFormatter(t, "en-IN")

	testCases := []struct {
		value    any
		expected string
	}{
		{json.Number("145000"), "145K"},
		{json.Number("25000"), "25K"},
		{json.Number("1499"), "1K"},
		{json.Number("1500"), "2K"},
		{json.Number("1000"), "1K"},
		{json.Number("999"), "999"},
		{json.Number("0"), "0"},
		{json.Number("-0.5"), "0"},
		{json.Number("-250"), "-250"},
		{nil, "-"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, f.FormatCompact(tc.value), "%v", tc.value)
	}
}

func TestFormatMargin(t *testing.T) {
	f := newFormatter(t, "en-IN")

	testCases := []struct {
		name       string
		margin     any
		comparison any
		expected   Cell
	}{
		{"positive", json.Number("125000"), json.Number("400000"), Cell{Text: "+1,25,000", Class: ClassPositive}},
		{"negative", json.Number("-3200"), json.Number("41000"), Cell{Text: "-3,200", Class: ClassNegative}},
		{"zero is positive", json.Number("0"), json.Number("41000"), Cell{Text: "+0", Class: ClassPositive}},
		{"no comparison", json.Number("3200"), nil, Cell{Text: "-"}},
		{"comparison placeholder", json.Number("3200"), "-", Cell{Text: "-"}},
		{"no margin", nil, json.Number("41000"), Cell{Text: "-"}},
		{"margin not a number", "tbd", json.Number("41000"), Cell{Text: "-"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, f.FormatMargin(tc.margin, tc.comparison))
		})
	}
}

func TestPartyName(t *testing.T) {
	assert.Equal(t, "BJP", PartyName(" BJP "))
	assert.Equal(t, "-", PartyName(nil))
	assert.Equal(t, "-", PartyName(""))
}

func TestClassifyParty(t *testing.T) {
	ap := []catalog.PartyToken{
		{Badge: "ysrcp", Match: []string{"ysrcp", "ysr"}},
		{Badge: "tdp", Match: []string{"tdp"}},
		{Badge: "jsp", Match: []string{"jsp", "janasena"}},
	}
	up := []catalog.PartyToken{
		{Badge: "bjp", Match: []string{"bjp"}},
		{Badge: "sp", Match: []string{"sp"}},
		{Badge: "bsp", Match: []string{"bsp"}},
	}

	testCases := []struct {
		name     string
		party    any
		tokens   []catalog.PartyToken
		expected string
	}{
		{"exact", "YSRCP", ap, "ysrcp"},
		{"alias", "YSR Congress", ap, "ysrcp"},
		{"lower case", "tdp", ap, "tdp"},
		{"second alias", "JanaSena Party", ap, "jsp"},
		{"no token", "INC", ap, "others"},
		{"absent", nil, ap, "others"},
		{"blank", " ", ap, "others"},
		{"first listed token wins", "BSP", up, "sp"},
		{"bjp", "BJP", up, "bjp"},
		{"no tokens", "BJP", nil, "others"},
		{"blank match ignored", "INC", []catalog.PartyToken{{Badge: "x", Match: []string{"", " "}}}, "others"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyParty(tc.party, tc.tokens))
		})
	}
}
