// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/pollscope/models"
)

// textOf returns the display text of a raw field value.
// ok is false only for absent (nil) values.
func textOf(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return fmt.Sprint(x), true
	}
}

// present reports whether v carries a value: not nil, not blank, not "-"
func present(v any) bool {
	s, ok := textOf(v)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	return s != "" && s != models.Placeholder
}

// numberOf parses a field value as a number. Thousand separators are
// ignored; blanks, placeholders and anything else unparseable are not numbers.
func numberOf(v any) (float64, bool) {
	if !present(v) {
		return 0, false
	}
	s, _ := textOf(v)
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
