// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package data holds the constituency files compiled into the binary.
// A -data-dir on the command line replaces this set entirely.
package data

import "embed"

//go:embed *.json
var FS embed.FS
