// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package charts draws the predicted and actual seat pie charts as SVG.
package charts
