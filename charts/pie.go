// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package charts

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/pollscope/catalog"
)

const (
	// radiusInset keeps the pie clear of the drawing edge
	radiusInset  = 25
	gradientDrop = -20
	legendRow    = 20
)

type Slice struct {
	Label string
	Value float64
	Color string
}

type PieChart struct {
	Title  string
	Slices []Slice
}

// Arc is one drawn slice. Angles are radians, clockwise, with -π/2 at the top.
type Arc struct {
	Slice
	Dark    string
	Start   float64
	End     float64
	Percent float64
}

// FromCatalog builds a chart from its catalog definition
func FromCatalog(c catalog.Chart) PieChart {
	p := PieChart{Title: c.Title, Slices: make([]Slice, len(c.Slices))}
	for i, s := range c.Slices {
		p.Slices[i] = Slice{Label: s.Label, Value: s.Value, Color: s.Color}
	}
	return p
}

// Total is the sum of all slice values
func (p PieChart) Total() float64 {
	var total float64
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

// Arcs lays the slices out from 12 o'clock, in order. A chart whose total
// is zero has no arcs.
func (p PieChart) Arcs() []Arc {
	total := p.Total()
	if total <= 0 {
		return nil
	}

	arcs := make([]Arc, 0, len(p.Slices))
	angle := -math.Pi / 2
	for _, s := range p.Slices {
		sweep := s.Value / total * 2 * math.Pi
		arcs = append(arcs, Arc{
			Slice:   s,
			Dark:    AdjustBrightness(s.Color, gradientDrop),
			Start:   angle,
			End:     angle + sweep,
			Percent: s.Value / total * 100,
		})
		angle += sweep
	}
	return arcs
}

// SVG renders the chart and its legend. id prefixes gradient ids so
// several charts can share a page.
func (p PieChart) SVG(id string, width, height int) string {
	cx, cy := float64(width)/2, float64(height)/2
	r := math.Min(float64(width), float64(height))/2 - radiusInset
	if r < 1 {
		r = 1
	}
	arcs := p.Arcs()

	var b strings.Builder
	total := height + legendRow*len(p.Slices)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" role="img" aria-label="%s">`,
		width, total, width, total, html.EscapeString(p.Title))

	b.WriteString("<defs>")
	for i, a := range arcs {
		fmt.Fprintf(&b, `<radialGradient id="%s-g%d" cx="50%%" cy="50%%" r="50%%"><stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></radialGradient>`,
			html.EscapeString(id), i, a.Color, a.Dark)
	}
	b.WriteString("</defs>")

	if len(arcs) == 0 {
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="#e2e8f0"/>`, num(cx), num(cy), num(r))
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" fill="#64748b">No data</text>`, num(cx), num(cy))
	}

	for i, a := range arcs {
		fill := fmt.Sprintf("url(#%s-g%d)", html.EscapeString(id), i)
		if a.End-a.Start >= 2*math.Pi-1e-9 {
			fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="#ffffff" stroke-width="3"/>`,
				num(cx), num(cy), num(r), fill)
			continue
		}
		if a.End == a.Start {
			continue
		}
		fmt.Fprintf(&b, `<path d="%s" fill="%s" stroke="#ffffff" stroke-width="3"><title>%s: %s (%s%%)</title></path>`,
			slicePath(cx, cy, r, a.Start, a.End), fill,
			html.EscapeString(a.Label), num(a.Value), strconv.FormatFloat(a.Percent, 'f', 1, 64))
	}

	for i, s := range p.Slices {
		y := height + legendRow*i
		fmt.Fprintf(&b, `<rect x="10" y="%d" width="12" height="12" fill="%s"/>`, y, s.Color)
		fmt.Fprintf(&b, `<text x="28" y="%d" font-size="12">%s (%s)</text>`, y+11, html.EscapeString(s.Label), num(s.Value))
	}

	b.WriteString("</svg>")
	return b.String()
}

// slicePath draws a wedge from the centre, clockwise from start to end
func slicePath(cx, cy, r, start, end float64) string {
	x1, y1 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	x2, y2 := cx+r*math.Cos(end), cy+r*math.Sin(end)
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M%s %s L%s %s A%s %s 0 %d 1 %s %s Z",
		num(cx), num(cy), num(x1), num(y1), num(r), num(r), large, num(x2), num(y2))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// AdjustBrightness adds amount to each RGB channel of a "#rrggbb" colour,
// clamping to [0, 255]. The '#' is kept only if the input had it.
func AdjustBrightness(color string, amount int) string {
	hex, pound := strings.CutPrefix(color, "#")
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color
	}

	clamp := func(v int) int { return min(max(v, 0), 255) }
	r := clamp(int(n>>16) + amount)
	g := clamp(int(n>>8&0xff) + amount)
	b := clamp(int(n&0xff) + amount)

	out := fmt.Sprintf("%06x", r<<16|g<<8|b)
	if pound {
		return "#" + out
	}
	return out
}
