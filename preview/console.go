/*
Package preview renders arrangement grids for debugging purposes: as colored
blocks on a terminal, or as an HTML table.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package preview

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/colortree"
	"github.com/npillmayer/colortree/arrange"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/term"
)

// tracer writes to trace with key 'colortree'
func tracer() tracing.Trace {
	return tracing.Select("colortree")
}

// DefaultWidth is the line width assumed for non-interactive output.
const DefaultWidth = 80

// ansiColor is one of the 16 standard terminal background colors together
// with its xterm RGB value.
type ansiColor struct {
	attr color.Attribute
	rgb  colortree.RGB
}

var ansiPalette = [...]ansiColor{
	{color.BgBlack, colortree.RGB{R: 0, G: 0, B: 0}},
	{color.BgRed, colortree.RGB{R: 205, G: 0, B: 0}},
	{color.BgGreen, colortree.RGB{R: 0, G: 205, B: 0}},
	{color.BgYellow, colortree.RGB{R: 205, G: 205, B: 0}},
	{color.BgBlue, colortree.RGB{R: 0, G: 0, B: 238}},
	{color.BgMagenta, colortree.RGB{R: 205, G: 0, B: 205}},
	{color.BgCyan, colortree.RGB{R: 0, G: 205, B: 205}},
	{color.BgWhite, colortree.RGB{R: 229, G: 229, B: 229}},
	{color.BgHiBlack, colortree.RGB{R: 127, G: 127, B: 127}},
	{color.BgHiRed, colortree.RGB{R: 255, G: 0, B: 0}},
	{color.BgHiGreen, colortree.RGB{R: 0, G: 255, B: 0}},
	{color.BgHiYellow, colortree.RGB{R: 255, G: 255, B: 0}},
	{color.BgHiBlue, colortree.RGB{R: 92, G: 92, B: 255}},
	{color.BgHiMagenta, colortree.RGB{R: 255, G: 0, B: 255}},
	{color.BgHiCyan, colortree.RGB{R: 0, G: 255, B: 255}},
	{color.BgHiWhite, colortree.RGB{R: 255, G: 255, B: 255}},
}

// nearestANSI returns the terminal background attribute closest to c.
func nearestANSI(c colortree.RGB) color.Attribute {
	best, bestDist := ansiPalette[0].attr, colortree.ColorOf(c).Dist2(ansiPalette[0].rgb)
	for _, a := range ansiPalette[1:] {
		if d := colortree.ColorOf(c).Dist2(a.rgb); d < bestDist {
			best, bestDist = a.attr, d
		}
	}
	return best
}

// Console outputs a grid as blocks of background color, two character cells
// per position. Positions not yet placed are shown as dots. Lines are
// clipped to width character cells; a width <= 0 selects the terminal width.
//
// Coloring is subject to color.NoColor, i.e. it is switched off for
// non-interactive output.
func Console(w io.Writer, g *arrange.Grid, width int) error {
	if width <= 0 {
		width = TerminalWidth()
	}
	cols := min(g.W, width/2)
	if cols < g.W {
		tracer().Infof("preview: clipping grid of width %d to %d columns", g.W, cols)
	}
	cache := make(map[color.Attribute]*color.Color)
	for y := range g.H {
		for x := range cols {
			c, ok := g.At(x, y)
			if !ok {
				if _, err := io.WriteString(w, "··"); err != nil {
					return err
				}
				continue
			}
			attr := nearestANSI(c)
			painter, found := cache[attr]
			if !found {
				painter = color.New(attr)
				cache[attr] = painter
			}
			if _, err := painter.Fprint(w, "  "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// TerminalWidth checks wether stdout is a terminal, and if so it returns the
// terminal's width. Otherwise DefaultWidth is returned.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		tracer().Debugf("preview: cannot get terminal size: %v", err)
		return DefaultWidth
	}
	return w
}
