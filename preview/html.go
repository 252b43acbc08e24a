package preview

import (
	"fmt"
	"io"

	"github.com/npillmayer/colortree"
	"github.com/npillmayer/colortree/arrange"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML outputs a grid as an HTML table, one cell of cellSize pixels per
// position. Positions not yet placed are left transparent.
func HTML(w io.Writer, g *arrange.Grid, cellSize int) error {
	if cellSize < 1 {
		return fmt.Errorf("%w: cell size %d", colortree.ErrIllegalArguments, cellSize)
	}
	table := element(atom.Table, html.Attribute{
		Key: "style",
		Val: "border-collapse:collapse;border-spacing:0",
	})
	for y := range g.H {
		tr := element(atom.Tr)
		for x := range g.W {
			style := fmt.Sprintf("width:%dpx;height:%dpx;padding:0", cellSize, cellSize)
			if c, ok := g.At(x, y); ok {
				style += ";background:" + c.String()
			}
			td := element(atom.Td, html.Attribute{Key: "style", Val: style})
			tr.AppendChild(td)
		}
		table.AppendChild(tr)
	}
	return html.Render(w, table)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}
