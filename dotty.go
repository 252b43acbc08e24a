package colortree

import (
	"fmt"
	"io"
)

type nodeids[N any] struct {
	idTable map[*Core[N]]int
	max     int
}

func newtable[N any]() nodeids[N] {
	return nodeids[N]{
		idTable: make(map[*Core[N]]int),
		max:     1,
	}
}

func (ids *nodeids[N]) alloc(c *Core[N]) int {
	if id := ids.idTable[c]; id > 0 {
		return id
	}
	ids.idTable[c] = ids.max
	ids.max++
	return ids.max - 1
}

// WriteDot outputs the structure and statistics of a color tree in
// Graphviz DOT format (for debugging purposes). Nodes are filled with their
// current color estimate. If N implements fmt.Stringer, its string
// representation is part of the node label.
func WriteDot[N Variant[N]](root N, w io.Writer) error {
	ids := newtable[N]()
	nodelist, edgelist := "", ""
	Walk(root, func(n N, depth int) bool {
		c := n.Core()
		ID := ids.alloc(c)
		label := fmt.Sprintf("%d/%d", c.free, c.total)
		if s, ok := any(n).(fmt.Stringer); ok {
			label = s.String() + "\\n" + label
		}
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", ID, label, nodeDotStyles(c))
		if c.up != nil {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ids.alloc(c.up), ID)
		}
		return true
	})
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	write("strict digraph {\n")
	write("\tnode [fontname=Arial,fontsize=12];\n")
	write(nodelist)
	write(edgelist)
	write("}\n")
	if err != nil {
		T().Errorf("color tree DOT: %s", err.Error())
	}
	return err
}

func nodeDotStyles[N any](c *Core[N]) string {
	col, err := c.Color()
	if err != nil { // empty region
		return ",shape=box,style=dashed"
	}
	s := ",style=filled"
	rgb := col.RGB()
	s += fmt.Sprintf(",fillcolor=\"%s\"", rgb)
	if int(rgb.R)+int(rgb.G)+int(rgb.B) < 3*96 {
		s += ",fontcolor=white"
	}
	if len(c.children) == 0 {
		s += ",shape=box"
	}
	return s
}
