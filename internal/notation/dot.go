package notation

import (
	"fmt"
	"strings"

	"github.com/julianshen/firmdiag/internal/diagram"
)

// DOT renders g as a Graphviz digraph. Node attributes equal to the graph
// defaults are omitted.
func DOT(g *diagram.Graph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", dotQuote(g.Name))
	fmt.Fprintf(&b, "%srankdir=%s;\n", indent, dotRankdir(g.Direction))

	var defaults []string
	if g.Defaults.Shape != "" {
		defaults = append(defaults, "shape="+dotShape(g.Defaults.Shape))
	}
	if g.Defaults.Fill != "" {
		defaults = append(defaults, "style=filled", "fillcolor="+dotQuote(g.Defaults.Fill))
	}
	if len(defaults) > 0 {
		fmt.Fprintf(&b, "%snode [%s];\n", indent, strings.Join(defaults, ", "))
	}
	b.WriteString("\n")

	for _, n := range g.ClusterNodes("") {
		writeDOTNode(&b, indent, g.Defaults, n)
	}
	for _, c := range g.Clusters {
		fmt.Fprintf(&b, "%ssubgraph %s {\n", indent, dotQuote("cluster_"+c.ID))
		fmt.Fprintf(&b, "%s%slabel=%s;\n", indent, indent, dotQuote(c.Label))
		for _, n := range g.ClusterNodes(c.ID) {
			writeDOTNode(&b, indent+indent, g.Defaults, n)
		}
		fmt.Fprintf(&b, "%s}\n", indent)
	}

	if len(g.Edges) > 0 {
		b.WriteString("\n")
	}
	for _, e := range g.Edges {
		var attrs []string
		if e.Label != "" {
			attrs = append(attrs, "label="+dotQuote(e.Label))
		}
		switch e.Style {
		case diagram.EdgeDotted:
			attrs = append(attrs, "style=dotted")
		case diagram.EdgeThick:
			attrs = append(attrs, "penwidth=2")
		case diagram.EdgeBoth:
			attrs = append(attrs, "dir=both")
		}
		fmt.Fprintf(&b, "%s%s -> %s%s;\n", indent, dotQuote(e.From), dotQuote(e.To), dotAttrs(attrs))
	}
	b.WriteString("}\n")
	return b.String()
}

func writeDOTNode(b *strings.Builder, prefix string, d diagram.NodeDefaults, n diagram.Node) {
	attrs := []string{"label=" + dotQuote(n.Label)}
	if n.Shape != "" && n.Shape != d.Shape {
		attrs = append(attrs, "shape="+dotShape(n.Shape))
	}
	if n.Fill != "" && n.Fill != d.Fill {
		if d.Fill == "" {
			attrs = append(attrs, "style=filled")
		}
		attrs = append(attrs, "fillcolor="+dotQuote(n.Fill))
	}
	fmt.Fprintf(b, "%s%s%s;\n", prefix, dotQuote(n.ID), dotAttrs(attrs))
}

func dotAttrs(attrs []string) string {
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

func dotShape(s diagram.Shape) string {
	switch s {
	case diagram.ShapeStadium:
		return "oval"
	case diagram.ShapeRound:
		return "ellipse"
	case diagram.ShapeDiamond:
		return "diamond"
	case diagram.ShapeCircle:
		return "circle"
	default:
		return "box"
	}
}

func dotRankdir(d diagram.Direction) string {
	if d == diagram.LeftRight {
		return "LR"
	}
	return "TB"
}

// dotQuote returns s as a DOT double-quoted string.
func dotQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
