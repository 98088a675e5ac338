// Package notation serializes diagram models into text notations that
// standard tools render without post-processing: mermaid for flowcharts,
// graphs, class, sequence and state diagrams, and Graphviz DOT.
package notation

import (
	"fmt"
	"strings"

	"github.com/julianshen/firmdiag/internal/diagram"
)

const indent = "    "

// Flowchart renders g as a mermaid flowchart or graph, depending on its
// kind.
func Flowchart(g *diagram.Graph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", g.Kind, g.Direction)

	for _, n := range g.ClusterNodes("") {
		writeMermaidNode(&b, indent, n)
	}
	for _, c := range g.Clusters {
		fmt.Fprintf(&b, "%ssubgraph %s[\"%s\"]\n", indent, mermaidID(c.ID), escapeMermaid(c.Label))
		for _, n := range g.ClusterNodes(c.ID) {
			writeMermaidNode(&b, indent+indent, n)
		}
		fmt.Fprintf(&b, "%send\n", indent)
	}

	if len(g.Edges) > 0 {
		b.WriteString("\n")
	}
	for _, e := range g.Edges {
		arrow := mermaidArrow(e.Style)
		if e.Label != "" {
			fmt.Fprintf(&b, "%s%s %s|\"%s\"| %s\n", indent, mermaidID(e.From), arrow, escapeMermaid(e.Label), mermaidID(e.To))
			continue
		}
		fmt.Fprintf(&b, "%s%s %s %s\n", indent, mermaidID(e.From), arrow, mermaidID(e.To))
	}

	var styled []diagram.Node
	for _, n := range g.Nodes {
		if n.Fill != "" {
			styled = append(styled, n)
		}
	}
	if len(styled) > 0 {
		b.WriteString("\n")
	}
	for _, n := range styled {
		fmt.Fprintf(&b, "%sstyle %s fill:%s\n", indent, mermaidID(n.ID), n.Fill)
	}
	return b.String()
}

func writeMermaidNode(b *strings.Builder, prefix string, n diagram.Node) {
	left, right := mermaidShape(n.Shape)
	fmt.Fprintf(b, "%s%s%s\"%s\"%s\n", prefix, mermaidID(n.ID), left, escapeMermaid(n.Label), right)
}

func mermaidShape(s diagram.Shape) (string, string) {
	switch s {
	case diagram.ShapeRound:
		return "(", ")"
	case diagram.ShapeStadium:
		return "([", "])"
	case diagram.ShapeDiamond:
		return "{", "}"
	case diagram.ShapeCircle:
		return "((", "))"
	default:
		return "[", "]"
	}
}

func mermaidArrow(s diagram.EdgeStyle) string {
	switch s {
	case diagram.EdgeDotted:
		return "-.->"
	case diagram.EdgeThick:
		return "==>"
	case diagram.EdgeBoth:
		return "<-->"
	default:
		return "-->"
	}
}

// Class renders d as a mermaid classDiagram.
func Class(d *diagram.ClassDiagram) string {
	var b strings.Builder
	b.WriteString("classDiagram\n")
	for i, c := range d.Classes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%sclass %s {\n", indent, mermaidID(c.Name))
		for _, m := range c.Members {
			fmt.Fprintf(&b, "%s%s%s%s\n", indent, indent, m.Visibility, m.Text)
		}
		fmt.Fprintf(&b, "%s}\n", indent)
	}
	if len(d.Associations) > 0 {
		b.WriteString("\n")
	}
	for _, a := range d.Associations {
		fmt.Fprintf(&b, "%s%s --> %s\n", indent, mermaidID(a.From), mermaidID(a.To))
	}
	return b.String()
}

// Sequence renders s as a mermaid sequenceDiagram.
func Sequence(s *diagram.Sequence) string {
	var b strings.Builder
	b.WriteString("sequenceDiagram\n")
	for _, p := range s.Participants {
		if p.Alias != "" && p.Alias != p.ID {
			fmt.Fprintf(&b, "%sparticipant %s as %s\n", indent, p.ID, escapeSequence(p.Alias))
			continue
		}
		fmt.Fprintf(&b, "%sparticipant %s\n", indent, p.ID)
	}
	b.WriteString("\n")
	writeSteps(&b, indent, s.Steps)
	return b.String()
}

func writeSteps(b *strings.Builder, prefix string, steps []diagram.Step) {
	for _, st := range steps {
		switch v := st.(type) {
		case diagram.Message:
			arrow := "->>"
			if v.Reply {
				arrow = "-->>"
			}
			fmt.Fprintf(b, "%s%s%s%s: %s\n", prefix, v.From, arrow, v.To, escapeSequence(v.Text))
		case diagram.Block:
			for i, br := range v.Branches {
				keyword := string(v.Kind)
				if i > 0 {
					keyword = "else"
				}
				fmt.Fprintf(b, "%s%s %s\n", prefix, keyword, escapeSequence(br.Label))
				writeSteps(b, prefix+indent, br.Steps)
			}
			fmt.Fprintf(b, "%send\n", prefix)
		}
	}
}

// State renders m as a mermaid stateDiagram-v2.
func State(m *diagram.StateMachine) string {
	var b strings.Builder
	b.WriteString("stateDiagram-v2\n")
	for _, t := range m.Transitions {
		if t.Label != "" {
			fmt.Fprintf(&b, "%s%s --> %s : %s\n", indent, t.From, t.To, escapeSequence(t.Label))
			continue
		}
		fmt.Fprintf(&b, "%s%s --> %s\n", indent, t.From, t.To)
	}
	return b.String()
}

// escapeMermaid replaces characters that would break a quoted mermaid label.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "\n", "<br/>")
	return s
}

// escapeSequence makes free text safe in sequence and state statements,
// where '#' starts an entity and ';' ends a statement.
func escapeSequence(s string) string {
	return sequenceEscaper.Replace(s)
}

var sequenceEscaper = strings.NewReplacer("#", "#35;", ";", "#59;", "\n", "<br/>")

// mermaidID converts a string into a safe mermaid node identifier. "end"
// closes a subgraph, so it is never emitted bare.
func mermaidID(s string) string {
	r := strings.NewReplacer("/", "_", ".", "_", "-", "_", " ", "_")
	s = r.Replace(s)
	if strings.EqualFold(s, "end") {
		s += "_"
	}
	return s
}
