// Package diagram holds the in-memory models that renderers serialize:
// directed graphs, class and sequence diagrams, state machines, and the
// geometric scenes used for raster output. Models are assembled through
// builders and treated as read-only once built.
package diagram

import (
	"fmt"
)

// Direction is the layout direction of a graph.
type Direction string

const (
	TopDown   Direction = "TD"
	TopBottom Direction = "TB"
	LeftRight Direction = "LR"
)

// GraphKind distinguishes flowcharts from plain directed graphs. Renderers
// use it to pick the header keyword.
type GraphKind string

const (
	KindFlowchart GraphKind = "flowchart"
	KindGraph     GraphKind = "graph"
)

// Shape is the node outline.
type Shape string

const (
	ShapeBox     Shape = "box"
	ShapeRound   Shape = "round"
	ShapeStadium Shape = "stadium" // start/end terminals
	ShapeDiamond Shape = "diamond" // decisions
	ShapeCircle  Shape = "circle"
)

// EdgeStyle selects the connector drawn between two nodes.
type EdgeStyle string

const (
	EdgeSolid  EdgeStyle = ""
	EdgeDotted EdgeStyle = "dotted"
	EdgeThick  EdgeStyle = "thick"
	EdgeBoth   EdgeStyle = "both"
)

// Node is a vertex of a Graph.
type Node struct {
	ID      string
	Label   string
	Shape   Shape
	Cluster string // cluster ID, empty for top level
	Fill    string // "#RRGGBB" or a named colour, empty for default
}

// Edge connects two nodes by ID.
type Edge struct {
	From  string
	To    string
	Label string
	Style EdgeStyle
}

// Cluster groups nodes into a labelled subgraph.
type Cluster struct {
	ID    string
	Label string
}

// NodeDefaults are attributes applied to every node unless overridden.
// Only notations with a global node statement honour them.
type NodeDefaults struct {
	Shape Shape
	Fill  string
}

// Graph is a directed graph with optional clusters.
type Graph struct {
	Name      string
	Kind      GraphKind
	Direction Direction
	Defaults  NodeDefaults
	Nodes     []Node
	Edges     []Edge
	Clusters  []Cluster
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// ClusterNodes returns the nodes belonging to cluster id, in insertion order.
func (g *Graph) ClusterNodes(id string) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Cluster == id {
			out = append(out, n)
		}
	}
	return out
}

// Validate checks that IDs are unique and that every edge endpoint and every
// cluster reference names something declared in g.
func (g *Graph) Validate() error {
	clusters := make(map[string]bool, len(g.Clusters))
	for _, c := range g.Clusters {
		if c.ID == "" {
			return fmt.Errorf("graph %s: cluster with empty id", g.Name)
		}
		if clusters[c.ID] {
			return fmt.Errorf("graph %s: duplicate cluster %q", g.Name, c.ID)
		}
		clusters[c.ID] = true
	}

	nodes := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("graph %s: node with empty id", g.Name)
		}
		if nodes[n.ID] {
			return fmt.Errorf("graph %s: duplicate node %q", g.Name, n.ID)
		}
		if n.Cluster != "" && !clusters[n.Cluster] {
			return fmt.Errorf("graph %s: node %q references unknown cluster %q", g.Name, n.ID, n.Cluster)
		}
		nodes[n.ID] = true
	}

	for _, e := range g.Edges {
		if !nodes[e.From] {
			return fmt.Errorf("graph %s: edge %s->%s: unknown source", g.Name, e.From, e.To)
		}
		if !nodes[e.To] {
			return fmt.Errorf("graph %s: edge %s->%s: unknown target", g.Name, e.From, e.To)
		}
	}
	return nil
}

// GraphBuilder assembles a Graph. Nodes added while a cluster is open are
// placed in that cluster.
type GraphBuilder struct {
	g       Graph
	cluster string
	err     error
}

// NewGraph starts a graph of the given kind and direction.
func NewGraph(name string, kind GraphKind, dir Direction) *GraphBuilder {
	return &GraphBuilder{g: Graph{Name: name, Kind: kind, Direction: dir}}
}

// Defaults sets the node defaults.
func (b *GraphBuilder) Defaults(d NodeDefaults) *GraphBuilder {
	b.g.Defaults = d
	return b
}

// Cluster opens a cluster; subsequent nodes belong to it until EndCluster.
func (b *GraphBuilder) Cluster(id, label string) *GraphBuilder {
	b.g.Clusters = append(b.g.Clusters, Cluster{ID: id, Label: label})
	b.cluster = id
	return b
}

// EndCluster closes the open cluster.
func (b *GraphBuilder) EndCluster() *GraphBuilder {
	b.cluster = ""
	return b
}

// Node adds a box node.
func (b *GraphBuilder) Node(id, label string) *GraphBuilder {
	return b.Shaped(id, label, ShapeBox)
}

// Shaped adds a node with an explicit shape.
func (b *GraphBuilder) Shaped(id, label string, shape Shape) *GraphBuilder {
	b.g.Nodes = append(b.g.Nodes, Node{ID: id, Label: label, Shape: shape, Cluster: b.cluster})
	return b
}

// Fill sets the fill colour of an existing node. Unknown IDs are reported
// by Build.
func (b *GraphBuilder) Fill(id, fill string) *GraphBuilder {
	for i := range b.g.Nodes {
		if b.g.Nodes[i].ID == id {
			b.g.Nodes[i].Fill = fill
			return b
		}
	}
	if b.err == nil {
		b.err = fmt.Errorf("graph %s: fill for unknown node %q", b.g.Name, id)
	}
	return b
}

// Edge adds an unlabelled solid edge.
func (b *GraphBuilder) Edge(from, to string) *GraphBuilder {
	return b.StyledEdge(from, to, "", EdgeSolid)
}

// LabeledEdge adds a solid edge with a label.
func (b *GraphBuilder) LabeledEdge(from, to, label string) *GraphBuilder {
	return b.StyledEdge(from, to, label, EdgeSolid)
}

// StyledEdge adds an edge with a label and style.
func (b *GraphBuilder) StyledEdge(from, to, label string, style EdgeStyle) *GraphBuilder {
	b.g.Edges = append(b.g.Edges, Edge{From: from, To: to, Label: label, Style: style})
	return b
}

// Chain adds solid edges ids[0]->ids[1]->...->ids[n-1].
func (b *GraphBuilder) Chain(ids ...string) *GraphBuilder {
	for i := 1; i < len(ids); i++ {
		b.Edge(ids[i-1], ids[i])
	}
	return b
}

// Build validates and returns the graph.
func (b *GraphBuilder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	g := b.g
	g.Nodes = append([]Node(nil), b.g.Nodes...)
	g.Edges = append([]Edge(nil), b.g.Edges...)
	g.Clusters = append([]Cluster(nil), b.g.Clusters...)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// MustBuild is Build for hand-authored topologies, where a validation error
// is a programming mistake.
func (b *GraphBuilder) MustBuild() *Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
