package notation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/firmdiag/internal/diagram"
	"github.com/julianshen/firmdiag/internal/extract"
	"github.com/julianshen/firmdiag/internal/topology"
)

func TestFlowchartShapesEdgesAndStyles(t *testing.T) {
	g := diagram.NewGraph("g", diagram.KindFlowchart, diagram.TopDown).
		Shaped("a", "Start", diagram.ShapeStadium).
		Shaped("b", `say "hi"`, diagram.ShapeDiamond).
		LabeledEdge("a", "b", "Yes").
		StyledEdge("b", "a", "", diagram.EdgeDotted).
		Fill("a", "#90EE90").
		MustBuild()

	want := `flowchart TD
    a(["Start"])
    b{"say #quot;hi#quot;"}

    a -->|"Yes"| b
    b -.-> a

    style a fill:#90EE90
`
	assert.Equal(t, want, Flowchart(g))
}

func TestFlowchartEdgeStyles(t *testing.T) {
	g := diagram.NewGraph("g", diagram.KindGraph, diagram.LeftRight).
		Shaped("a", "A", diagram.ShapeRound).
		Shaped("b", "B", diagram.ShapeCircle).
		StyledEdge("a", "b", "", diagram.EdgeThick).
		StyledEdge("a", "b", "link", diagram.EdgeBoth).
		MustBuild()

	out := Flowchart(g)
	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	assert.Contains(t, out, `    a("A")`)
	assert.Contains(t, out, `    b(("B"))`)
	assert.Contains(t, out, "    a ==> b\n")
	assert.Contains(t, out, `    a <-->|"link"| b`)
}

func TestFlowchartClusters(t *testing.T) {
	out := Flowchart(topology.CallGraph())
	assert.Contains(t, out, "    subgraph main[\"main_gateway.ino\"]\n        MAIN[\"setup\"]\n        LOOP[\"loop\"]\n    end\n")
	assert.Contains(t, out, "    UPDATE --> COMPARE\n")
}

func TestFlowchartMultilineLabel(t *testing.T) {
	g := diagram.NewGraph("g", diagram.KindGraph, diagram.TopDown).Node("a", "one\ntwo").MustBuild()
	assert.Contains(t, Flowchart(g), `a["one<br/>two"]`)
}

func TestWiringRendersPinLabels(t *testing.T) {
	pins, err := extract.ParsePins(strings.NewReader("#define RFM95_CS 15\n#define RFM95_INT 26\n"), extract.DefaultPinTable())
	require.NoError(t, err)

	out := Flowchart(topology.Wiring(pins))
	assert.Contains(t, out, `ESP -->|"SPI (CS=15)"| LORA`)
	assert.Contains(t, out, `ESP -->|"INT (INT=26)"| LORA`)
	assert.Contains(t, out, `ESP -->|"3-wire (IO=?, SCLK=?, CE=?)"| RTC`)
	assert.Contains(t, out, `ESP -->|"GPIO (DHT=?)"| DHT`)
	assert.Contains(t, out, `ESP -->|"UART (RX=?, TX=?)"| GPS`)
	assert.Contains(t, out, `LORA -->|"Antenna"| ANT`)
}

func TestClass(t *testing.T) {
	d := diagram.NewClassDiagram().
		Class("Radio", "-bool initialized", "+init()").
		Class("App").
		Uses("App", "Radio").
		MustBuild()

	want := `classDiagram
    class Radio {
        -bool initialized
        +init()
    }

    class App {
    }

    App --> Radio
`
	assert.Equal(t, want, Class(d))
}

func TestSequenceBlocks(t *testing.T) {
	out := Sequence(topology.GatewaySequence())

	assert.True(t, strings.HasPrefix(out, "sequenceDiagram\n    participant Main as main_gateway.ino\n"))
	assert.Contains(t, out, "    Main->>NI: Constructor\n")
	assert.Contains(t, out, "    RM-->>Main: true/false\n")
	assert.Contains(t, out, "    loop Main loop\n")
	assert.Contains(t, out, "        alt HELLO message\n            AL->>AL: handleHello()\n")
	assert.Contains(t, out, "        else DATA_ATMOSPHERIC message\n")

	ends := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "end" {
			ends++
		}
	}
	assert.Equal(t, 3, ends)
}

func TestSequenceEscapesStatementSeparators(t *testing.T) {
	s := diagram.NewSequence().
		Participant("A", "").
		Call("A", "A", "x; #1").
		MustBuild()
	assert.Contains(t, Sequence(s), "    participant A\n")
	assert.Contains(t, Sequence(s), "A->>A: x#59; #35;1\n")
}

func TestState(t *testing.T) {
	m := diagram.NewStateMachine("Idle", "Busy").
		Initial("Idle").
		On("Idle", "Busy", "request").
		MustBuild()
	assert.Equal(t, "stateDiagram-v2\n    [*] --> Idle\n    Idle --> Busy : request\n", State(m))
}

func TestDOT(t *testing.T) {
	out := DOT(topology.GatewayDOT())

	assert.True(t, strings.HasPrefix(out, "digraph \"GatewayFlow\" {\n    rankdir=TB;\n"))
	assert.Contains(t, out, `    node [shape=box, style=filled, fillcolor="lightblue"];`)
	assert.Contains(t, out, `    "start" [label="Start", shape=oval, fillcolor="lightgreen"];`)
	assert.Contains(t, out, `    "init" [label="Initialise ESP8266"];`)
	assert.Contains(t, out, `    "loop" [label="Main loop", shape=diamond, fillcolor="lightyellow"];`)
	assert.Contains(t, out, `    "loop" -> "finish" [label="Exit"];`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestDOTClustersAndQuoting(t *testing.T) {
	g := diagram.NewGraph("g", diagram.KindGraph, diagram.LeftRight).
		Cluster("c", `core "x"`).
		Node("a", "line1\nline2").
		EndCluster().
		Node("b", "B").
		Fill("b", "red").
		StyledEdge("a", "b", "", diagram.EdgeDotted).
		MustBuild()

	out := DOT(g)
	assert.Contains(t, out, "rankdir=LR;")
	assert.Contains(t, out, `    subgraph "cluster_c" {`)
	assert.Contains(t, out, `        label="core \"x\"";`)
	assert.Contains(t, out, `        "a" [label="line1\nline2", shape=box];`)
	assert.Contains(t, out, `    "b" [label="B", shape=box, style=filled, fillcolor="red"];`)
	assert.Contains(t, out, `    "a" -> "b" [style=dotted];`)
}

func TestFenced(t *testing.T) {
	assert.Equal(t, "# Flow\n\n```mermaid\nflowchart TD\n```\n", Fenced("Flow", TargetFlowchart, "flowchart TD"))
	assert.Equal(t, "```dot\ndigraph g {}\n```\n", Fenced("", TargetDOT, "digraph g {}\n"))
}

func TestFrontMatter(t *testing.T) {
	fm, err := FrontMatter("Board wiring")
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: Board wiring\n---\n\n", fm)

	fm, err = FrontMatter("a: b")
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: 'a: b'\n---\n\n", fm)
}

func TestComment(t *testing.T) {
	assert.Equal(t, "%% generated\n", Comment("generated"))
}

func TestMermaidID(t *testing.T) {
	assert.Equal(t, "a_b_c", mermaidID("a.b-c"))
	assert.Equal(t, "end_", mermaidID("end"))
	assert.Equal(t, "End_", mermaidID("End"))
}

func TestTargetLanguage(t *testing.T) {
	assert.Equal(t, "mermaid", TargetSequence.Language())
	assert.Equal(t, "dot", TargetDOT.Language())
	assert.Equal(t, "Graphviz DOT", TargetDOT.Describe())
}
