package topology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/firmdiag/internal/diagram"
	"github.com/julianshen/firmdiag/internal/extract"
)

func edgeLabels(g *diagram.Graph, from, to string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			out = append(out, e.Label)
		}
	}
	return out
}

func TestWiringWithRadioPinsOnly(t *testing.T) {
	pins, err := extract.ParsePins(strings.NewReader("#define RFM95_CS 15\n#define RFM95_INT 26\n"), extract.DefaultPinTable())
	require.NoError(t, err)

	g := Wiring(pins)

	assert.Equal(t, []string{"SPI (CS=15)", "INT (INT=26)"}, edgeLabels(g, "ESP", "LORA"))
	assert.Equal(t, []string{"3-wire (IO=?, SCLK=?, CE=?)"}, edgeLabels(g, "ESP", "RTC"))
	assert.Equal(t, []string{"GPIO (DHT=?)"}, edgeLabels(g, "ESP", "DHT"))
	assert.Equal(t, []string{"UART (RX=?, TX=?)"}, edgeLabels(g, "ESP", "GPS"))
}

func TestWiringNilBindingRendersPlaceholders(t *testing.T) {
	g := Wiring(nil)
	for _, e := range g.Edges {
		if e.From == "ESP" {
			assert.Contains(t, e.Label, extract.Unresolved)
		}
	}
	assert.Len(t, g.Nodes, 7)
}

func TestWiringFullBinding(t *testing.T) {
	g := Wiring(extract.PinBinding{
		extract.RoleClockIO:   "D4",
		extract.RoleClockSCLK: "D5",
		extract.RoleClockCE:   "D2",
		extract.RoleGPSRX:     "D6",
		extract.RoleGPSTX:     "D7",
	})
	assert.Equal(t, []string{"3-wire (IO=D4, SCLK=D5, CE=D2)"}, edgeLabels(g, "ESP", "RTC"))
	assert.Equal(t, []string{"UART (RX=D6, TX=D7)"}, edgeLabels(g, "ESP", "GPS"))
}

func TestFixedTopologiesAreValid(t *testing.T) {
	assert.NotPanics(t, func() {
		for _, g := range []*diagram.Graph{MainFlow(), AdvancedFlow(), CallGraph(), DataFlow(), GatewayDOT()} {
			require.NoError(t, g.Validate())
		}
		require.NoError(t, Classes().Validate())
		require.NoError(t, GatewaySequence().Validate())
		require.NoError(t, SystemStates().Validate())
	})
}

func TestAdvancedFlowHighlightsDecisions(t *testing.T) {
	g := AdvancedFlow()
	for _, n := range g.Nodes {
		if n.Shape == diagram.ShapeDiamond {
			assert.Equal(t, fillDecision, n.Fill, n.ID)
		}
	}
	plain := MainFlow()
	for _, n := range plain.Nodes {
		assert.Empty(t, n.Fill, n.ID)
	}
	assert.Equal(t, len(plain.Edges), len(g.Edges))
}

func TestCallGraphClusters(t *testing.T) {
	g := CallGraph()
	assert.Len(t, g.Clusters, 5)
	assert.Len(t, g.ClusterNodes("radiomanager"), 4)
}

func TestScenesAreValid(t *testing.T) {
	p := diagram.DefaultPalette()
	for _, s := range []*diagram.Scene{ArchitectureScene(p), DataFlowScene(p), VoltageReaderScene(p)} {
		assert.NoError(t, s.Validate(), s.Name)
		assert.NotNil(t, s.Title, s.Name)
	}
	assert.Len(t, DataFlowScene(p).Texts, 20)
	assert.Len(t, DataFlowScene(p).Arrows, 4)

	logo := ProjectLogo(p)
	require.NoError(t, logo.Validate())
	assert.Equal(t, 400, logo.Width)
	assert.Equal(t, 200, logo.Height)
}
