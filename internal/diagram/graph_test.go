package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphBuilderBuildsClusters(t *testing.T) {
	g, err := NewGraph("calls", KindGraph, TopDown).
		Cluster("node", "Field node").
		Node("setup", "setup()").
		Node("loop", "loop()").
		EndCluster().
		Node("radio", "Radio").
		Chain("setup", "loop", "radio").
		Build()
	require.NoError(t, err)

	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 2)
	assert.Len(t, g.ClusterNodes("node"), 2)
	radio, ok := g.Node("radio")
	require.True(t, ok)
	assert.Empty(t, radio.Cluster)
	assert.Equal(t, ShapeBox, radio.Shape)
}

func TestGraphValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *GraphBuilder
		wantErr string
	}{
		{
			name: "edge to unknown node",
			build: func() *GraphBuilder {
				return NewGraph("g", KindFlowchart, TopDown).Node("a", "A").Edge("a", "b")
			},
			wantErr: "unknown target",
		},
		{
			name: "edge from unknown node",
			build: func() *GraphBuilder {
				return NewGraph("g", KindFlowchart, TopDown).Node("b", "B").Edge("a", "b")
			},
			wantErr: "unknown source",
		},
		{
			name: "duplicate node",
			build: func() *GraphBuilder {
				return NewGraph("g", KindFlowchart, TopDown).Node("a", "A").Node("a", "again")
			},
			wantErr: "duplicate node",
		},
		{
			name: "fill unknown node",
			build: func() *GraphBuilder {
				return NewGraph("g", KindFlowchart, TopDown).Node("a", "A").Fill("z", "#FFFFFF")
			},
			wantErr: "fill for unknown node",
		},
		{
			name: "duplicate cluster",
			build: func() *GraphBuilder {
				return NewGraph("g", KindGraph, LeftRight).Cluster("c", "C").EndCluster().Cluster("c", "C")
			},
			wantErr: "duplicate cluster",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGraphBuildCopiesSlices(t *testing.T) {
	b := NewGraph("g", KindFlowchart, TopDown).Node("a", "A")
	g := b.MustBuild()
	b.Node("b", "B")
	assert.Len(t, g.Nodes, 1)
}

func TestMustBuildPanicsOnInvalidGraph(t *testing.T) {
	assert.Panics(t, func() {
		NewGraph("g", KindFlowchart, TopDown).Edge("x", "y").MustBuild()
	})
}

func TestClassDiagram(t *testing.T) {
	d, err := NewClassDiagram().
		Class("Radio", "+begin()", "-state", "send()").
		Class("Gateway").
		Uses("Gateway", "Radio").
		Build()
	require.NoError(t, err)

	require.Len(t, d.Classes[0].Members, 3)
	assert.Equal(t, Member{Visibility: Public, Text: "begin()"}, d.Classes[0].Members[0])
	assert.Equal(t, Member{Visibility: Private, Text: "state"}, d.Classes[0].Members[1])
	assert.Equal(t, Member{Visibility: Public, Text: "send()"}, d.Classes[0].Members[2])

	_, err = NewClassDiagram().Class("A").Uses("A", "B").Build()
	assert.Error(t, err)
}

func TestSequenceBlocksNest(t *testing.T) {
	s, err := NewSequence().
		Participant("N", "Node").
		Participant("G", "Gateway").
		Loop("every cycle").
		Call("N", "G", "data").
		Alt("ok").
		Reply("G", "N", "ACK").
		Else("lost").
		Call("N", "G", "retry").
		End().
		End().
		Build()
	require.NoError(t, err)

	require.Len(t, s.Steps, 1)
	loop, ok := s.Steps[0].(Block)
	require.True(t, ok)
	assert.Equal(t, BlockLoop, loop.Kind)
	require.Len(t, loop.Branches[0].Steps, 2)
	alt, ok := loop.Branches[0].Steps[1].(Block)
	require.True(t, ok)
	assert.Len(t, alt.Branches, 2)
}

func TestSequenceValidation(t *testing.T) {
	_, err := NewSequence().Participant("A", "").Loop("x").Build()
	assert.ErrorContains(t, err, "unclosed")

	_, err = NewSequence().Participant("A", "").Call("A", "B", "hi").Build()
	assert.ErrorContains(t, err, "unknown participant")
}

func TestStateMachine(t *testing.T) {
	m, err := NewStateMachine("Init", "Idle").
		Initial("Init").
		On("Init", "Idle", "ready").
		Go("Idle", Terminal).
		Build()
	require.NoError(t, err)
	assert.Len(t, m.Transitions, 3)

	_, err = NewStateMachine("Init").Go("Init", "Typo").Build()
	assert.ErrorContains(t, err, "unknown state")
}

func TestSceneValidate(t *testing.T) {
	s := Scene{Name: "s", Width: 10, Height: 5}
	require.NoError(t, s.Validate())

	s.Boxes = []Box{{W: 0, H: 1}}
	assert.Error(t, s.Validate())

	s = Scene{Name: "s", Width: 10, Height: 5, Arrows: []Arrow{{From: Point{1, 1}, To: Point{1, 1}}}}
	assert.ErrorContains(t, s.Validate(), "zero length")

	assert.Error(t, (&Scene{}).Validate())
}

func TestPaletteHex(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, "#2E86AB", Hex(p.Primary))
	assert.Equal(t, "#A23B72", Hex(p.Secondary))
	assert.Equal(t, "#F18F01", Hex(p.Accent))
	assert.Equal(t, "#1A1A1A", Hex(p.Dark))
	assert.Equal(t, uint8(230), WithAlpha(p.Primary, 0.9).A)
}
