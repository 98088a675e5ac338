// Package topology provides the hand-authored diagrams of the gateway and
// field node. The node and edge sets describe the known hardware and
// firmware architecture and never depend on extraction results; only the
// wiring diagram is annotated with live pin bindings.
package topology

import "github.com/julianshen/firmdiag/internal/diagram"

// Fills used by the styled flowchart and the DOT export.
const (
	fillTerminal = "#90EE90"
	fillLoop     = "#FFE4B5"
	fillDecision = "#FFB6C1"
)

// gatewayFlow is the boot sequence and main loop of the gateway firmware.
func gatewayFlow(name string) *diagram.GraphBuilder {
	return diagram.NewGraph(name, diagram.KindFlowchart, diagram.TopDown).
		Shaped("start", "Start", diagram.ShapeStadium).
		Node("boot", "Initialise ESP8266").
		Node("wifi", "Turn WiFi off").
		Node("identity", "Initialise NodeIdentity").
		Node("radio", "Initialise RadioManager").
		Node("rtc", "Initialise RtcManager").
		Node("logic", "Initialise AppLogic").
		Node("begin", "AppLogic.begin").
		Node("loop", "Main loop").
		Shaped("pending", "Messages pending?", diagram.ShapeDiamond).
		Node("process", "Process messages").
		Shaped("atmosDue", "Atmospheric data due?", diagram.ShapeDiamond).
		Node("atmos", "Request atmospheric data").
		Shaped("groundDue", "Soil/GPS data due?", diagram.ShapeDiamond).
		Node("ground", "Request soil/GPS data").
		Shaped("announceDue", "ANNOUNCE due?", diagram.ShapeDiamond).
		Node("announce", "Send ANNOUNCE").
		Node("timers", "Update timers").
		Shaped("finish", "End", diagram.ShapeStadium).
		Chain("start", "boot", "wifi", "identity", "radio", "rtc", "logic", "begin", "loop").
		Edge("loop", "pending").
		LabeledEdge("pending", "process", "Yes").
		LabeledEdge("pending", "atmosDue", "No").
		Edge("process", "atmosDue").
		LabeledEdge("atmosDue", "atmos", "Yes").
		LabeledEdge("atmosDue", "groundDue", "No").
		Edge("atmos", "groundDue").
		LabeledEdge("groundDue", "ground", "Yes").
		LabeledEdge("groundDue", "announceDue", "No").
		Edge("ground", "announceDue").
		LabeledEdge("announceDue", "announce", "Yes").
		LabeledEdge("announceDue", "timers", "No").
		Edge("announce", "timers").
		Edge("timers", "loop").
		Edge("loop", "finish")
}

// MainFlow is the plain flowchart of the gateway program.
func MainFlow() *diagram.Graph {
	return gatewayFlow("main-flow").MustBuild()
}

// AdvancedFlow is MainFlow with terminals, the loop and every decision
// highlighted.
func AdvancedFlow() *diagram.Graph {
	return gatewayFlow("advanced-flow").
		Fill("start", fillTerminal).
		Fill("finish", fillTerminal).
		Fill("loop", fillLoop).
		Fill("pending", fillDecision).
		Fill("atmosDue", fillDecision).
		Fill("groundDue", fillDecision).
		Fill("announceDue", fillDecision).
		MustBuild()
}

// GatewayDOT is the condensed gateway flow exported for Graphviz. The main
// loop is drawn as a single decision with the per-iteration work chained
// behind it.
func GatewayDOT() *diagram.Graph {
	return diagram.NewGraph("GatewayFlow", diagram.KindGraph, diagram.TopBottom).
		Defaults(diagram.NodeDefaults{Shape: diagram.ShapeBox, Fill: "lightblue"}).
		Shaped("start", "Start", diagram.ShapeStadium).
		Node("init", "Initialise ESP8266").
		Node("wifi", "Turn WiFi off").
		Node("ni", "Initialise NodeIdentity").
		Node("rm", "Initialise RadioManager").
		Node("rtc", "Initialise RtcManager").
		Node("al", "Initialise AppLogic").
		Shaped("loop", "Main loop", diagram.ShapeDiamond).
		Node("process", "Process messages").
		Node("atmos", "Request atmospheric data").
		Node("ground", "Request soil/GPS data").
		Node("announce", "Send ANNOUNCE").
		Node("timer", "Update timers").
		Shaped("finish", "End", diagram.ShapeStadium).
		Fill("start", "lightgreen").
		Fill("finish", "lightgreen").
		Fill("loop", "lightyellow").
		Chain("start", "init", "wifi", "ni", "rm", "rtc", "al", "loop").
		Chain("loop", "process", "atmos", "ground", "announce", "timer", "loop").
		LabeledEdge("loop", "finish", "Exit").
		MustBuild()
}
