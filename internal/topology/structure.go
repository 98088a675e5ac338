package topology

import "github.com/julianshen/firmdiag/internal/diagram"

// Classes is the class structure of the gateway firmware.
func Classes() *diagram.ClassDiagram {
	return diagram.NewClassDiagram().
		Class("AppLogic",
			"-NodeIdentity nodeIdentity",
			"-RadioManager radio",
			"-RtcManager& rtc",
			"-uint8_t gatewayAddress",
			"+std::map atmosphericSamples",
			"+std::map groundGpsSamples",
			"+AppLogic()",
			"+begin()",
			"+update()",
			"-requestAtmosphericData()",
			"-requestGroundGpsData()",
		).
		Class("NodeIdentity",
			"-uint8_t nodeId",
			"-String macAddress",
			"-uint8_t gatewayAddr",
			"+NodeIdentity()",
			"+getNodeID()",
			"+getMacAddress()",
			"+validateKey()",
			"-calculateCRC8()",
			"-generateUniqueID()",
		).
		Class("RadioManager",
			"-RH_RF95 radio",
			"-RHMesh manager",
			"-uint8_t address",
			"-bool initialized",
			"+RadioManager()",
			"+init()",
			"+sendMessage()",
			"+recvMessage()",
			"+update()",
		).
		Class("RtcManager",
			"-RtcDS1302 rtc",
			"+RtcManager()",
			"+begin()",
			"+getDateTime()",
			"+setDateTime()",
			"+compareHsAndMs()",
		).
		Uses("AppLogic", "NodeIdentity", "RadioManager", "RtcManager").
		MustBuild()
}

// GatewaySequence is the start-up and main-loop interaction between the
// gateway components.
func GatewaySequence() *diagram.Sequence {
	return diagram.NewSequence().
		Participant("Main", "main_gateway.ino").
		Participant("NI", "NodeIdentity").
		Participant("RM", "RadioManager").
		Participant("RTCM", "RtcManager").
		Participant("AL", "AppLogic").
		Call("Main", "NI", "Constructor").
		Call("Main", "RM", "Constructor(identity.getNodeID())").
		Call("Main", "RTCM", "Constructor(RTC_DAT, RTC_CLK, RTC_RST)").
		Call("Main", "AL", "Constructor(identity, radio, rtc)").
		Call("Main", "RM", "init()").
		Reply("RM", "Main", "true/false").
		Call("Main", "RTCM", "begin()").
		Reply("RTCM", "Main", "true/false").
		Call("Main", "AL", "begin()").
		Loop("Main loop").
		Call("Main", "AL", "update()").
		Call("AL", "RM", "recvMessage()").
		Reply("RM", "AL", "message received").
		Alt("HELLO message").
		Call("AL", "AL", "handleHello()").
		Call("AL", "AL", "registerNewNode()").
		Else("DATA_ATMOSPHERIC message").
		Call("AL", "AL", "process atmospheric data").
		Else("DATA_GPS_GROUND message").
		Call("AL", "AL", "process soil/GPS data").
		End().
		Call("AL", "RTCM", "compareHsAndMs()").
		Reply("RTCM", "AL", "valid time").
		Alt("Atmospheric data due").
		Call("AL", "AL", "requestAtmosphericData()").
		Call("AL", "RM", "sendMessage(REQUEST_DATA_ATMOSPHERIC)").
		Else("Soil/GPS data due").
		Call("AL", "AL", "requestGroundGpsData()").
		Call("AL", "RM", "sendMessage(REQUEST_DATA_GPS_GROUND)").
		End().
		Call("AL", "AL", "timer()").
		Call("AL", "AL", "sendAnnounce()").
		End().
		MustBuild()
}

// CallGraph groups the main functions by owning component.
func CallGraph() *diagram.Graph {
	return diagram.NewGraph("call-graph", diagram.KindGraph, diagram.LeftRight).
		Cluster("main", "main_gateway.ino").
		Node("MAIN", "setup").
		Node("LOOP", "loop").
		EndCluster().
		Cluster("applogic", "AppLogic").
		Node("AL", "AppLogic").
		Node("BEGIN", "begin").
		Node("UPDATE", "update").
		Node("REQ_ATM", "requestAtmosphericData").
		Node("REQ_GRD", "requestGroundGpsData").
		Node("SEND_ANN", "sendAnnounce").
		EndCluster().
		Cluster("radiomanager", "RadioManager").
		Node("RM", "RadioManager").
		Node("INIT", "init").
		Node("SEND", "sendMessage").
		Node("RECV", "recvMessage").
		EndCluster().
		Cluster("nodeidentity", "NodeIdentity").
		Node("NI", "NodeIdentity").
		Node("GET_ID", "getNodeID").
		Node("GET_MAC", "getMacAddress").
		EndCluster().
		Cluster("rtcmanager", "RtcManager").
		Node("RTCM", "RtcManager").
		Node("BEGIN_RTC", "begin").
		Node("GET_TIME", "getDateTime").
		Node("COMPARE", "compareHsAndMs").
		EndCluster().
		Edge("MAIN", "AL").
		Edge("MAIN", "RM").
		Edge("MAIN", "NI").
		Edge("MAIN", "RTCM").
		Edge("LOOP", "UPDATE").
		Edge("UPDATE", "REQ_ATM").
		Edge("UPDATE", "REQ_GRD").
		Edge("UPDATE", "SEND_ANN").
		Edge("REQ_ATM", "SEND").
		Edge("REQ_GRD", "SEND").
		Edge("SEND_ANN", "SEND").
		Edge("UPDATE", "RECV").
		Edge("UPDATE", "COMPARE").
		Edge("AL", "NI").
		Edge("AL", "RM").
		Edge("AL", "RTCM").
		MustBuild()
}

// DataFlow shows how data moves from inputs through the gateway components
// to storage and outputs.
func DataFlow() *diagram.Graph {
	return diagram.NewGraph("data-flow", diagram.KindGraph, diagram.TopDown).
		Cluster("input", "Data input").
		Node("SENSORS", "Sensors").
		Node("RTC", "RTC DS1302").
		Node("RADIO", "LoRa radio").
		EndCluster().
		Cluster("processing", "Processing").
		Node("NI", "NodeIdentity").
		Node("RM", "RadioManager").
		Node("RTCM", "RtcManager").
		Node("AL", "AppLogic").
		EndCluster().
		Cluster("storage", "Storage").
		Node("ATMOS_DATA", "Atmospheric data").
		Node("GROUND_DATA", "Soil/GPS data").
		Node("CONFIG", "Configuration").
		EndCluster().
		Cluster("output", "Output").
		Node("SERIAL", "Serial monitor").
		Node("RADIO_OUT", "LoRa radio").
		Node("LOGS", "System logs").
		EndCluster().
		Edge("SENSORS", "AL").
		Edge("RTC", "RTCM").
		Edge("RADIO", "RM").
		Edge("AL", "ATMOS_DATA").
		Edge("AL", "GROUND_DATA").
		Edge("NI", "CONFIG").
		Edge("AL", "SERIAL").
		Edge("AL", "RADIO_OUT").
		Edge("AL", "LOGS").
		Fill("SENSORS", fillLoop).
		Fill("ATMOS_DATA", fillTerminal).
		Fill("GROUND_DATA", fillTerminal).
		Fill("SERIAL", fillDecision).
		Fill("RADIO_OUT", fillDecision).
		MustBuild()
}

// SystemStates is the gateway's operating state machine.
func SystemStates() *diagram.StateMachine {
	return diagram.NewStateMachine(
		"Initialising",
		"Configuring",
		"WaitingForNodes",
		"ProcessingMessages",
		"RequestingAtmosphericData",
		"ReceivingAtmosphericData",
		"RequestingSoilData",
		"ReceivingSoilData",
		"CommunicationError",
		"DataError",
		"Restarting",
	).
		Initial("Initialising").
		Go("Initialising", "Configuring").
		Go("Configuring", "WaitingForNodes").
		Go("WaitingForNodes", "ProcessingMessages").
		Go("ProcessingMessages", "RequestingAtmosphericData").
		Go("RequestingAtmosphericData", "ReceivingAtmosphericData").
		Go("ReceivingAtmosphericData", "RequestingSoilData").
		Go("RequestingSoilData", "ReceivingSoilData").
		Go("ReceivingSoilData", "WaitingForNodes").
		Go("WaitingForNodes", "CommunicationError").
		Go("CommunicationError", "WaitingForNodes").
		Go("ReceivingAtmosphericData", "DataError").
		Go("DataError", "RequestingAtmosphericData").
		Go("ReceivingSoilData", "DataError").
		Go("DataError", "RequestingSoilData").
		Go("WaitingForNodes", "Restarting").
		Go("Restarting", "Initialising").
		MustBuild()
}
