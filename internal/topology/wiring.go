package topology

import (
	"fmt"

	"github.com/julianshen/firmdiag/internal/diagram"
	"github.com/julianshen/firmdiag/internal/extract"
)

// Wiring is the board connection diagram. The node set is fixed; each bus
// edge is labelled with the pins resolved from the board configuration,
// with extract.Unresolved standing in for any role the configuration does
// not define.
func Wiring(pins extract.PinBinding) *diagram.Graph {
	pin := pins.Resolve
	return diagram.NewGraph("board-wiring", diagram.KindGraph, diagram.TopDown).
		Node("ESP", "ESP8266 / ESP32").
		Node("LORA", "LoRa SX1278").
		Node("RTC", "RTC DS1302").
		Node("DHT", "DHT22 sensor").
		Node("GPS", "GPS Neo-6M").
		Node("POWER", "Power supply").
		Node("ANT", "433 MHz antenna").
		Edge("POWER", "ESP").
		LabeledEdge("ESP", "LORA", fmt.Sprintf("SPI (CS=%s)", pin(extract.RoleRadioCS))).
		LabeledEdge("ESP", "LORA", fmt.Sprintf("INT (INT=%s)", pin(extract.RoleRadioINT))).
		LabeledEdge("ESP", "RTC", fmt.Sprintf("3-wire (IO=%s, SCLK=%s, CE=%s)",
			pin(extract.RoleClockIO), pin(extract.RoleClockSCLK), pin(extract.RoleClockCE))).
		LabeledEdge("ESP", "DHT", fmt.Sprintf("GPIO (DHT=%s)", pin(extract.RoleHumidity))).
		LabeledEdge("ESP", "GPS", fmt.Sprintf("UART (RX=%s, TX=%s)",
			pin(extract.RoleGPSRX), pin(extract.RoleGPSTX))).
		LabeledEdge("LORA", "ANT", "Antenna").
		MustBuild()
}
