package topology

import (
	"image/color"

	"github.com/julianshen/firmdiag/internal/diagram"
)

const componentAlpha = 0.9

func component(p diagram.Palette, x, y, w, h float64, fill color.NRGBA, label string, size float64) diagram.Box {
	return diagram.Box{
		Min:         diagram.Point{X: x, Y: y},
		W:           w,
		H:           h,
		Radius:      0.15,
		Fill:        diagram.WithAlpha(fill, componentAlpha),
		Stroke:      p.Dark,
		StrokeWidth: 2,
		Label:       label,
		LabelStyle:  diagram.Style{Size: size, Color: p.White, Bold: true},
	}
}

func title(p diagram.Palette, x, y float64, text string, size float64) *diagram.Text {
	return &diagram.Text{
		At:     diagram.Point{X: x, Y: y},
		Text:   text,
		Anchor: diagram.AnchorCenter,
		Style:  diagram.Style{Size: size, Color: p.Dark, Bold: true},
	}
}

func arrow(from, to diagram.Point, c color.NRGBA, width float64) diagram.Arrow {
	return diagram.Arrow{From: from, To: to, Color: c, Width: width, HeadSize: 0.18}
}

func specBlock(p diagram.Palette, x, y, leading float64, lines ...string) *diagram.SpecBlock {
	return &diagram.SpecBlock{
		Origin:  diagram.Point{X: x, Y: y},
		Leading: leading,
		Lines:   lines,
		Style:   diagram.Style{Size: 9, Color: p.Dark},
	}
}

// ArchitectureScene is the system overview: field node with its sensors,
// the LoRa link to the gateway, and the gateway uplink.
func ArchitectureScene(p diagram.Palette) *diagram.Scene {
	s := &diagram.Scene{
		Name:       "architecture",
		Width:      16,
		Height:     12,
		Background: p.White,
		Title:      title(p, 8, 11.5, "AGRICULTURAL MONITORING SYSTEM - FULL ARCHITECTURE", 20),
		Boxes: []diagram.Box{
			component(p, 1, 7, 6, 3, p.Primary, "FIELD NODE\nESP32", 14),
			component(p, 9, 7, 6, 3, p.Secondary, "CENTRAL GATEWAY\nESP32", 14),
			component(p, 9, 3, 6, 2, p.Success, "INTERNET\nWEB DASHBOARD", 12),
		},
		Spec: specBlock(p, 0.5, 3.5, 0.4,
			"LoRa: 433 MHz, 20 dBm, 10 km range",
			"Sensors: -40°C to +80°C, ±0.5°C accuracy",
			"Soil: NPK, pH 3-9, EC 0-5000 μS/cm",
			"Power: 7 days autonomy, 12V/7Ah",
			"Processing: ESP32 dual-core 240 MHz",
			"Consumption: 120 mA active, 5 mA sleep",
		),
		Legend: &diagram.Legend{
			TopRight: diagram.Point{X: 15.7, Y: 11.75},
			Items: []diagram.LegendItem{
				{Label: "Field node", Color: p.Primary},
				{Label: "Central gateway", Color: p.Secondary},
				{Label: "Internet/Dashboard", Color: p.Success},
				{Label: "Sensors", Color: p.Accent},
				{Label: "Communication", Color: p.Info},
			},
			Style: diagram.Style{Size: 10, Color: p.Dark},
		},
	}

	sensors := []struct {
		label string
		x     float64
		fill  color.NRGBA
	}{
		{"DHT", 0.5, p.Secondary},
		{"NPK/pH/EC", 2.5, p.Accent},
		{"GPS", 4.5, p.Success},
		{"VoltageReader", 6.5, p.Info},
	}
	for _, sn := range sensors {
		s.Circles = append(s.Circles, diagram.Circle{
			Center:      diagram.Point{X: sn.x, Y: 5.5},
			R:           0.4,
			Fill:        diagram.WithAlpha(sn.fill, 0.8),
			Stroke:      p.Dark,
			StrokeWidth: 1,
			Label:       sn.label,
			LabelStyle:  diagram.Style{Size: 10, Color: p.White, Bold: true},
		})
	}

	link := arrow(diagram.Point{X: 7, Y: 8.5}, diagram.Point{X: 9, Y: 8.5}, p.Accent, 3)
	link.Heads = diagram.HeadBoth
	link.Label = "LoRa Mesh\n433 MHz"
	link.LabelAt = &diagram.Point{X: 8, Y: 9.2}
	link.LabelStyle = diagram.Style{Size: 10, Color: p.Accent, Bold: true}
	s.Arrows = append(s.Arrows,
		link,
		arrow(diagram.Point{X: 12, Y: 7}, diagram.Point{X: 12, Y: 5}, p.Success, 2),
	)
	return s
}

// DataFlowScene is the measurement pipeline from sensors to radio, with the
// details of each stage listed underneath.
func DataFlowScene(p diagram.Palette) *diagram.Scene {
	s := &diagram.Scene{
		Name:       "data-flow",
		Width:      16,
		Height:     10,
		Background: p.White,
		Title:      title(p, 8, 9.5, "DATA FLOW - AGRICULTURAL MONITORING SYSTEM", 18),
		Spec: specBlock(p, 0.5, 2.5, 0.3,
			"Sampling rate: 1 Hz",
			"ADC resolution: 12 bits (0-4095)",
			"Response time: <2 seconds",
			"Transmission rate: 0.3-37.5 kbps",
			"Power draw: 120 mA active",
			"Communication range: 10 km",
		),
	}

	stages := []struct {
		label string
		x     float64
		fill  color.NRGBA
	}{
		{"PHYSICAL\nSENSORS", 1, p.Primary},
		{"ADC\nPROCESSING", 4, p.Secondary},
		{"FILTERING\nCALIBRATION", 7, p.Accent},
		{"STORAGE\nBUFFER", 10, p.Success},
		{"LoRa\nTRANSMISSION", 13, p.Info},
	}
	const y = 7.5
	for i, st := range stages {
		s.Boxes = append(s.Boxes, component(p, st.x-1, y-0.8, 2, 1.6, st.fill, st.label, 10))
		if i < len(stages)-1 {
			s.Arrows = append(s.Arrows, arrow(
				diagram.Point{X: st.x + 1, Y: y},
				diagram.Point{X: stages[i+1].x - 1, Y: y},
				p.Dark, 2))
		}
	}

	details := [][]string{
		{"DHT (temp/hum)", "NPK/pH/EC", "GPS NEO-6M", "VoltageReader"},
		{"12-bit ADC", "Range 0-4095", "11 dB attenuation", "A/D conversion"},
		{"Moving average", "Offset calibration", "Range validation", "Noise filtering"},
		{"Ring buffer", "8 atm. samples", "Soil/GPS data", "Timestamp"},
		{"LoRa 433 MHz", "Mesh routing", "ACK/Retry", "Gateway"},
	}
	backdrop := diagram.WithAlpha(p.Light, 0.7)
	for i, row := range details {
		for j, d := range row {
			s.Texts = append(s.Texts, diagram.Text{
				At:       diagram.Point{X: 1 + float64(j)*3.5, Y: 5.5 - float64(i)*0.8},
				Text:     d,
				Anchor:   diagram.AnchorMiddle,
				Style:    diagram.Style{Size: 8, Color: p.Dark},
				Backdrop: &backdrop,
			})
		}
	}
	return s
}

// VoltageReaderScene is the battery voltage divider detail with a usage
// example of the driver.
func VoltageReaderScene(p diagram.Palette) *diagram.Scene {
	s := &diagram.Scene{
		Name:       "voltage-reader",
		Width:      14,
		Height:     10,
		Background: p.White,
		Title:      title(p, 7, 9.5, "VOLTAGE READER - ESP32 RESISTIVE DIVIDER", 16),
		Boxes: []diagram.Box{
			component(p, 1, 7, 2, 1.5, p.Primary, "INPUT\n0-15V", 10),
			component(p, 4, 6.5, 3, 2.5, p.Secondary, "RESISTIVE\nDIVIDER\nR1 + R2", 10),
			component(p, 8, 7, 2, 1.5, p.Accent, "ESP32 ADC\nPin 34", 10),
			component(p, 11, 7, 2, 1.5, p.Success, "PROCESSING\nVoltageReader", 10),
		},
		Spec: specBlock(p, 0.5, 5.5, 0.4,
			"Input range: 0-15V",
			"Output range: 0-2.5V",
			"ADC resolution: 12 bits (0-4095)",
			"Accuracy: ±0.1V",
			"Filtering: 8-sample moving average",
			"Calibration: offset and slope",
			"Mapping: optimised Arduino map()",
		),
	}
	for _, x := range [][2]float64{{3, 4}, {7, 8}, {10, 11}} {
		s.Arrows = append(s.Arrows, arrow(
			diagram.Point{X: x[0], Y: 7.75},
			diagram.Point{X: x[1], Y: 7.75},
			p.Dark, 2))
	}

	code := []string{
		"VoltageReader voltageReader;",
		"voltageReader.begin();",
		"voltageReader.calibrate(0.0, 2.5);",
		"float voltage = voltageReader.readVoltage();",
		"float percentage = voltageReader.readVoltagePercentage();",
		"int mapped = voltageReader.readVoltageMappedInt(0, 100);",
	}
	backdrop := diagram.WithAlpha(p.Light, 0.7)
	for i, line := range code {
		s.Texts = append(s.Texts, diagram.Text{
			At:       diagram.Point{X: 7, Y: 4.5 - float64(i)*0.3},
			Text:     line,
			Style:    diagram.Style{Size: 8, Color: p.Dark, Mono: true},
			Backdrop: &backdrop,
		})
	}
	return s
}

// ProjectLogo is the 400x200 project mark: a node with its antenna, three
// sensor dots and the project name.
func ProjectLogo(p diagram.Palette) *diagram.Logo {
	l := &diagram.Logo{
		Width:      400,
		Height:     200,
		Background: p.Primary,
		Circles: []diagram.Circle{
			{Center: diagram.Point{X: 100, Y: 100}, R: 50, Fill: p.Secondary, Stroke: p.White, StrokeWidth: 3},
		},
		Lines: []diagram.Arrow{
			{From: diagram.Point{X: 100, Y: 30}, To: diagram.Point{X: 100, Y: 50}, Color: p.Accent, Width: 4, Heads: diagram.HeadNone},
			{From: diagram.Point{X: 90, Y: 30}, To: diagram.Point{X: 110, Y: 30}, Color: p.Accent, Width: 4, Heads: diagram.HeadNone},
		},
	}
	for i, c := range []color.NRGBA{p.Success, p.Info, p.Warning} {
		at := [...]diagram.Point{{X: 180, Y: 80}, {X: 220, Y: 80}, {X: 200, Y: 120}}[i]
		l.Circles = append(l.Circles, diagram.Circle{Center: at, R: 15, Fill: c, Stroke: p.White, StrokeWidth: 2})
	}

	heading := diagram.Style{Size: 16, Color: p.White, Bold: true}
	l.Texts = []diagram.Text{
		{At: diagram.Point{X: 245, Y: 55}, Text: "AGRICULTURAL", Style: heading},
		{At: diagram.Point{X: 245, Y: 82}, Text: "MONITORING", Style: heading},
		{At: diagram.Point{X: 245, Y: 109}, Text: "SYSTEM", Style: heading},
		{At: diagram.Point{X: 245, Y: 145}, Text: "IoT LoRa Mesh", Style: diagram.Style{Size: 14, Color: p.Accent}},
	}
	return l
}
