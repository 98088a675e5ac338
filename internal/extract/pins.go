package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
)

// PinRole names a logical hardware connection independent of the physical
// pin it is bound to.
type PinRole string

const (
	RoleRadioCS   PinRole = "LORA_CS"
	RoleRadioINT  PinRole = "LORA_INT"
	RoleClockIO   PinRole = "RTC_IO"
	RoleClockSCLK PinRole = "RTC_SCLK"
	RoleClockCE   PinRole = "RTC_CE"
	RoleHumidity  PinRole = "DHT22"
	RoleGPSRX     PinRole = "GPS_RX"
	RoleGPSTX     PinRole = "GPS_TX"
)

// Unresolved is the token shown for a role missing from the configuration.
const Unresolved = "?"

// ErrConfigMissing is returned when the pin configuration file cannot be
// opened. Diagrams that depend on pin data cannot be produced without it.
var ErrConfigMissing = errors.New("pin configuration file not available")

// PinMacro binds a role to the macro name expected in the configuration.
type PinMacro struct {
	Role  PinRole
	Macro string
}

// PinTable is the ordered role-to-macro table used by the pin extractor.
type PinTable []PinMacro

// DefaultPinTable returns the macro names used by the gateway firmware.
func DefaultPinTable() PinTable {
	return PinTable{
		{RoleRadioCS, "RFM95_CS"},
		{RoleRadioINT, "RFM95_INT"},
		{RoleClockIO, "RTC_DAT"},
		{RoleClockSCLK, "RTC_CLK"},
		{RoleClockCE, "RTC_RST"},
		{RoleHumidity, "DHT_PIN"},
		{RoleGPSRX, "GPS_RX"},
		{RoleGPSTX, "GPS_TX"},
	}
}

// WithOverrides returns a copy of t where roles present in overrides use the
// given macro name instead.
func (t PinTable) WithOverrides(overrides map[string]string) PinTable {
	out := make(PinTable, len(t))
	copy(out, t)
	for i := range out {
		if m, ok := overrides[string(out[i].Role)]; ok && m != "" {
			out[i].Macro = m
		}
	}
	return out
}

// PinBinding maps roles to the physical pin token found in the configuration.
type PinBinding map[PinRole]string

// Resolve returns the token bound to role, or Unresolved.
func (b PinBinding) Resolve(role PinRole) string {
	if v, ok := b[role]; ok {
		return v
	}
	return Unresolved
}

// Missing lists the roles of table that have no binding, in table order.
func (b PinBinding) Missing(table PinTable) []PinRole {
	var out []PinRole
	for _, pm := range table {
		if _, ok := b[pm.Role]; !ok {
			out = append(out, pm.Role)
		}
	}
	return out
}

type pinMatcher struct {
	role PinRole
	re   *regexp.Regexp
}

func compileTable(table PinTable) []pinMatcher {
	matchers := make([]pinMatcher, 0, len(table))
	for _, pm := range table {
		matchers = append(matchers, pinMatcher{
			role: pm.Role,
			re:   regexp.MustCompile(`^#define\s+` + regexp.QuoteMeta(pm.Macro) + `\s+(\w+)`),
		})
	}
	return matchers
}

// ParsePins scans r line by line. Every table entry is tested against every
// line and a later definition of the same macro overwrites an earlier one.
func ParsePins(r io.Reader, table PinTable) (PinBinding, error) {
	matchers := compileTable(table)
	pins := make(PinBinding)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		for _, m := range matchers {
			if sub := m.re.FindStringSubmatch(line); sub != nil {
				pins[m.role] = sub[1]
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading pin configuration: %w", err)
	}
	return pins, nil
}

// ExtractPins opens the configuration file at path and parses it with table.
func ExtractPins(path string, table PinTable) (PinBinding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigMissing, path, err)
	}
	defer f.Close()
	return ParsePins(f, table)
}
