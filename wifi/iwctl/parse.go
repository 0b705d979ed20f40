package iwctl

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/shazow/iwconnect/wifi"
)

// Warning reports a line the parser could not turn into a record.
type Warning struct {
	Line   int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}

// byLine orders warnings as the lines appear in the table.
func byLine(warnings []Warning) []Warning {
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Line < warnings[j].Line
	})
	return warnings
}

// row is a data row cut out of a table.
type row struct {
	lineno int
	line   string
	name   string
	rest   string
	marked bool
}

// splitRows applies the layout to text and returns the data rows in order.
func splitRows(text string, layout Layout) ([]row, []Warning) {
	var rows []row
	var warnings []Warning
	for i, line := range strings.Split(text, "\n") {
		if len(line) < layout.MinWidth {
			if i >= layout.HeaderRows && strings.TrimSpace(ansi.Strip(line)) != "" {
				warnings = append(warnings, Warning{Line: i, Reason: fmt.Sprintf("short line (%d bytes)", len(line))})
			}
			continue
		}
		if i < layout.HeaderRows {
			continue
		}
		cols, marked := layout.columns(i, line)
		name := cols.slice(line)
		if !utf8.ValidString(name) {
			warnings = append(warnings, Warning{Line: i, Reason: "name column cuts a multi-byte character"})
			name = strings.ToValidUTF8(name, "")
		}
		rows = append(rows, row{
			lineno: i,
			line:   line,
			name:   ansi.Strip(name),
			rest:   cols.rest(line),
			marked: marked,
		})
	}
	return rows, warnings
}

// ParseStations parses the output of `iwctl station list`.
func ParseStations(text string) ([]wifi.Station, []Warning) {
	rows, warnings := splitRows(text, StationLayout)
	stations := make([]wifi.Station, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.name)
		if name == "" {
			warnings = append(warnings, Warning{Line: r.lineno, Reason: "empty station name"})
			continue
		}
		stations = append(stations, wifi.Station{
			Name:     name,
			Scanning: strings.Contains(r.line, ScanningMarker),
			State:    stationState(r.rest),
		})
	}
	return stations, byLine(warnings)
}

func stationState(rest string) string {
	fields := strings.Fields(ansi.Strip(rest))
	if len(fields) == 0 || fields[0] == ScanningMarker {
		return ""
	}
	return fields[0]
}

// ParseNetworks parses the output of `iwctl station <name> get-networks`.
func ParseNetworks(text string) ([]wifi.Network, []Warning) {
	rows, warnings := splitRows(text, NetworkLayout)
	networks := make([]wifi.Network, 0, len(rows))
	for _, r := range rows {
		ssid := strings.TrimSpace(strings.Split(r.name, "  ")[0])
		if ssid == "" {
			warnings = append(warnings, Warning{Line: r.lineno, Reason: "empty network name"})
			continue
		}
		n := wifi.Network{
			SSID:     ssid,
			IsActive: r.marked,
		}
		n.Security, n.Signal = networkDetails(r.rest)
		networks = append(networks, n)
	}
	return networks, byLine(warnings)
}

// dimSignal is the escape sequence iwctl uses to grey out unlit signal bars.
const dimSignal = "\x1b[1;90m"

// networkDetails reads the security and signal columns that follow the name.
func networkDetails(rest string) (wifi.SecurityType, uint8) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return wifi.SecurityUnknown, 0
	}
	security := wifi.ParseSecurityType(ansi.Strip(fields[0]))
	if len(fields) < 2 {
		return security, 0
	}
	bars := fields[len(fields)-1]
	if i := strings.Index(bars, dimSignal); i >= 0 {
		bars = bars[:i]
	}
	signal := strings.Count(ansi.Strip(bars), "*")
	if signal > wifi.MaxSignal {
		signal = wifi.MaxSignal
	}
	return security, uint8(signal)
}
