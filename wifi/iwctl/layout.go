package iwctl

// Columns is a half-open byte range [Start, End) of a table row.
type Columns struct {
	Start int
	End   int
}

// slice returns the columns of line, clamped to its length.
func (c Columns) slice(line string) string {
	start, end := c.Start, c.End
	if end > len(line) {
		end = len(line)
	}
	if start > end {
		return ""
	}
	return line[start:end]
}

// rest returns everything in line after the columns.
func (c Columns) rest(line string) string {
	if c.End >= len(line) {
		return ""
	}
	return line[c.End:]
}

// FirstRow describes the row right below the table header. iwctl prefixes
// the connected network with a marker glyph, which moves the name column.
type FirstRow struct {
	Name         Columns
	MarkerOffset int
	Marker       byte
	Marked       Columns
}

// Layout describes one of the fixed-width tables printed by iwctl. Offsets
// are in bytes of the raw output, colour escape sequences included.
type Layout struct {
	// MinWidth is the shortest line that can hold a data row.
	MinWidth int
	// HeaderRows are skipped by line number, whatever their content.
	HeaderRows int
	// Name is the column of the record name for data rows.
	Name Columns
	// First overrides Name for the first data row, if set.
	First *FirstRow
}

// columns returns the name columns of the line at lineno, and whether the
// line carries the first-row marker.
func (l Layout) columns(lineno int, line string) (Columns, bool) {
	if l.First == nil || lineno != l.HeaderRows {
		return l.Name, false
	}
	f := l.First
	if f.MarkerOffset < len(line) && line[f.MarkerOffset] == f.Marker {
		return f.Marked, true
	}
	return f.Name, false
}

// ScanningMarker flags a station with a scan in progress.
const ScanningMarker = "scanning"

// StationLayout is the table printed by `iwctl station list`.
var StationLayout = Layout{
	MinWidth:   26,
	HeaderRows: 4,
	Name:       Columns{Start: 6, End: 20},
}

// NetworkLayout is the table printed by `iwctl station <name> get-networks`.
var NetworkLayout = Layout{
	MinWidth:   26,
	HeaderRows: 4,
	Name:       Columns{Start: 6, End: 36},
	First: &FirstRow{
		Name:         Columns{Start: 10, End: 42},
		MarkerOffset: 13,
		Marker:       '>',
		Marked:       Columns{Start: 21, End: 53},
	},
}
