package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/shazow/iwconnect/wifi"
)

// Styles renders stations and networks for one output.
type Styles struct {
	r *lipgloss.Renderer
}

// NewStyles returns Styles for w. Colours are dropped when w is not a
// terminal.
func NewStyles(w io.Writer) Styles {
	return Styles{r: lipgloss.NewRenderer(w)}
}

func (s Styles) fg(c lipgloss.TerminalColor) lipgloss.Style {
	return s.r.NewStyle().Foreground(c)
}

// Index renders a list index.
func (s Styles) Index(i int) string {
	return s.fg(CurrentTheme.Primary).Render(fmt.Sprint(i))
}

// Error renders a message in the error colour.
func (s Styles) Error(msg string) string {
	return s.fg(CurrentTheme.Error).Render(msg)
}

// Success renders a message in the success colour.
func (s Styles) Success(msg string) string {
	return s.fg(CurrentTheme.Success).Render(msg)
}

// Station renders a station for a selection list.
func (s Styles) Station(st wifi.Station) string {
	var parts []string
	if st.State != "" {
		parts = append(parts, st.State)
	}
	if st.Scanning {
		parts = append(parts, "scanning")
	}
	if len(parts) == 0 {
		return st.Name
	}
	return st.Name + "  " + s.fg(CurrentTheme.Subtle).Render(strings.Join(parts, ", "))
}

// Network renders a network for a selection list.
func (s Styles) Network(n wifi.Network) string {
	line := n.SSID + "  " + s.Signal(n)
	if n.Security != wifi.SecurityUnknown {
		line += " " + s.fg(CurrentTheme.Subtle).Render(n.Security.String())
	}
	if n.IsActive {
		line += " " + s.fg(CurrentTheme.Success).Render("(connected)")
	}
	return line
}

// Signal renders the signal bars, lit bars coloured by strength.
func (s Styles) Signal(n wifi.Network) string {
	bars := []rune(CurrentTheme.SignalBars)
	lit := int(n.Signal)
	if lit > len(bars) {
		lit = len(bars)
	}

	high, low := CurrentTheme.SignalHigh.Light, CurrentTheme.SignalLow.Light
	if s.r.HasDarkBackground() {
		high, low = CurrentTheme.SignalHigh.Dark, CurrentTheme.SignalLow.Dark
	}
	start, _ := colorful.Hex(low)
	end, _ := colorful.Hex(high)
	blend := start.BlendRgb(end, float64(n.Strength())/100.0)

	return s.fg(lipgloss.Color(blend.Hex())).Render(string(bars[:lit])) +
		s.fg(CurrentTheme.Subtle).Render(string(bars[lit:]))
}

// optionItem is one choice in the picker list.
type optionItem struct {
	index int
	label string
}

func (i optionItem) FilterValue() string { return i.label }

// optionDelegate draws options on a single line with a cursor.
type optionDelegate struct{}

func (d optionDelegate) Height() int                             { return 1 }
func (d optionDelegate) Spacing() int                            { return 0 }
func (d optionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d optionDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(optionItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render("▶ ")+i.label)
		return
	}
	fmt.Fprint(w, "  "+i.label)
}
