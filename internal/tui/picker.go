package tui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	pickerWidth     = 72
	pickerMaxHeight = 20
)

// selectModel lets the user pick one option from a list.
type selectModel struct {
	list     list.Model
	chosen   int
	canceled bool
}

func newSelectModel(title string, options []string) selectModel {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = optionItem{index: i, label: o}
	}
	height := len(options) + 6
	if height > pickerMaxHeight {
		height = pickerMaxHeight
	}
	l := list.New(items, optionDelegate{}, pickerWidth, height)
	l.Title = title
	l.Styles.Title = lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	l.SetShowStatusBar(false)
	return selectModel{list: l, chosen: -1}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height
		if height > pickerMaxHeight {
			height = pickerMaxHeight
		}
		m.list.SetSize(msg.Width, height)
		return m, nil
	case tea.KeyMsg:
		// While filtering, keys belong to the filter input.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(optionItem); ok {
				m.chosen = item.index
			}
			return m, tea.Quit
		case "esc", "ctrl+c", "q":
			m.canceled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	return m.list.View()
}

// inputModel reads one line of text.
type inputModel struct {
	input    textinput.Model
	done     bool
	canceled bool
}

func newInputModel(label string, secret bool) inputModel {
	ti := textinput.New()
	ti.Prompt = label + ": "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Primary)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()
	return inputModel{input: ti}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.canceled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return m.input.View() + "\n"
}

// Prompter asks questions with full-screen pickers instead of plain lines.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompter) run(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithInput(p.In), tea.WithOutput(p.Out)).Run()
}

// Select shows options in a list and returns the chosen index as text.
// Leaving the list returns io.EOF.
func (p Prompter) Select(label string, options []string) (string, error) {
	final, err := p.run(newSelectModel(label, options))
	if err != nil {
		return "", fmt.Errorf("picker failed: %w", err)
	}
	m := final.(selectModel)
	if m.canceled || m.chosen < 0 {
		return "", io.EOF
	}
	return strconv.Itoa(m.chosen), nil
}

// Input reads a line of text, hiding it when secret is set.
func (p Prompter) Input(label string, secret bool) (string, error) {
	final, err := p.run(newInputModel(label, secret))
	if err != nil {
		return "", fmt.Errorf("input failed: %w", err)
	}
	m := final.(inputModel)
	if m.canceled {
		return "", io.EOF
	}
	return m.input.Value(), nil
}
