package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSelectModel_Enter(t *testing.T) {
	m := newSelectModel("Select your network", []string{"HomeNet", "Cafe", "Campus"})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(selectModel)

	if m.chosen != 1 {
		t.Errorf("expected option 1 to be chosen, got %d", m.chosen)
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestSelectModel_Cancel(t *testing.T) {
	m := newSelectModel("Select your station", []string{"wlan0", "wlan1"})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(selectModel)

	if !m.canceled {
		t.Error("expected the picker to be canceled")
	}
	if m.chosen != -1 {
		t.Errorf("expected nothing chosen, got %d", m.chosen)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestInputModel_Secret(t *testing.T) {
	m := newInputModel("Password", true)

	var model tea.Model = m
	for _, r := range "hunter2" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if view := model.View(); strings.Contains(view, "hunter2") {
		t.Errorf("secret input leaked into view: %q", view)
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(inputModel)
	if !m.done {
		t.Error("expected input to be done")
	}
	if got := m.input.Value(); got != "hunter2" {
		t.Errorf("expected value %q, got %q", "hunter2", got)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestInputModel_Cancel(t *testing.T) {
	m := newInputModel("Is there a password? Y/n", false)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !model.(inputModel).canceled {
		t.Error("expected input to be canceled")
	}
}
