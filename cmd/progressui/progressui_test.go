package progressui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModel_Update(t *testing.T) {
	var m tea.Model = newModel(nil)

	m, _ = m.Update(statusMsg("updating jei-1.20.1"))
	m, cmd := m.Update(progressMsg(42))
	if cmd == nil {
		t.Error("expected a progress animation command")
	}

	view := m.View()
	if !strings.Contains(view, "updating jei-1.20.1") {
		t.Errorf("expected status in view, got %q", view)
	}
	if !strings.Contains(view, "42%") {
		t.Errorf("expected percent in view, got %q", view)
	}

	m, cmd = m.Update(doneMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Errorf("expected empty view after done, got %q", m.View())
	}
}

func TestModel_QuitCancels(t *testing.T) {
	cancelled := false
	var m tea.Model = newModel(func() { cancelled = true })

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !cancelled {
		t.Error("expected ctrl+c to cancel the run")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
	if !strings.Contains(m.View(), "aborting") {
		t.Errorf("expected aborting status, got %q", m.View())
	}
}
