package tui

import (
	"strings"
	"testing"

	"gatemap/internal/filter"
	"gatemap/internal/gate"

	tea "github.com/charmbracelet/bubbletea"
)

func gates() []gate.Gate {
	return []gate.Gate{
		{Name: "Gate A", Office: "OfficeX", Project: "ProvA", Lat: gate.Coord(14.0), Lon: gate.Coord(100.0)},
		{Name: "Gate B", Office: "OfficeY", Project: "ProvB"},
		{Name: "Gate C", Office: "OfficeY", Project: "ProvC", Lat: gate.Coord(13.0), Lon: gate.Coord(100.5)},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func labels(m Model) []string {
	var out []string
	for _, mk := range m.surface.Visible() {
		out = append(out, mk.Label)
	}
	return out
}

func TestInitialShowsPositionedGates(t *testing.T) {
	m := New(gates(), nil)
	if got := labels(m); len(got) != 2 || got[0] != "Gate A" || got[1] != "Gate C" {
		t.Errorf("visible = %v", got)
	}
	if !strings.Contains(m.View(), "Gate C") {
		t.Error("view should list Gate C")
	}
}

func TestOfficePickerResetsProject(t *testing.T) {
	m := New(gates(), nil)
	m.apply(filter.Action{Kind: filter.ActOffice, Value: "OfficeX"})
	m.apply(filter.Action{Kind: filter.ActProject, Value: "ProvA"})

	m = send(m, key("o"))
	if m.mode != modePickOffice {
		t.Fatalf("mode = %v", m.mode)
	}
	// ตัวเลือก: แสดงทั้งหมด, OfficeX, OfficeY
	m.picker.Select(2)
	m = send(m, key("enter"))
	if m.state != (filter.State{Office: "OfficeY", Project: filter.All}) {
		t.Errorf("state = %+v", m.state)
	}
	if got := labels(m); len(got) != 1 || got[0] != "Gate C" {
		t.Errorf("visible = %v, stale markers must be removed", got)
	}
}

func TestProjectPickerAndReset(t *testing.T) {
	m := New(gates(), nil)
	m = send(m, key("p"))
	m.picker.Select(2) // all, ProvA, ProvB, ProvC
	m = send(m, key("enter"))
	if m.state.Project != "ProvB" {
		t.Fatalf("project = %q", m.state.Project)
	}
	if len(labels(m)) != 0 {
		t.Errorf("ProvB has no positioned gates, got %v", labels(m))
	}
	if !strings.Contains(m.View(), "ไม่มีประตูระบายน้ำ") {
		t.Error("empty selection should render a notice")
	}
	m = send(m, key("r"))
	if m.state != filter.Initial() || len(labels(m)) != 2 {
		t.Errorf("reset state=%+v visible=%v", m.state, labels(m))
	}
}

func TestEscCancelsPicker(t *testing.T) {
	m := New(gates(), nil)
	m = send(m, key("o"), key("esc"))
	if m.mode != modeBrowse || m.state != filter.Initial() {
		t.Errorf("mode=%v state=%+v", m.mode, m.state)
	}
}
