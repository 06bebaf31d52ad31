package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "a"},
		{Label: "off2", Disabled: true},
		{Label: "b"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3 at the end", m.Selected)
	}
	m, _ = m.Update(keyPress('k'))
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(specialKey(tea.KeyEnter))
	if !ran {
		t.Error("expected action to run")
	}
}

func TestOptionListNumberKeyChooses(t *testing.T) {
	o := NewOptionList("Q?", []string{"Yes", "Partially", "No"}, "")
	o, cmd := o.Update(keyPress('3'))
	if o.Chosen != "No" || o.Cursor != 2 {
		t.Fatalf("Chosen = %q, Cursor = %d", o.Chosen, o.Cursor)
	}
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if msg, ok := cmd().(OptionChosenMsg); !ok || msg.Option != "No" {
		t.Errorf("msg = %#v, want OptionChosenMsg{No}", cmd())
	}

	_, cmd = o.Update(keyPress('9'))
	if cmd != nil {
		t.Error("out of range number should do nothing")
	}
}

func TestOptionListCursorAndEnter(t *testing.T) {
	o := NewOptionList("Q?", []string{"Yes", "No"}, "No")
	if o.Cursor != 1 {
		t.Fatalf("cursor should start on the chosen option, got %d", o.Cursor)
	}
	o, _ = o.Update(specialKey(tea.KeyLeft))
	o, _ = o.Update(specialKey(tea.KeyLeft))
	if o.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", o.Cursor)
	}
	o, _ = o.Update(specialKey(tea.KeyEnter))
	if o.Chosen != "Yes" {
		t.Errorf("Chosen = %q, want Yes", o.Chosen)
	}
}

func TestOptionListView(t *testing.T) {
	o := NewOptionList("Is data owned?", []string{"Yes", "No"}, "Yes")
	view := o.View()
	for _, want := range []string{"Is data owned?", "1) Yes", "2) No"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestButtonRow(t *testing.T) {
	pressed := ""
	row := NewButtonRow(
		Button{Label: "Back", OnPress: func() tea.Cmd { pressed = "back"; return nil }},
		Button{Label: "Confirm", OnPress: func() tea.Cmd { pressed = "confirm"; return nil }},
	)
	row, _ = row.Update(specialKey(tea.KeyRight))
	row, _ = row.Update(specialKey(tea.KeyRight))
	if row.Focused != 1 {
		t.Fatalf("Focused = %d, want 1", row.Focused)
	}
	row.Update(specialKey(tea.KeyEnter))
	if pressed != "confirm" {
		t.Errorf("pressed = %q, want confirm", pressed)
	}
}

func TestProgressBarPercent(t *testing.T) {
	tests := []struct {
		answered, total int
		want            float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{5, 4, 1},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.answered, tt.total, 40)
		if got := p.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.answered, tt.total, got, tt.want)
		}
	}
	if view := NewProgressBar("Progress", 3, 10, 60).View(); !strings.Contains(view, "3/10") {
		t.Errorf("view missing counts: %q", view)
	}
}

func TestTextInputFilter(t *testing.T) {
	ti := NewTextInput("A1234", AlphaNumeric, 5)
	ti, _ = ti.Update(keyPress('A'))
	ti, _ = ti.Update(keyPress('-'))
	ti, _ = ti.Update(keyPress('1'))
	if got := ti.Value(); got != "A1" {
		t.Errorf("Value = %q, want A1", got)
	}
}
