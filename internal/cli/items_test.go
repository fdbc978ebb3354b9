package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(t *testing.T, m itemEditor, s string) itemEditor {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(itemEditor)
	}
	return m
}

func pressEnter(t *testing.T, m itemEditor) itemEditor {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(itemEditor)
}

// enterRow types a full id/label/weight row.
func enterRow(t *testing.T, m itemEditor, id, label, weight string) itemEditor {
	t.Helper()
	m = pressEnter(t, typeString(t, m, id))
	m = pressEnter(t, typeString(t, m, label))
	m = pressEnter(t, typeString(t, m, weight))
	return m
}

func TestItemEditorEntersRows(t *testing.T) {
	m := newItemEditor("langs")
	m = enterRow(t, m, "go", "Go", "100")
	m = enterRow(t, m, "rust", "", "60.5")

	if len(m.set.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(m.set.Items))
	}
	if m.set.Name != "langs" {
		t.Errorf("Name = %q, want %q", m.set.Name, "langs")
	}

	first := m.set.Items[0]
	if first.ID != "go" || first.Label != "Go" || first.Weight != 100 {
		t.Errorf("first item = %+v", first)
	}
	second := m.set.Items[1]
	if second.ID != "rust" || second.Label != "" || second.Weight != 60.5 {
		t.Errorf("second item = %+v", second)
	}
}

func TestItemEditorFinishesOnEmptyID(t *testing.T) {
	m := newItemEditor("")
	m = enterRow(t, m, "a", "", "1")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(itemEditor)

	if !m.done {
		t.Error("editor should be done after empty id")
	}
	if m.aborted {
		t.Error("finishing is not an abort")
	}
	if cmd == nil {
		t.Error("finishing should quit the program")
	}
}

func TestItemEditorRejectsDuplicateID(t *testing.T) {
	m := newItemEditor("")
	m = enterRow(t, m, "go", "", "1")
	m = pressEnter(t, typeString(t, m, "go"))

	if m.errMsg == "" {
		t.Error("duplicate id should set an error message")
	}
	if m.stage != stageID {
		t.Errorf("stage = %v, should stay on id entry", m.stage)
	}
	if len(m.set.Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(m.set.Items))
	}
}

func TestItemEditorRejectsBadWeight(t *testing.T) {
	m := newItemEditor("")
	m = pressEnter(t, typeString(t, m, "go"))
	m = pressEnter(t, m) // empty label
	m = pressEnter(t, typeString(t, m, "heavy"))

	if m.errMsg == "" {
		t.Error("non-numeric weight should set an error message")
	}
	if m.stage != stageWeight {
		t.Errorf("stage = %v, should stay on weight entry", m.stage)
	}
	if len(m.set.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(m.set.Items))
	}
}

func TestItemEditorAbort(t *testing.T) {
	m := newItemEditor("")
	m = typeString(t, m, "go")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(itemEditor)

	if !m.aborted {
		t.Error("esc should abort the editor")
	}
	if cmd == nil {
		t.Error("abort should quit the program")
	}
}

func TestItemEditorBackspace(t *testing.T) {
	m := newItemEditor("")
	m = typeString(t, m, "gox")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(itemEditor)
	m = pressEnter(t, m)

	if m.pending.ID != "go" {
		t.Errorf("pending ID = %q, want %q", m.pending.ID, "go")
	}
}
