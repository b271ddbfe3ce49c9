package tui

import (
	"strings"
	"testing"
)

func TestHelpEntriesFollowFocus(t *testing.T) {
	tests := []struct {
		focus   Focus
		want    []string
		without []string
	}{
		{focus: FocusRepositories, want: []string{"Next page", "Open selected repository tags"}, without: []string{"Delete selected tag", "Cycle detail view"}},
		{focus: FocusTags, want: []string{"Delete selected tag", "Copy pull command", "Search current listing"}},
		{focus: FocusDetail, want: []string{"Delete selected tag", "Pull selected tag with docker", "Cycle detail view"}, without: []string{"Next page"}},
		{focus: FocusRegistries, want: []string{"Activate selected registry", "Test registry connection"}, without: []string{"Search current listing"}},
	}

	for _, tc := range tests {
		t.Run(focusLabel(tc.focus), func(t *testing.T) {
			m, _ := newTestModel(t, false)
			m.focus = tc.focus
			actions := make([]string, 0)
			for _, entry := range m.currentPageHelpEntries() {
				actions = append(actions, entry.Action)
			}
			joined := strings.Join(actions, "|")
			for _, want := range tc.want {
				if !strings.Contains(joined, want) {
					t.Fatalf("expected %q in help entries %q", want, joined)
				}
			}
			for _, unwanted := range tc.without {
				if strings.Contains(joined, unwanted) {
					t.Fatalf("did not expect %q in help entries %q", unwanted, joined)
				}
			}
		})
	}
}

func TestHintLineForRegistries(t *testing.T) {
	m, _ := newTestModel(t, false)
	m.focus = FocusRegistries

	line := m.shortcutHintLine()
	for _, want := range []string{"Shortcuts: ", "enter activate", "t test", "esc back"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in hint line %q", want, line)
		}
	}
}

func TestHelpOpensAndCloses(t *testing.T) {
	m, _ := newTestModel(t, true)

	m, _ = press(t, m, "?")
	if !m.helpActive {
		t.Fatalf("expected help to open")
	}
	if view := m.View(); !strings.Contains(view, "Current page: Repositories") {
		t.Fatalf("expected help body, got:\n%s", view)
	}
	if line := m.shortcutHintLine(); !strings.HasPrefix(line, "Help: ") {
		t.Fatalf("unexpected hint line %q", line)
	}

	m, _ = press(t, m, "esc")
	if m.helpActive {
		t.Fatalf("expected help to close")
	}
}

func TestQuitNeedsConfirmation(t *testing.T) {
	m, _ := newTestModel(t, true)

	m, cmd := press(t, m, "q")
	if cmd != nil {
		t.Fatalf("expected quit to wait for confirmation")
	}
	if m.confirmAction != confirmActionQuit {
		t.Fatalf("expected quit confirmation")
	}

	_, cmd = press(t, m, "y")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}
