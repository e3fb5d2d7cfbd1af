package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderWithoutSize(t *testing.T) {
	if got := Render(ViewState{}); got != "Loading..." {
		t.Fatalf("Render() = %q, want Loading...", got)
	}
	if got := Render(ViewState{EmptyPlaceholder: "wait"}); got != "wait" {
		t.Fatalf("Render() = %q, want wait", got)
	}
}

func TestRenderCentersModal(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	out := Render(ViewState{
		Width:        10,
		Height:       5,
		BaseContent:  base,
		ModalContent: "MM",
		ShowModal:    true,
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	if !strings.Contains(lines[2], "MM") {
		t.Fatalf("expected modal on the middle line, got %q", lines[2])
	}
	if !strings.HasPrefix(lines[2], "....") {
		t.Fatalf("expected base content left of the modal, got %q", lines[2])
	}
	if strings.Contains(lines[0], "MM") {
		t.Fatalf("modal leaked to first line: %q", lines[0])
	}
}

func TestPadLinesWithBackground(t *testing.T) {
	out := PadLinesWithBackground("ab", 4, 2, lipgloss.Color(""))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 4 {
			t.Errorf("line %d width = %d, want 4", i, w)
		}
	}
}
