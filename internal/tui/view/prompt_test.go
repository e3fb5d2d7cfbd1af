package view

import (
	"testing"

	"github.com/javiermolinar/caddie/internal/tui/input"
)

func TestPromptLinesIncludesSuggestions(t *testing.T) {
	state := PromptState{Value: "/b", Cursor: "_", ModePrompt: true}
	commands := []input.PromptCommand{{Name: "/book", Description: "Draft a booking"}}
	lines := PromptLines(state, 40, commands)

	if lines[0] != "> /b_" {
		t.Fatalf("input line = %q, want %q", lines[0], "> /b_")
	}
	found := false
	for _, line := range lines {
		if line == "  /book Draft a booking" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected suggestion line, got %v", lines)
	}
}

func TestPromptLinesCustomLabel(t *testing.T) {
	state := PromptState{Value: "make it 9am", Label: "amend> "}
	lines := PromptLines(state, 40, nil)
	if len(lines) != 1 || lines[0] != "amend> make it 9am" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestPromptLinesWithoutFocusHasNoSuggestions(t *testing.T) {
	state := PromptState{Value: "/b"}
	commands := []input.PromptCommand{{Name: "/book", Description: "Draft a booking"}}
	if lines := PromptLines(state, 40, commands); len(lines) != 1 {
		t.Fatalf("lines = %v, want only the input line", lines)
	}
}

func TestClampPromptLinesAddsEllipsis(t *testing.T) {
	lines := []string{"one", "two", "three"}
	clamped := ClampPromptLines(lines, 2, 5)
	if len(clamped) != 2 {
		t.Fatalf("clamped length = %d, want 2", len(clamped))
	}
	if clamped[1] != "tw..." {
		t.Fatalf("last line = %q, want %q", clamped[1], "tw...")
	}
}

func TestWrapTextToWidths(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		first int
		other int
		want  []string
	}{
		{name: "fits", in: "four players", first: 20, other: 20, want: []string{"four players"}},
		{name: "wraps_at_space", in: "book two at nine", first: 8, other: 8, want: []string{"book two", "at nine"}},
		{name: "splits_long_word", in: "abcdefgh", first: 3, other: 3, want: []string{"abc", "def", "gh"}},
		{name: "empty", in: "", first: 5, other: 5, want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapTextToWidths(tt.in, tt.first, tt.other)
			if len(got) != len(tt.want) {
				t.Fatalf("WrapTextToWidths() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("WrapTextToWidths() = %q, want %q", got, tt.want)
				}
			}
		})
	}
}
