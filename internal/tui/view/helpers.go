package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content,
		lipgloss.WithWhitespaceBackground(bg))
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads every line to width and the block to height,
// filling with bg. Lines wider than width are left alone.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	fill := lipgloss.NewStyle().Background(bg)

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + fill.Render(strings.Repeat(" ", gap))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderModalOverlay centers modal over base, keeping the base visible
// around it.
func RenderModalOverlay(base, modal string, width, height int, modalBg lipgloss.Color) string {
	modalLines := strings.Split(modal, "\n")
	modalW := 0
	for _, line := range modalLines {
		modalW = max(modalW, lipgloss.Width(line))
	}
	if modalW == 0 {
		return base
	}
	modalW = min(modalW, width)

	top := max(0, (height-len(modalLines))/2)
	left := max(0, (width-modalW)/2)
	fill := lipgloss.NewStyle().Background(modalBg)

	baseLines := strings.Split(PadLinesWithBackground(base, width, height, lipgloss.Color("")), "\n")
	for i, line := range modalLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		w := lipgloss.Width(line)
		switch {
		case w > modalW:
			line = ansi.Cut(line, 0, modalW)
		case w < modalW:
			line += fill.Render(strings.Repeat(" ", modalW-w))
		}
		line = ApplyModalBackgroundResets(line, modalBg) + ansi.ResetStyle

		under := baseLines[row]
		baseLines[row] = ansi.Cut(under, 0, left) + line + ansi.Cut(under, left+modalW, width)
	}
	return strings.Join(baseLines, "\n")
}

// ApplyModalBackgroundResets reapplies the modal background after every
// reset so inner styles do not punch holes through it.
func ApplyModalBackgroundResets(line string, modalBg lipgloss.Color) string {
	bgSeq := ModalBackgroundSeq(modalBg)
	if bgSeq == "" {
		return line
	}
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+bgSeq)
	}
	return line
}

// ModalBackgroundSeq returns the background escape sequence for the modal color.
func ModalBackgroundSeq(modalBg lipgloss.Color) string {
	if modalBg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(modalBg))).String()
}
