package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/caddie/internal/config"
	"github.com/javiermolinar/caddie/internal/db"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

var (
	testDay = time.Date(2099, 6, 14, 0, 0, 0, 0, time.Local)
	testNow = time.Date(2099, 6, 1, 9, 0, 0, 0, time.Local)
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Course.Name = "Pine Valley"
	cfg.Course.FirstTee = "08:00"
	cfg.Course.LastTee = "08:30"
	cfg.Course.IntervalMinutes = 10
	return cfg
}

func pinColorProfile(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
	})
}

// newTestModel opens a sheet with three bookings:
// 08:00 three members, 08:10 two members, 08:20 full, 08:30 open.
func newTestModel(t *testing.T, opts ...ModelOption) (Model, *db.SQLite) {
	t.Helper()

	repo, err := db.New(filepath.Join(t.TempDir(), "caddie.db"))
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	seed := []struct {
		teeTime string
		players []teesheet.Player
	}{
		{"08:00", []teesheet.Player{
			{ID: "m1", Name: "Ana", Kind: teesheet.KindMember},
			{ID: "m2", Name: "Ben", Kind: teesheet.KindMember},
			{ID: "m3", Name: "Cas", Kind: teesheet.KindMember},
		}},
		{"08:10", []teesheet.Player{
			{ID: "m4", Name: "Dee", Kind: teesheet.KindMember},
			{ID: "m5", Name: "Eve", Kind: teesheet.KindGuest},
		}},
		{"08:20", []teesheet.Player{
			{ID: "f1", Name: "Fay", Kind: teesheet.KindMember},
			{ID: "f2", Name: "Gus", Kind: teesheet.KindMember},
			{ID: "f3", Name: "Hal", Kind: teesheet.KindMember},
			{ID: "f4", Name: "Ivy", Kind: teesheet.KindMember},
		}},
	}
	for _, s := range seed {
		b := &teesheet.Booking{Date: testDay, TeeTime: s.teeTime, Players: s.players}
		if err := repo.CreateBooking(context.Background(), b); err != nil {
			t.Fatalf("CreateBooking(%s) error = %v", s.teeTime, err)
		}
	}

	opts = append([]ModelOption{WithDate(testDay), WithNow(func() time.Time { return testNow })}, opts...)
	m := *New(repo, testConfig(), opts...)
	m = reload(t, m)
	return m, repo
}

// reload runs the sheet load synchronously.
func reload(t *testing.T, m Model) Model {
	t.Helper()
	return runCmd(t, m, m.loadSheet())
}

// runCmd executes cmd and feeds its message back into Update.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m, cmd
}
