package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/caddie/internal/config"
	"github.com/javiermolinar/caddie/internal/db"
	"github.com/javiermolinar/caddie/internal/llm"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

const testDate = "2099-06-14"

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Course.Name = "Pine Valley"
	cfg.Course.FirstTee = "08:00"
	cfg.Course.LastTee = "08:30"
	cfg.Course.IntervalMinutes = 10
	return cfg
}

// newTestApp seeds booking #1 at 08:00 (Ana, Ben, Cas), #2 at 08:10
// (Dee, Eve) and #3 filling 08:20.
func newTestApp(t *testing.T) (*App, *db.SQLite) {
	t.Helper()
	DisableColor()

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
			{Name: "Eve", Kind: teesheet.KindGuest},
		}},
		{"08:20", []teesheet.Player{
			{Name: "Fay"}, {Name: "Gus"}, {Name: "Hal"}, {Name: "Ivy"},
		}},
	}
	for _, s := range seed {
		b, err := teesheet.NewBooking(testDate, s.teeTime, s.players)
		if err != nil {
			t.Fatalf("NewBooking(%s) error = %v", s.teeTime, err)
		}
		if err := repo.CreateBooking(context.Background(), b); err != nil {
			t.Fatalf("CreateBooking(%s) error = %v", s.teeTime, err)
		}
	}

	return NewApp(repo, testConfig()), repo
}

func run(t *testing.T, a *App, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a.root.SetOut(&out)
	a.root.SetErr(&out)
	a.root.SetIn(strings.NewReader(stdin))
	a.root.SetArgs(args)
	err := a.Execute()
	return out.String(), err
}

func getBooking(t *testing.T, repo teesheet.Repository, id int64) *teesheet.Booking {
	t.Helper()
	b, err := repo.GetBooking(context.Background(), id)
	if err != nil {
		t.Fatalf("GetBooking(%d) error = %v", id, err)
	}
	return b
}

func names(b *teesheet.Booking) string {
	var ns []string
	for _, p := range b.Players {
		ns = append(ns, p.Name)
	}
	return strings.Join(ns, ",")
}

func TestVersionCommand(t *testing.T) {
	a, _ := newTestApp(t)
	out, err := run(t, a, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "caddie dev") {
		t.Errorf("output = %q", out)
	}
}

func TestSheetCommand(t *testing.T) {
	a, _ := newTestApp(t)

	out, err := run(t, a, "", "sheet", "--date", testDate)
	if err != nil {
		t.Fatalf("sheet error = %v", err)
	}
	for _, want := range []string{
		"=== Pine Valley - Sunday 14 June 2099 ===",
		"#1 Ana, Ben, Cas",
		"#2 Dee, Eve (G)",
		"full",
		"4 open",
		"3 bookings, 9 players (0 checked in), 7 open positions, 1/4 tee times full",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("sheet output missing %q:\n%s", want, out)
		}
	}
}

func TestSheetCommandBookedOnlyAndRange(t *testing.T) {
	a, _ := newTestApp(t)

	out, err := run(t, a, "", "sheet", "--from", testDate, "--to", "2099-06-15", "--booked")
	if err != nil {
		t.Fatalf("sheet error = %v", err)
	}
	if strings.Contains(out, "08:30") {
		t.Error("--booked should hide empty tee times")
	}
	if !strings.Contains(out, "Monday 15 June 2099") {
		t.Error("range should print every day")
	}

	if _, err := run(t, a, "", "sheet", "--date", testDate, "--from", testDate); err == nil {
		t.Error("--date with --from should fail")
	}
}

func TestBookCommand(t *testing.T) {
	a, repo := newTestApp(t)

	out, err := run(t, a, "", "book", "--date", testDate, "--time", "08:30",
		"--players", "Zed:guest, Yan:walkup", "--note", "rental clubs")
	if err != nil {
		t.Fatalf("book error = %v", err)
	}
	if !strings.Contains(out, "Booked #4") || !strings.Contains(out, "at 08:30") {
		t.Errorf("output = %q", out)
	}

	b := getBooking(t, repo, 4)
	if names(b) != "Zed,Yan" || b.Note != "rental clubs" {
		t.Errorf("booking = %+v", b)
	}
	if !strings.HasPrefix(b.Players[1].ID, "W-") {
		t.Errorf("walk-up id = %q, want generated", b.Players[1].ID)
	}
}

func TestBookCommandRefusals(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"full tee time", []string{"--time", "08:20", "--players", "Zed"}},
		{"too many for open positions", []string{"--time", "08:10", "--players", "A, B, C"}},
		{"bad tee time", []string{"--time", "8am", "--players", "Zed"}},
		{"bad date", []string{"--date", "someday", "--time", "08:30", "--players", "Zed"}},
		{"past date", []string{"--date", "2001-01-01", "--time", "08:30", "--players", "Zed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t)
			args := append([]string{"book"}, tt.args...)
			if !contains(tt.args, "--date") {
				args = append(args, "--date", testDate)
			}
			if _, err := run(t, a, "", args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func TestMoveWholeGroup(t *testing.T) {
	a, repo := newTestApp(t)

	out, err := run(t, a, "", "move", "1", "08:30")
	if err != nil {
		t.Fatalf("move error = %v", err)
	}
	if !strings.Contains(out, "Moved #4 Ana, Ben, Cas to 08:30") {
		t.Errorf("output = %q", out)
	}
	if !getBooking(t, repo, 1).IsCancelled() {
		t.Error("emptied source should be cancelled")
	}
}

func TestMovePartialFitNeedsPlayers(t *testing.T) {
	a, repo := newTestApp(t)

	_, err := run(t, a, "", "move", "1", "08:10")
	if err == nil {
		t.Fatal("expected partial fit error")
	}
	for _, want := range []string{"only 2 of 3 players fit at 08:10", "m1 (Ana)", "m3 (Cas)"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if names(getBooking(t, repo, 1)) != "Ana,Ben,Cas" {
		t.Error("source should be unchanged")
	}
}

func TestMovePartialFitWithPlayers(t *testing.T) {
	a, repo := newTestApp(t)

	out, err := run(t, a, "", "move", "1", "08:10", "--players", "m1,m3")
	if err != nil {
		t.Fatalf("move error = %v", err)
	}
	if !strings.Contains(out, "Moved #4 Ana, Cas to 08:10") {
		t.Errorf("output = %q", out)
	}
	if got := names(getBooking(t, repo, 1)); got != "Ben" {
		t.Errorf("source players = %q, want Ben", got)
	}
}

func TestPlacementRefusals(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"source tee time", []string{"move", "1", "08:00"}, "already at 08:00"},
		{"full tee time", []string{"copy", "2", "08:20"}, teesheet.ErrSlotFull.Error()},
		{"unknown tee time", []string{"move", "1", "09:00"}, "not a tee time"},
		{"unknown player", []string{"move", "1", "08:30", "--players", "zz"}, teesheet.ErrPlayerNotFound.Error()},
		{"too many selected", []string{"move", "1", "08:10", "--players", "m1,m2,m3"}, "only 2 players fit"},
		{"unknown booking", []string{"move", "99", "08:30"}, "not found"},
		{"bad id", []string{"copy", "x", "08:30"}, "invalid booking ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t)
			_, err := run(t, a, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestCopyKeepsSource(t *testing.T) {
	a, repo := newTestApp(t)

	out, err := run(t, a, "", "copy", "2", "08:30")
	if err != nil {
		t.Fatalf("copy error = %v", err)
	}
	if !strings.Contains(out, "Copied #4 Dee, Eve (G) to 08:30") {
		t.Errorf("output = %q", out)
	}
	if names(getBooking(t, repo, 2)) != "Dee,Eve" {
		t.Error("copy must not touch the source")
	}

	// Players can be named instead of given by id.
	if _, err := run(t, a, "", "copy", "2", "08:00", "--players", "Eve"); err != nil {
		t.Fatalf("copy by name error = %v", err)
	}
	if got := names(getBooking(t, repo, 5)); got != "Eve" {
		t.Errorf("copied players = %q", got)
	}
}

func TestMoveOneOfTwoSameNamedGuests(t *testing.T) {
	a, repo := newTestApp(t)

	if _, err := run(t, a, "", "book", "--date", testDate, "--time", "08:30",
		"--players", "Ana:member:M1, Guest, Guest"); err != nil {
		t.Fatalf("book error = %v", err)
	}
	src := getBooking(t, repo, 4)
	first, second := src.Players[1].ID, src.Players[2].ID
	if !strings.HasPrefix(first, "G-") || !strings.HasPrefix(second, "G-") || first == second {
		t.Fatalf("guest ids = %q, %q; want two distinct generated ids", first, second)
	}

	_, err := run(t, a, "", "move", "4", "08:10", "--players", "Guest")
	if err == nil || !strings.Contains(err.Error(), "use the player id") {
		t.Fatalf("ambiguous name error = %v", err)
	}
	if _, err := run(t, a, "", "checkin", "4", "guest"); err == nil {
		t.Error("checkin by an ambiguous name should fail")
	}

	if _, err := run(t, a, "", "move", "4", "08:10", "--players", second); err != nil {
		t.Fatalf("move by id error = %v", err)
	}
	left := getBooking(t, repo, 4)
	if left.PlayerCount() != 2 || left.PlayerIndex(first) < 0 || left.PlayerIndex(second) >= 0 {
		t.Errorf("source players = %+v, want Ana and the first guest", left.Players)
	}
	moved := getBooking(t, repo, 5)
	if moved.TeeTime != "08:10" || moved.PlayerCount() != 1 || moved.Players[0].ID != second {
		t.Errorf("moved booking = %+v", moved)
	}
}

func TestCancelCommand(t *testing.T) {
	a, repo := newTestApp(t)

	out, err := run(t, a, "", "cancel", "3")
	if err != nil {
		t.Fatalf("cancel error = %v", err)
	}
	if out != "Cancelled booking #3\n" {
		t.Errorf("output = %q", out)
	}
	if !getBooking(t, repo, 3).IsCancelled() {
		t.Error("booking should be cancelled")
	}

	if _, err := run(t, a, "", "cancel", "0"); err == nil {
		t.Error("expected invalid id error")
	}
}

func TestCheckinCommand(t *testing.T) {
	a, repo := newTestApp(t)

	out, err := run(t, a, "", "checkin", "2", "eve")
	if err != nil {
		t.Fatalf("checkin error = %v", err)
	}
	if out != "Checked in Eve (#2 08:10)\n" {
		t.Errorf("output = %q", out)
	}
	if !getBooking(t, repo, 2).Players[1].CheckedIn {
		t.Error("Eve should be checked in")
	}

	if _, err := run(t, a, "", "checkin", "2", "Eve", "--undo"); err != nil {
		t.Fatalf("undo error = %v", err)
	}
	if getBooking(t, repo, 2).Players[1].CheckedIn {
		t.Error("undo should clear the check-in")
	}

	if _, err := run(t, a, "", "checkin", "2", "Zed"); err == nil {
		t.Error("expected unknown player error")
	}
}

func TestAssignCommand(t *testing.T) {
	a, repo := newTestApp(t)

	out, err := run(t, a, "", "assign", "2", "m4", "--cart", "7", "--caddie", "Sam")
	if err != nil {
		t.Fatalf("assign error = %v", err)
	}
	if out != "Dee: cart 7\nDee: caddie Sam\n" {
		t.Errorf("output = %q", out)
	}
	p := getBooking(t, repo, 2).Players[0]
	if p.Cart != "7" || p.Caddie != "Sam" {
		t.Errorf("player = %+v", p)
	}

	fresh, _ := newTestApp(t)
	if _, err := run(t, fresh, "", "assign", "2", "m4"); err == nil {
		t.Error("expected error without --cart or --caddie")
	}
}

type scriptedClient struct {
	reply llm.DraftResponse
	calls int
}

func (c *scriptedClient) Chat(_ context.Context, _ []llm.Message) (string, error) {
	c.calls++
	data, err := json.Marshal(c.reply)
	return string(data), err
}

func (c *scriptedClient) ChatJSON(ctx context.Context, messages []llm.Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(content), result)
}

func withClient(a *App, c llm.Client) {
	a.newClient = func(_, _, _ string) (llm.Client, error) { return c, nil }
}

func TestDraftCommandDryRun(t *testing.T) {
	a, repo := newTestApp(t)
	withClient(a, &scriptedClient{reply: llm.DraftResponse{
		Date:    testDate,
		TeeTime: "08:30",
		Players: []llm.DraftPlayer{{Name: "Zed", Kind: "guest"}},
	}})

	out, err := run(t, a, "", "draft", "--date", testDate, "--dry-run", "Zed at 8:30")
	if err != nil {
		t.Fatalf("draft error = %v", err)
	}
	for _, want := range []string{"Draft: Sunday, June 14, 2099 at 08:30", "- Zed (guest)", "Dry run"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	bookings, _ := repo.ListBookingsByDate(context.Background(), getBooking(t, repo, 1).Date)
	if len(bookings) != 3 {
		t.Errorf("dry run booked something: %d bookings", len(bookings))
	}
}

func TestDraftCommandAccept(t *testing.T) {
	a, repo := newTestApp(t)
	withClient(a, &scriptedClient{reply: llm.DraftResponse{
		Date:    testDate,
		TeeTime: "08:30",
		Players: []llm.DraftPlayer{{Name: "Zed", Kind: "guest"}, {Name: "Yan", Kind: "member", ID: "M9"}},
	}})

	out, err := run(t, a, "x\na\n", "draft", "--date", testDate, "Zed and Yan")
	if err != nil {
		t.Fatalf("draft error = %v", err)
	}
	if !strings.Contains(out, "Invalid choice") {
		t.Error("unknown choice should be reported")
	}
	if !strings.Contains(out, "Booked #4") {
		t.Errorf("output = %q", out)
	}
	if got := names(getBooking(t, repo, 4)); got != "Zed,Yan" {
		t.Errorf("players = %q", got)
	}
}

func TestDraftCommandCancel(t *testing.T) {
	a, _ := newTestApp(t)
	withClient(a, &scriptedClient{reply: llm.DraftResponse{
		Date: testDate, TeeTime: "08:30", Players: []llm.DraftPlayer{{Name: "Zed"}},
	}})

	out, err := run(t, a, "c\n", "draft", "--date", testDate, "Zed")
	if err != nil {
		t.Fatalf("draft error = %v", err)
	}
	if !strings.Contains(out, "Draft discarded.") {
		t.Errorf("output = %q", out)
	}
}

func TestRunConfigInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	if err := runConfigInteractive(path, strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runConfigInteractive() error = %v", err)
	}
	if !strings.Contains(out.String(), "Created "+path) {
		t.Errorf("output = %q", out.String())
	}

	input := strings.Join([]string{"y", "Links Club", "", "", "abc", "12", "", "", "", "", "", "links"}, "\n") + "\n"
	out.Reset()
	if err := runConfigInteractive(path, strings.NewReader(input), &out); err != nil {
		t.Fatalf("runConfigInteractive() edit error = %v", err)
	}
	if !strings.Contains(out.String(), "Invalid number") {
		t.Error("bad interval should be re-prompted")
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Course.Name != "Links Club" || cfg.Course.IntervalMinutes != 12 || cfg.UI.Theme != "links" {
		t.Errorf("config = %+v", cfg)
	}
}
