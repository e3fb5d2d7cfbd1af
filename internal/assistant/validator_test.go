package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/caddie/internal/llm"
	"github.com/javiermolinar/caddie/internal/teesheet"
)

var testNow = time.Date(2025, 6, 14, 9, 0, 0, 0, time.Local)

func testSheet(t *testing.T, occupied map[string]int) *teesheet.Sheet {
	t.Helper()

	var bookings []*teesheet.Booking
	id := int64(1)
	for teeTime, n := range occupied {
		players := make([]teesheet.Player, n)
		for i := range players {
			players[i] = teesheet.Player{Name: teeTime + "-" + string(rune('a'+i))}
		}
		b, err := teesheet.NewBooking("2025-06-15", teeTime, players)
		if err != nil {
			t.Fatalf("NewBooking: %v", err)
		}
		b.ID = id
		id++
		bookings = append(bookings, b)
	}
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	return teesheet.NewSheet(date, testTeeTimes, bookings)
}

var testTeeTimes = []string{"08:00", "08:08", "08:16"}

func players(names ...string) []llm.DraftPlayer {
	result := make([]llm.DraftPlayer, len(names))
	for i, n := range names {
		result[i] = llm.DraftPlayer{Name: n, Kind: "guest"}
	}
	return result
}

func TestValidator_Validate(t *testing.T) {
	sheet := testSheet(t, map[string]int{"08:08": 3, "08:16": 4})
	v := NewValidator(testNow, testTeeTimes)

	tests := []struct {
		name   string
		resp   llm.DraftResponse
		fields []string
	}{
		{
			name: "valid",
			resp: llm.DraftResponse{Date: "2025-06-15", TeeTime: "08:00", Players: players("Ann", "Bob")},
		},
		{
			name:   "bad date",
			resp:   llm.DraftResponse{Date: "15/06/2025", TeeTime: "08:00", Players: players("Ann")},
			fields: []string{"date"},
		},
		{
			name:   "past date",
			resp:   llm.DraftResponse{Date: "2025-06-13", TeeTime: "08:00", Players: players("Ann")},
			fields: []string{"date"},
		},
		{
			name:   "tee time off sheet",
			resp:   llm.DraftResponse{Date: "2025-06-15", TeeTime: "08:04", Players: players("Ann")},
			fields: []string{"tee_time"},
		},
		{
			name:   "no players",
			resp:   llm.DraftResponse{Date: "2025-06-15", TeeTime: "08:00"},
			fields: []string{"players"},
		},
		{
			name:   "five players",
			resp:   llm.DraftResponse{Date: "2025-06-15", TeeTime: "08:00", Players: players("A", "B", "C", "D", "E")},
			fields: []string{"players"},
		},
		{
			name: "blank name and bad kind",
			resp: llm.DraftResponse{Date: "2025-06-15", TeeTime: "08:00", Players: []llm.DraftPlayer{
				{Name: " ", Kind: "guest"},
				{Name: "Bob", Kind: "pro"},
			}},
			fields: []string{"players[0]", "players[1]"},
		},
		{
			name:   "partial fit",
			resp:   llm.DraftResponse{Date: "2025-06-15", TeeTime: "08:08", Players: players("Ann", "Bob")},
			fields: []string{"tee_time"},
		},
		{
			name:   "full",
			resp:   llm.DraftResponse{Date: "2025-06-15", TeeTime: "08:16", Players: players("Ann")},
			fields: []string{"tee_time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(&tt.resp, sheet)
			if result.Valid != (len(tt.fields) == 0) {
				t.Fatalf("Valid = %v, errors = %v", result.Valid, result.Errors)
			}
			if len(result.Errors) != len(tt.fields) {
				t.Fatalf("got %d errors %v, want fields %v", len(result.Errors), result.Errors, tt.fields)
			}
			for i, f := range tt.fields {
				if result.Errors[i].Field != f {
					t.Errorf("Errors[%d].Field = %q, want %q", i, result.Errors[i].Field, f)
				}
			}
		})
	}
}

func TestValidator_NilSheetSkipsCapacity(t *testing.T) {
	v := NewValidator(testNow, testTeeTimes)
	result := v.Validate(&llm.DraftResponse{Date: "2025-06-15", TeeTime: "08:16", Players: players("Ann")}, nil)
	if !result.Valid {
		t.Fatalf("expected valid without a sheet, got %v", result.Errors)
	}
}

func TestValidator_NilResponse(t *testing.T) {
	v := NewValidator(testNow, testTeeTimes)
	if result := v.Validate(nil, nil); result.Valid {
		t.Fatal("expected nil response to be invalid")
	}
}

func TestValidationResult_FormatErrors(t *testing.T) {
	if got := (ValidationResult{Valid: true}).FormatErrors(); got != "" {
		t.Errorf("FormatErrors() = %q, want empty", got)
	}

	r := ValidationResult{Errors: []ValidationError{{Field: "tee_time", Message: "08:16 is full"}}}
	got := r.FormatErrors()
	if !strings.Contains(got, "- tee_time: 08:16 is full") {
		t.Errorf("FormatErrors() = %q", got)
	}
	if !strings.Contains(got, "valid JSON") {
		t.Errorf("FormatErrors() should ask for JSON, got %q", got)
	}
}
