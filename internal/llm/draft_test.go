package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubClient struct {
	reply    string
	err      error
	messages []Message
}

func (s *stubClient) Chat(_ context.Context, messages []Message) (string, error) {
	s.messages = messages
	return s.reply, s.err
}

func (s *stubClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := s.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}

func draftRequest(compact bool) DraftRequest {
	return DraftRequest{
		Input:    "Ann and Bob tomorrow morning",
		Now:      time.Date(2025, 6, 14, 9, 0, 0, 0, time.Local),
		Course:   "Pine Valley",
		Date:     "2025-06-15",
		Capacity: 4,
		Slots: []SheetSlot{
			{TeeTime: "08:00", Open: 4},
			{TeeTime: "08:08", Open: 1, Players: []string{"Cy", "Di", "Ed"}},
			{TeeTime: "08:16", Open: 0},
		},
		UseCompactPrompt: compact,
	}
}

func TestBuildInitialMessages(t *testing.T) {
	for _, compact := range []bool{false, true} {
		msgs := BuildInitialMessages(draftRequest(compact))
		if len(msgs) != 2 {
			t.Fatalf("compact=%v: len = %d, want 2", compact, len(msgs))
		}
		if msgs[0].Role != "system" || msgs[1].Role != "user" {
			t.Errorf("compact=%v: roles = %q,%q", compact, msgs[0].Role, msgs[1].Role)
		}
		prompt := msgs[0].Content
		for _, want := range []string{"Pine Valley", "2025-06-14", "2025-06-15", "- 08:00: 4 open", "- 08:08: 1 open (Cy, Di, Ed)", "- 08:16: full"} {
			if !strings.Contains(prompt, want) {
				t.Errorf("compact=%v: prompt missing %q", compact, want)
			}
		}
		if strings.Contains(prompt, "%!") {
			t.Errorf("compact=%v: prompt has formatting errors:\n%s", compact, prompt)
		}
		if msgs[1].Content != "Ann and Bob tomorrow morning" {
			t.Errorf("compact=%v: user message = %q", compact, msgs[1].Content)
		}
	}
}

func TestFormatSlots_Empty(t *testing.T) {
	if got := formatSlots("2025-06-15", nil); !strings.Contains(got, "no tee times") {
		t.Errorf("formatSlots(nil) = %q", got)
	}
}

func TestDrafter_DraftWithMessages(t *testing.T) {
	client := &stubClient{reply: `{"date":"2025-06-15","tee_time":"08:00","players":[{"name":"Ann","kind":"member","id":"M1"},{"name":"Bob","kind":"guest"}],"warnings":[]}`}
	d := NewDrafter(client)

	resp, err := d.DraftWithMessages(context.Background(), BuildInitialMessages(draftRequest(false)))
	if err != nil {
		t.Fatalf("DraftWithMessages() error = %v", err)
	}
	if resp.Date != "2025-06-15" || resp.TeeTime != "08:00" {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Players) != 2 || resp.Players[0].ID != "M1" {
		t.Errorf("players = %+v", resp.Players)
	}
}

func TestDrafter_ClientError(t *testing.T) {
	boom := errors.New("boom")
	d := NewDrafter(&stubClient{err: boom})

	_, err := d.DraftWithMessages(context.Background(), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}
