package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const draftPrompt = `You are the starter at %s, a golf course. You turn booking requests into tee sheet entries.

Context:
- Current date and time: %s, %s %s
- Tomorrow: %s (%s)
- A tee time holds at most %d players.

%s

CRITICAL RULES:
1. "today" means %s and "tomorrow" means %s
2. Weekday names mean the next occurrence of that day
3. Resolve the date to YYYY-MM-DD in "date"
4. "tee_time" MUST be one of the tee times listed above (HH:MM, 24-hour)
5. Never choose a tee time with fewer open positions than players in the group
6. If the requested time is full, pick the closest tee time that fits and add a warning
7. Player kind is "member", "guest" or "walkup"; use "guest" when unsure
8. Only set "id" when the request names a member number

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "date": "YYYY-MM-DD",
  "tee_time": "HH:MM",
  "players": [
    {"name": "string", "kind": "member", "id": "string"}
  ],
  "warnings": ["string"]
}`

const draftPromptCompact = `You book golf tee times at %s. Return JSON only.

Today: %s (%s)
Tomorrow: %s (%s)
Current time: %s
Max players per tee time: %d

%s

Rules:
- Return JSON only (no markdown).
- date is YYYY-MM-DD, tee_time is one of the tee times above.
- Pick a tee time with enough open positions for the group.
- kind is "member", "guest" or "walkup".
- "warnings" must be an array of strings.

JSON schema:
{"date": "YYYY-MM-DD", "tee_time": "HH:MM", "players": [{"name": "string", "kind": "guest", "id": ""}], "warnings": ["string"]}`

// SheetSlot is one tee time of the sheet shown to the model.
type SheetSlot struct {
	TeeTime string // HH:MM
	Open    int
	Players []string
}

// DraftRequest contains the input for a booking draft.
type DraftRequest struct {
	Input            string
	Now              time.Time
	Course           string
	Date             string // YYYY-MM-DD of the sheet in Slots
	Slots            []SheetSlot
	Capacity         int
	UseCompactPrompt bool // Use a shorter prompt for local models
}

// DraftResponse contains the parsed LLM response.
type DraftResponse struct {
	Date     string        `json:"date"`
	TeeTime  string        `json:"tee_time"`
	Players  []DraftPlayer `json:"players"`
	Warnings []string      `json:"warnings"`
}

// DraftPlayer is one player proposed by the model.
type DraftPlayer struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// Drafter turns free text into a DraftResponse using an LLM.
type Drafter struct {
	client Client
}

// NewDrafter creates a Drafter with the given LLM client.
func NewDrafter(client Client) *Drafter {
	return &Drafter{client: client}
}

// DraftWithMessages sends a prepared conversation and parses the reply.
// Callers append feedback messages between attempts.
func (d *Drafter) DraftWithMessages(ctx context.Context, messages []Message) (*DraftResponse, error) {
	var resp DraftResponse
	if err := d.client.ChatJSON(ctx, messages, &resp); err != nil {
		return nil, fmt.Errorf("drafting booking: %w", err)
	}
	return &resp, nil
}

// BuildInitialMessages creates the system prompt and the user request.
func BuildInitialMessages(req DraftRequest) []Message {
	today := req.Now.Format("2006-01-02")
	tomorrow := req.Now.AddDate(0, 0, 1)
	course := req.Course
	if course == "" {
		course = "the course"
	}

	var prompt string
	if req.UseCompactPrompt {
		prompt = fmt.Sprintf(draftPromptCompact,
			course,
			req.Now.Format("Monday"), today,
			tomorrow.Format("Monday"), tomorrow.Format("2006-01-02"),
			req.Now.Format("15:04"),
			req.Capacity,
			formatSlots(req.Date, req.Slots),
		)
	} else {
		prompt = fmt.Sprintf(draftPrompt,
			course,
			req.Now.Format("Monday"), today, req.Now.Format("15:04"),
			tomorrow.Format("2006-01-02"), tomorrow.Format("Monday"),
			req.Capacity,
			formatSlots(req.Date, req.Slots),
			today, tomorrow.Format("2006-01-02"),
		)
	}

	return []Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: req.Input},
	}
}

func formatSlots(date string, slots []SheetSlot) string {
	if len(slots) == 0 {
		return "Tee sheet: no tee times configured"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Tee sheet for %s (tee time: open positions):\n", date)
	for _, s := range slots {
		switch {
		case s.Open == 0:
			fmt.Fprintf(&sb, "- %s: full\n", s.TeeTime)
		case len(s.Players) > 0:
			fmt.Fprintf(&sb, "- %s: %d open (%s)\n", s.TeeTime, s.Open, strings.Join(s.Players, ", "))
		default:
			fmt.Fprintf(&sb, "- %s: %d open\n", s.TeeTime, s.Open)
		}
	}
	return sb.String()
}
