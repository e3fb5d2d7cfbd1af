package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"json fence", "Here:\n```json\n{\"a\":1}\n```\nthanks", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"prose around", `Sure! {"a":{"b":2}} hope it helps`, `{"a":{"b":2}}`},
		{"brace in string", `x {"a":"}"} y`, `{"a":"}"}`},
		{"escaped quote", `{"a":"say \"hi\" }"}`, `{"a":"say \"hi\" }"}`},
		{"no json", "nothing here", "nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var resp DraftResponse
	err := decodeJSON("```json\n{\"date\":\"2025-06-14\",\"tee_time\":\"08:00\",\"players\":[{\"name\":\"Ann\",\"kind\":\"member\"}]}\n```", &resp)
	if err != nil {
		t.Fatalf("decodeJSON() error = %v", err)
	}
	if resp.TeeTime != "08:00" || len(resp.Players) != 1 || resp.Players[0].Name != "Ann" {
		t.Errorf("unexpected response %+v", resp)
	}

	if err := decodeJSON("not json", &resp); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
