// Package llm provides LLM clients and the booking draft prompt used by the
// booking assistant.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// draftTemperature is the sampling temperature for booking drafts.
const draftTemperature = 0.2

// ErrEmptyResponse is returned when a provider answers without any choice.
var ErrEmptyResponse = errors.New("model returned no choices")

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON sends messages and parses the response as JSON into the provided type.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}

// decodeJSON unmarshals the JSON found in content into result.
func decodeJSON(content string, result any) error {
	if err := json.Unmarshal([]byte(extractJSON(content)), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}
	return nil
}
