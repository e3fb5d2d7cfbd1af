package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaBaseURL = "http://localhost:11434"

var langChainRoles = map[string]llms.ChatMessageType{
	"system":    llms.ChatMessageTypeSystem,
	"assistant": llms.ChatMessageTypeAI,
	"user":      llms.ChatMessageTypeHuman,
}

// OllamaClient drafts through a local Ollama server via langchaingo.
type OllamaClient struct {
	llm     *ollama.LLM
	model   string
	baseURL string
}

// NewOllamaClient creates a client for model served at baseURL.
func NewOllamaClient(model, baseURL string) (*OllamaClient, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("ollama model is required")
	}
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	backend, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}
	return &OllamaClient{llm: backend, model: model, baseURL: baseURL}, nil
}

// Chat returns the model's reply to messages.
func (c *OllamaClient) Chat(ctx context.Context, messages []Message) (string, error) {
	return c.complete(ctx, messages, false)
}

// ChatJSON constrains the reply to JSON and decodes it into result.
func (c *OllamaClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.complete(ctx, messages, true)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}

func (c *OllamaClient) complete(ctx context.Context, messages []Message, jsonMode bool) (string, error) {
	opts := []llms.CallOption{
		llms.WithModel(c.model),
		llms.WithTemperature(draftTemperature),
	}
	if jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}

	resp, err := c.llm.GenerateContent(ctx, toLangChainMessages(messages), opts...)
	if err != nil {
		return "", fmt.Errorf("ollama %s: %w", c.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ollama %s: %w", c.model, ErrEmptyResponse)
	}
	return resp.Choices[0].Content, nil
}

// toLangChainMessages maps chat roles case-insensitively. Unknown roles are
// sent as the human turn.
func toLangChainMessages(messages []Message) []llms.MessageContent {
	result := make([]llms.MessageContent, len(messages))
	for i, msg := range messages {
		role, ok := langChainRoles[strings.ToLower(msg.Role)]
		if !ok {
			role = llms.ChatMessageTypeHuman
		}
		result[i] = llms.TextParts(role, msg.Content)
	}
	return result
}
