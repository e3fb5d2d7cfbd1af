package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultOpenAIModel     = "gpt-4o-mini"
	defaultLMStudioBaseURL = "http://localhost:1234/v1"
)

// ErrMissingAPIKey is returned when the OpenAI provider has no API key.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// OpenAIClient implements Client against any OpenAI-compatible chat API.
// It serves both the hosted OpenAI provider and a local LM Studio server.
type OpenAIClient struct {
	client  openai.Client
	name    string
	model   string
	baseURL string
}

// NewOpenAIClient creates a client for the hosted OpenAI API.
// The API key comes from OPENAI_API_KEY, possibly loaded from a .env file.
func NewOpenAIClient(model, baseURL string) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(model) == "" {
		model = defaultOpenAIModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		name:    "openai",
		model:   model,
		baseURL: baseURL,
	}, nil
}

// NewLMStudioClient creates a client for LM Studio's OpenAI-compatible server.
func NewLMStudioClient(model, baseURL string) (*OpenAIClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("lm studio model is required")
	}
	if baseURL == "" {
		baseURL = defaultLMStudioBaseURL
	}

	apiKey := os.Getenv("LMSTUDIO_API_KEY")
	if apiKey == "" {
		apiKey = "lm-studio"
	}

	return &OpenAIClient{
		client: openai.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey(apiKey),
		),
		name:    "lm studio",
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Chat sends messages to the LLM and returns the response.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(draftTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", c.name, ErrEmptyResponse)
	}

	return resp.Choices[0].Message.Content, nil
}

// ChatJSON sends messages and parses the response as JSON into the provided type.
func (c *OpenAIClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			result[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			result[i] = openai.UserMessage(msg.Content)
		}
	}
	return result
}
