package llm

import (
	"errors"
	"testing"
)

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient("ollama", "llama3", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	ollamaClient, ok := client.(*OllamaClient)
	if !ok {
		t.Fatalf("expected OllamaClient, got %T", client)
	}
	if ollamaClient.baseURL != defaultOllamaBaseURL {
		t.Errorf("baseURL = %q, want %q", ollamaClient.baseURL, defaultOllamaBaseURL)
	}
}

func TestNewClient_LMStudio(t *testing.T) {
	for _, provider := range []string{"lmstudio", "lm-studio", " LMStudio "} {
		client, err := NewClient(provider, "qwen2.5", "")
		if err != nil {
			t.Fatalf("%q: expected nil error, got %v", provider, err)
		}
		c, ok := client.(*OpenAIClient)
		if !ok {
			t.Fatalf("%q: expected OpenAIClient, got %T", provider, client)
		}
		if c.baseURL != defaultLMStudioBaseURL {
			t.Errorf("%q: baseURL = %q, want %q", provider, c.baseURL, defaultLMStudioBaseURL)
		}
	}
}

func TestNewClient_OpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	client, err := NewClient("openai", "", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	c, ok := client.(*OpenAIClient)
	if !ok {
		t.Fatalf("expected OpenAIClient, got %T", client)
	}
	if c.model != defaultOpenAIModel {
		t.Errorf("model = %q, want %q", c.model, defaultOpenAIModel)
	}
}

func TestNewClient_OpenAIMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewClient("", "gpt-4o", "")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient("unknown", "model", "")
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestIsLocal(t *testing.T) {
	tests := map[string]bool{
		"ollama":   true,
		"lmstudio": true,
		"openai":   false,
		"":         false,
	}
	for provider, want := range tests {
		if got := IsLocal(provider); got != want {
			t.Errorf("IsLocal(%q) = %v, want %v", provider, got, want)
		}
	}
}
