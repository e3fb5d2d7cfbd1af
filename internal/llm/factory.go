package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderOpenAI   = "openai"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
)

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOpenAI:
		return NewOpenAIClient(model, baseURL)
	case ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio, "lm-studio":
		return NewLMStudioClient(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// IsLocal reports whether provider runs on the local machine. Local models
// get the compact prompt.
func IsLocal(provider string) bool {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderOllama, ProviderLMStudio, "lm-studio":
		return true
	default:
		return false
	}
}
