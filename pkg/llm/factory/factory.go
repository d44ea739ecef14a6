package factory

import (
	"fmt"

	"study-assistant-be/pkg/llm"
	"study-assistant-be/pkg/llm/gemini"
	"study-assistant-be/pkg/llm/ollama"
)

// NewLLMProvider builds a provider of providerType bound to modelName.
// baseURL may be empty to use the provider default.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(baseURL, apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// Builder adapts NewLLMProvider to llm.Builder for startup model selection.
func Builder(providerType, baseURL, apiKey string) llm.Builder {
	return func(model string) (llm.LLMProvider, error) {
		return NewLLMProvider(providerType, model, baseURL, apiKey)
	}
}
