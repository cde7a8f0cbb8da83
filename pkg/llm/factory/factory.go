package factory

import (
	"fmt"

	"github.com/l-pommeret/RAG-DiBiSo/pkg/llm"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/llm/fake"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/llm/huggingface"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	case "fake":
		return fake.NewFakeProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
