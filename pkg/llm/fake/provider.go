package fake

import (
	"context"
	"fmt"
	"strings"

	"github.com/l-pommeret/RAG-DiBiSo/pkg/llm"
)

// FakeProvider is a deterministic backend used in development and tests. It
// never performs network calls: the response is derived from the last user
// message so pipelines can run without a model server.
type FakeProvider struct {
	// Response, when set, is returned verbatim for every call.
	Response string
	// Err, when set, is returned for every call.
	Err error
}

var _ llm.LLMProvider = &FakeProvider{}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{}
}

func (p *FakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	if p.Response != "" {
		return p.Response, nil
	}

	var last string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			last = history[i].Content
			break
		}
	}

	// Echo the tail of the prompt so callers can assert that the context
	// actually reached the backend.
	lines := strings.Split(strings.TrimSpace(last), "\n")
	tail := lines[len(lines)-1]
	return fmt.Sprintf("Réponse simulée: %s", tail), nil
}

func (p *FakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
