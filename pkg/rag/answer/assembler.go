package answer

import (
	"context"

	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/llm"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/store"
)

// Assembler merges retrieved context into a prompt, invokes the generation
// collaborator and post-processes its output.
type Assembler struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewAssembler(llmProvider llm.LLMProvider, log logger.ILogger) *Assembler {
	return &Assembler{
		llmProvider: llmProvider,
		logger:      log,
	}
}

// Answer generates a grounded response from the question and its context
// documents. Backend errors are converted into a fixed apology with an empty
// document list; no error ever crosses this boundary.
func (a *Assembler) Answer(ctx context.Context, question string, docs []store.Document) (string, []store.Document) {
	if len(docs) == 0 {
		a.logger.Info("answer", "no context documents, returning fallback", nil)
		return MsgNoInformation, nil
	}

	prompt := BuildPrompt(question, docs)

	raw, err := a.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		a.logger.Error("answer", "generation failed", map[string]interface{}{"error": err.Error()})
		return MsgGenerationFailure, nil
	}

	return Postprocess(raw, prompt), docs
}
