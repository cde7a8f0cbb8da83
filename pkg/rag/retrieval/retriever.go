package retrieval

import (
	"context"

	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/store"
)

// VectorSearcher is the similarity-search collaborator. The production
// implementation embeds the query and hits pgvector; tests stub it.
type VectorSearcher interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]store.Document, error)
}

// Config encapsulates retrieval parameters. KVector > KFinal gives the
// reranker room to reorder.
type Config struct {
	KVector int
	KFinal  int
}

// DefaultConfig returns the retrieval defaults.
func DefaultConfig() Config {
	return Config{
		KVector: 10,
		KFinal:  5,
	}
}

// Retriever wraps vector similarity search with a lexical reranking pass.
type Retriever struct {
	searcher VectorSearcher
	config   Config
	logger   logger.ILogger
}

func NewRetriever(searcher VectorSearcher, config Config, log logger.ILogger) *Retriever {
	return &Retriever{
		searcher: searcher,
		config:   config,
		logger:   log,
	}
}

// Retrieve runs rewrite → vector stage → lexical rerank → truncate.
// A failing or empty vector stage yields an empty sequence, never an error:
// "no context found" is a first-class case downstream.
func (r *Retriever) Retrieve(ctx context.Context, question string) []store.Document {
	query := Rewrite(question)

	candidates, err := r.searcher.SimilaritySearch(ctx, query, r.config.KVector)
	if err != nil {
		r.logger.Error("retrieval", "vector search failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if len(candidates) == 0 {
		r.logger.Info("retrieval", "vector search returned no candidates", nil)
		return nil
	}

	reranked := Rerank(candidates, query, r.config.KFinal)

	r.logger.Debug("retrieval", "reranked candidates", map[string]interface{}{
		"vector_hits": len(candidates),
		"kept":        len(reranked),
	})
	return reranked
}
