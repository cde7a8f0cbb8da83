package search

import (
	"context"
	"fmt"

	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/contract"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/unitofwork"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/embedding"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/store"

	"github.com/google/uuid"
)

// Orchestrator embeds the query and runs the pgvector nearest-neighbour
// search over the corpus, hydrating hits with their source metadata. It is
// the database-backed VectorSearcher used by the retriever.
type Orchestrator struct {
	embeddingProvider embedding.EmbeddingProvider
	factory           unitofwork.RepositoryFactory
	logger            logger.ILogger
}

func NewOrchestrator(
	embeddingProvider embedding.EmbeddingProvider,
	factory unitofwork.RepositoryFactory,
	log logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		factory:           factory,
		logger:            log,
	}
}

// SimilaritySearch returns up to k corpus chunks nearest to the query,
// best match first. One document per corpus page: when several chunks of
// the same page land in the top k, only the best-scoring chunk survives.
func (o *Orchestrator) SimilaritySearch(ctx context.Context, query string, k int) ([]store.Document, error) {
	embeddingRes, err := o.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	uow := o.factory.NewUnitOfWork(ctx)

	scored, err := uow.DocumentEmbeddingRepository().SearchSimilarWithScore(
		ctx,
		embeddingRes.Embedding.Values,
		k,
	)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	o.logger.Debug("search", "raw vector hits", map[string]interface{}{"count": len(scored)})

	candidates := o.deduplicateByDocument(scored)

	if err := o.hydrate(ctx, uow, candidates); err != nil {
		o.logger.Warn("search", "metadata hydration failed", map[string]interface{}{"error": err.Error()})
	}

	return candidates, nil
}

func (o *Orchestrator) deduplicateByDocument(results []*contract.ScoredDocumentEmbedding) []store.Document {
	var candidates []store.Document
	seen := make(map[string]bool)

	for _, res := range results {
		documentId := res.Embedding.DocumentId.String()
		if seen[documentId] {
			continue
		}
		seen[documentId] = true

		candidates = append(candidates, store.Document{
			ID:      documentId,
			Content: res.Embedding.Chunk,
			Score:   float32(res.Similarity),
		})
	}

	return candidates
}

func (o *Orchestrator) hydrate(ctx context.Context, uow unitofwork.UnitOfWork, candidates []store.Document) error {
	if len(candidates) == 0 {
		return nil
	}

	documentIds := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		id, err := uuid.Parse(c.ID)
		if err != nil {
			return fmt.Errorf("bad document id %q: %w", c.ID, err)
		}
		documentIds[i] = id
	}

	documents, err := uow.DocumentRepository().FindByIds(ctx, documentIds)
	if err != nil {
		return err
	}

	byId := make(map[string]store.Metadata, len(documents))
	for _, d := range documents {
		byId[d.Id.String()] = store.Metadata{
			Source:  d.Source,
			Title:   d.Title,
			URL:     d.URL,
			Library: d.Library,
		}
	}

	for i := range candidates {
		if meta, ok := byId[candidates[i].ID]; ok {
			candidates[i].Metadata = meta
		}
	}

	return nil
}
