package unitofwork

import (
	"context"

	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
	HoursCacheRepository() contract.HoursCacheRepository
}
