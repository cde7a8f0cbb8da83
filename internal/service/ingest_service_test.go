package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/l-pommeret/RAG-DiBiSo/internal/entity"
	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/contract"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/specification"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/unitofwork"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// memoryDocumentRepository is a map-backed repository evaluating the same
// specifications as the gorm implementation, for exercising services without
// a database.
type memoryDocumentRepository struct {
	docs map[uuid.UUID]*entity.Document
}

func newMemoryDocumentRepository() *memoryDocumentRepository {
	return &memoryDocumentRepository{docs: make(map[uuid.UUID]*entity.Document)}
}

func (r *memoryDocumentRepository) Create(_ context.Context, document *entity.Document) error {
	r.docs[document.Id] = document
	return nil
}

func (r *memoryDocumentRepository) CreateBulk(ctx context.Context, documents []*entity.Document) error {
	for _, d := range documents {
		if err := r.Create(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *memoryDocumentRepository) Update(_ context.Context, document *entity.Document) error {
	r.docs[document.Id] = document
	return nil
}

func (r *memoryDocumentRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.docs, id)
	return nil
}

func (r *memoryDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *memoryDocumentRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, doc := range r.docs {
		if matchesDocument(doc, specs) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *memoryDocumentRepository) FindByIds(_ context.Context, ids []uuid.UUID) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, id := range ids {
		if doc, ok := r.docs[id]; ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *memoryDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

func matchesDocument(doc *entity.Document, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if doc.Id != s.ID {
				return false
			}
		case specification.ByTitle:
			if doc.Title != s.Title {
				return false
			}
		case specification.BySource:
			if doc.Source != s.Source {
				return false
			}
		case specification.ByLibrary:
			if doc.Library != s.Library {
				return false
			}
		}
	}
	return true
}

type memoryEmbeddingRepository struct {
	mu         sync.Mutex
	deletedFor []uuid.UUID
	created    []*entity.DocumentEmbedding
}

func (r *memoryEmbeddingRepository) Create(_ context.Context, e *entity.DocumentEmbedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, e)
	return nil
}

func (r *memoryEmbeddingRepository) CreateBulk(_ context.Context, embeddings []*entity.DocumentEmbedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, embeddings...)
	return nil
}

func (r *memoryEmbeddingRepository) createdCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

func (r *memoryEmbeddingRepository) createdSnapshot() []*entity.DocumentEmbedding {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.DocumentEmbedding(nil), r.created...)
}
func (r *memoryEmbeddingRepository) Delete(context.Context, uuid.UUID) error { return nil }
func (r *memoryEmbeddingRepository) DeleteByDocumentId(_ context.Context, documentId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedFor = append(r.deletedFor, documentId)
	return nil
}
func (r *memoryEmbeddingRepository) FindOne(context.Context, ...specification.Specification) (*entity.DocumentEmbedding, error) {
	return nil, nil
}
func (r *memoryEmbeddingRepository) FindAll(context.Context, ...specification.Specification) ([]*entity.DocumentEmbedding, error) {
	return nil, nil
}
func (r *memoryEmbeddingRepository) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *memoryEmbeddingRepository) SearchSimilarWithScore(context.Context, []float32, int) ([]*contract.ScoredDocumentEmbedding, error) {
	return nil, nil
}

type memoryUnitOfWork struct {
	docs       *memoryDocumentRepository
	embeddings *memoryEmbeddingRepository
}

func (u *memoryUnitOfWork) Begin(context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error               { return nil }
func (u *memoryUnitOfWork) Rollback() error             { return nil }
func (u *memoryUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.docs
}
func (u *memoryUnitOfWork) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return u.embeddings
}
func (u *memoryUnitOfWork) HoursCacheRepository() contract.HoursCacheRepository { return nil }

type memoryUowFactory struct {
	uow *memoryUnitOfWork
}

func (f *memoryUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newTestIngest() (IIngestService, *memoryDocumentRepository, *memoryEmbeddingRepository, *recordingPublisher) {
	docs := newMemoryDocumentRepository()
	embeddings := &memoryEmbeddingRepository{}
	factory := &memoryUowFactory{uow: &memoryUnitOfWork{docs: docs, embeddings: embeddings}}
	publisher := &recordingPublisher{}
	svc := NewIngestService(factory, publisher, nil, logger.NewNoopLogger())
	return svc, docs, embeddings, publisher
}

func TestIngestPages(t *testing.T) {
	svc, docs, _, publisher := newTestIngest()

	pages := []ScrapedPage{
		{Title: "Bibliothèque d'Orsay", URL: "https://example.fr/orsay", Content: "Contenu de la page."},
		{URL: "https://example.fr/main", MainContent: "Contenu principal seulement."},
		{Title: "Vide", URL: "https://example.fr/vide", Content: "   "},
	}

	n, err := svc.IngestPages(context.Background(), pages)

	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, docs.docs, 2)
	assert.Len(t, publisher.payloads, 2)

	untitled, err := docs.FindOne(context.Background(), specification.ByTitle{Title: "Page sans titre"})
	assert.NoError(t, err)
	if assert.NotNil(t, untitled) {
		assert.Equal(t, "Contenu principal seulement.", untitled.Content)
		assert.Equal(t, store.SourceAllPages, untitled.Source)
	}
}

func TestIngestPagesReplacesExisting(t *testing.T) {
	svc, docs, embeddings, _ := newTestIngest()

	page := ScrapedPage{Title: "Horaires", URL: "https://example.fr/h", Content: "v1"}
	_, err := svc.IngestPages(context.Background(), []ScrapedPage{page})
	assert.NoError(t, err)

	var firstId uuid.UUID
	for id := range docs.docs {
		firstId = id
	}

	page.Content = "v2"
	_, err = svc.IngestPages(context.Background(), []ScrapedPage{page})
	assert.NoError(t, err)

	assert.Len(t, docs.docs, 1)
	assert.Equal(t, []uuid.UUID{firstId}, embeddings.deletedFor)
	for _, doc := range docs.docs {
		assert.Equal(t, "v2", doc.Content)
	}
}

func TestIngestLibraries(t *testing.T) {
	svc, docs, _, _ := newTestIngest()

	hoursJSON, _ := json.Marshal("Lundi-Vendredi: 8h30-19h")
	libraries := []LibraryRecord{
		{
			Name:        "BU Sciences d'Orsay",
			URL:         "https://example.fr/orsay",
			Address:     "Rue du Doyen Georges Poitou, Orsay",
			Description: "Bibliothèque de sciences.",
			Hours:       hoursJSON,
			Contact:     &LibraryContact{Email: []string{"bu.orsay@example.fr"}, Phone: []string{"01 69 15 69 15"}},
			Services:    []string{"Prêt", "Salles de travail"},
		},
	}

	n, err := svc.IngestLibraries(context.Background(), libraries)

	assert.NoError(t, err)
	assert.Equal(t, 4, n)

	bySource := make(map[string]*entity.Document)
	for _, doc := range docs.docs {
		bySource[doc.Source] = doc
	}

	assert.Contains(t, bySource[store.SourceGeneralInfo].Content, "Adresse: Rue du Doyen Georges Poitou, Orsay")
	assert.Equal(t, "Horaires BU Sciences d'Orsay", bySource[store.SourceHours].Title)
	assert.Contains(t, bySource[store.SourceHours].Content, "Lundi-Vendredi: 8h30-19h")
	assert.Contains(t, bySource[store.SourceContact].Content, "bu.orsay@example.fr")
	assert.Contains(t, bySource[store.SourceServices].Content, "- Salles de travail")
	for _, doc := range bySource {
		assert.Equal(t, "BU Sciences d'Orsay", doc.Library)
	}
}

func TestIngestLibrariesSkipsPlaceholderHours(t *testing.T) {
	svc, docs, _, _ := newTestIngest()

	hoursJSON, _ := json.Marshal("Horaires non disponibles")
	n, err := svc.IngestLibraries(context.Background(), []LibraryRecord{
		{Name: "Lumen", URL: "https://example.fr/lumen", Hours: hoursJSON},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	for _, doc := range docs.docs {
		assert.Equal(t, store.SourceGeneralInfo, doc.Source)
	}
}

func TestDecodeHoursText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain string", raw: `"8h30 - 19h"`, want: "8h30 - 19h"},
		{name: "padded string", raw: `"  8h30  "`, want: "8h30"},
		{name: "object shape ignored", raw: `{"lundi": "8h30"}`, want: ""},
		{name: "empty", raw: ``, want: ""},
		{name: "null", raw: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeHoursText(json.RawMessage(tt.raw)))
		})
	}
}

func TestIngestDirMissingFiles(t *testing.T) {
	svc, _, _, _ := newTestIngest()

	n, err := svc.IngestDir(context.Background(), t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestIngestDir(t *testing.T) {
	svc, docs, _, _ := newTestIngest()
	dir := t.TempDir()

	pages := []ScrapedPage{{Title: "Page", URL: "https://example.fr/p", Content: "texte"}}
	raw, _ := json.Marshal(pages)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "all_pages.json"), raw, 0o644))

	libraries := []LibraryRecord{{Name: "BU", URL: "https://example.fr/bu", Description: "desc"}}
	raw, _ = json.Marshal(libraries)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "all_libraries.json"), raw, 0o644))

	n, err := svc.IngestDir(context.Background(), dir)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, docs.docs, 2)
}

// guard against accidental contract drift in the in-memory fakes
var (
	_ contract.DocumentRepository          = (*memoryDocumentRepository)(nil)
	_ contract.DocumentEmbeddingRepository = (*memoryEmbeddingRepository)(nil)
	_ unitofwork.UnitOfWork                = (*memoryUnitOfWork)(nil)
)
