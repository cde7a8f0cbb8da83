package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/internal/dto"
	"github.com/l-pommeret/RAG-DiBiSo/internal/entity"
	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/specification"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/unitofwork"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/events"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/store"

	"github.com/google/uuid"
)

// ScrapedPage is one entry of all_pages.json, the sitewide crawl dump.
type ScrapedPage struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	MainContent string `json:"main_content"`
}

// LibraryRecord is one entry of all_libraries.json, the per-library dump.
// Hours is raw because older dumps stored an object there instead of text.
type LibraryRecord struct {
	Name        string          `json:"name"`
	URL         string          `json:"url"`
	Address     string          `json:"address"`
	Description string          `json:"description"`
	Hours       json.RawMessage `json:"hours"`
	Contact     *LibraryContact `json:"contact"`
	Services    []string        `json:"services"`
}

type LibraryContact struct {
	Email []string `json:"email"`
	Phone []string `json:"phone"`
}

type IIngestService interface {
	// IngestDir loads all_pages.json and all_libraries.json from dataDir.
	// Missing files are skipped, not errors.
	IngestDir(ctx context.Context, dataDir string) (int, error)
	IngestPages(ctx context.Context, pages []ScrapedPage) (int, error)
	IngestLibraries(ctx context.Context, libraries []LibraryRecord) (int, error)
}

type ingestService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

func NewIngestService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IIngestService {
	return &ingestService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *ingestService) IngestDir(ctx context.Context, dataDir string) (int, error) {
	total := 0

	pages, err := loadJSONFile[ScrapedPage](filepath.Join(dataDir, "all_pages.json"))
	if err != nil {
		return 0, fmt.Errorf("load all_pages.json: %w", err)
	}
	if pages != nil {
		n, err := s.IngestPages(ctx, pages)
		if err != nil {
			return total, err
		}
		total += n
	}

	libraries, err := loadJSONFile[LibraryRecord](filepath.Join(dataDir, "all_libraries.json"))
	if err != nil {
		return total, fmt.Errorf("load all_libraries.json: %w", err)
	}
	if libraries != nil {
		n, err := s.IngestLibraries(ctx, libraries)
		if err != nil {
			return total, err
		}
		total += n
	}

	s.logger.Info("ingest", "ingestion finished", map[string]interface{}{"documents": total, "dir": dataDir})
	return total, nil
}

func (s *ingestService) IngestPages(ctx context.Context, pages []ScrapedPage) (int, error) {
	count := 0
	for _, page := range pages {
		content := page.Content
		if content == "" {
			content = page.MainContent
		}
		if strings.TrimSpace(content) == "" {
			continue
		}

		title := page.Title
		if title == "" {
			title = "Page sans titre"
		}

		doc := &entity.Document{
			Id:        uuid.New(),
			Title:     title,
			Content:   content,
			URL:       page.URL,
			Source:    store.SourceAllPages,
			CreatedAt: time.Now(),
		}
		if err := s.storeDocument(ctx, doc); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (s *ingestService) IngestLibraries(ctx context.Context, libraries []LibraryRecord) (int, error) {
	count := 0
	for _, library := range libraries {
		for _, doc := range buildLibraryDocuments(library) {
			if err := s.storeDocument(ctx, doc); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// buildLibraryDocuments expands one library record into focused documents so
// vector search can land on a single fact instead of the whole record.
func buildLibraryDocuments(library LibraryRecord) []*entity.Document {
	var docs []*entity.Document
	now := time.Now()

	general := fmt.Sprintf("Nom: %s\nURL: %s\nAdresse: %s\nDescription: %s",
		library.Name, library.URL, library.Address, library.Description)
	docs = append(docs, &entity.Document{
		Id:        uuid.New(),
		Title:     library.Name,
		Content:   general,
		URL:       library.URL,
		Library:   library.Name,
		Source:    store.SourceGeneralInfo,
		CreatedAt: now,
	})

	if hoursText := decodeHoursText(library.Hours); hoursText != "" && hoursText != "Horaires non disponibles" {
		docs = append(docs, &entity.Document{
			Id:        uuid.New(),
			Title:     "Horaires " + library.Name,
			Content:   fmt.Sprintf("Horaires de la bibliothèque %s: %s", library.Name, hoursText),
			URL:       library.URL,
			Library:   library.Name,
			Source:    store.SourceHours,
			CreatedAt: now,
		})
	}

	if library.Contact != nil && (len(library.Contact.Email) > 0 || len(library.Contact.Phone) > 0) {
		var b strings.Builder
		fmt.Fprintf(&b, "Contacts de la bibliothèque %s:\n", library.Name)
		if len(library.Contact.Email) > 0 {
			fmt.Fprintf(&b, "Emails: %s\n", strings.Join(library.Contact.Email, ", "))
		}
		if len(library.Contact.Phone) > 0 {
			fmt.Fprintf(&b, "Téléphones: %s\n", strings.Join(library.Contact.Phone, ", "))
		}
		docs = append(docs, &entity.Document{
			Id:        uuid.New(),
			Title:     "Contacts " + library.Name,
			Content:   b.String(),
			URL:       library.URL,
			Library:   library.Name,
			Source:    store.SourceContact,
			CreatedAt: now,
		})
	}

	if len(library.Services) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "Services disponibles à la bibliothèque %s:\n", library.Name)
		for _, service := range library.Services {
			fmt.Fprintf(&b, "- %s\n", service)
		}
		docs = append(docs, &entity.Document{
			Id:        uuid.New(),
			Title:     "Services " + library.Name,
			Content:   b.String(),
			URL:       library.URL,
			Library:   library.Name,
			Source:    store.SourceServices,
			CreatedAt: now,
		})
	}

	return docs
}

// storeDocument replaces any prior document with the same title and source,
// then queues the new one for embedding.
func (s *ingestService) storeDocument(ctx context.Context, doc *entity.Document) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByTitle{Title: doc.Title},
		specification.BySource{Source: doc.Source},
	)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, existing.Id); err != nil {
			return err
		}
		if err := uow.DocumentRepository().Delete(ctx, existing.Id); err != nil {
			return err
		}
	}

	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return err
	}

	msgPayload := dto.PublishEmbedDocumentMessage{DocumentId: doc.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.NewDocumentIngestedEvent(doc.Id.String(), doc.Title, doc.Source)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ingest", "event publish failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}

func decodeHoursText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		// object-shaped hours from older dumps are not indexed as text
		return ""
	}
	return strings.TrimSpace(text)
}

// loadJSONFile returns nil without error when the file does not exist.
func loadJSONFile[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
