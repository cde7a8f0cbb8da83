package service

import (
	"context"
	"errors"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/internal/dto"
	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/events"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/hours"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/rag/answer"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/rag/classifier"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/rag/retrieval"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/store"
)

type IAssistantService interface {
	Ask(ctx context.Context, question string) (*dto.AskResponse, error)
}

// assistantService routes each question: volatile facts (opening hours) go
// through the live source chain, everything else through corpus retrieval
// and generation.
type assistantService struct {
	classifier     *classifier.Classifier
	resolver       *hours.Resolver
	formatter      *hours.Formatter
	retriever      *retrieval.Retriever
	assembler      *answer.Assembler
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewAssistantService(
	cls *classifier.Classifier,
	resolver *hours.Resolver,
	formatter *hours.Formatter,
	retriever *retrieval.Retriever,
	assembler *answer.Assembler,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		classifier:     cls,
		resolver:       resolver,
		formatter:      formatter,
		retriever:      retriever,
		assembler:      assembler,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *assistantService) Ask(ctx context.Context, question string) (*dto.AskResponse, error) {
	classification := s.classifier.Classify(question)

	s.logger.Info("assistant", "question classified", map[string]interface{}{
		"intent":   string(classification.Intent),
		"facility": classification.FacilityId,
	})

	if classification.Intent == classifier.IntentLiveData {
		return s.answerLive(ctx, classification.FacilityId), nil
	}
	return s.answerFromCorpus(ctx, question), nil
}

func (s *assistantService) answerLive(ctx context.Context, facilityId string) *dto.AskResponse {
	if facilityId == "" {
		outcomes := s.resolver.ResolveAll(ctx)
		text := s.formatter.FormatOverview(outcomes, time.Now())

		var sources []dto.SourceResponse
		for _, outcome := range outcomes {
			if outcome.Schedule == nil {
				continue
			}
			sources = append(sources, liveSource(outcome.Schedule))
			s.publishRefresh(ctx, outcome.Schedule)
		}
		return &dto.AskResponse{Answer: text, Sources: sources}
	}

	schedule, err := s.resolver.Resolve(ctx, facilityId)
	if err != nil {
		var unavailable *hours.SourceUnavailableError
		if errors.As(err, &unavailable) {
			return &dto.AskResponse{Answer: s.formatter.FormatUnavailable(unavailable)}
		}
		s.logger.Error("assistant", "live resolution failed", map[string]interface{}{
			"facility": facilityId,
			"error":    err.Error(),
		})
		return &dto.AskResponse{Answer: answer.MsgGenerationFailure}
	}

	s.publishRefresh(ctx, schedule)

	text := s.formatter.FormatSchedule(schedule, true) + "\n\n" + answer.MsgLiveDataNote
	return &dto.AskResponse{
		Answer:  text,
		Sources: []dto.SourceResponse{liveSource(schedule)},
	}
}

func (s *assistantService) answerFromCorpus(ctx context.Context, question string) *dto.AskResponse {
	docs := s.retriever.Retrieve(ctx, question)
	text, used := s.assembler.Answer(ctx, question, docs)

	sources := make([]dto.SourceResponse, 0, len(used))
	for _, doc := range used {
		sources = append(sources, dto.SourceResponse{
			Title:   doc.Metadata.Title,
			URL:     doc.Metadata.URL,
			Source:  doc.Metadata.Source,
			Library: doc.Metadata.Library,
			Score:   doc.Score,
		})
	}
	return &dto.AskResponse{Answer: text, Sources: sources}
}

// publishRefresh emits a system event when a schedule actually came from an
// upstream provider rather than the cache.
func (s *assistantService) publishRefresh(ctx context.Context, schedule *hours.Schedule) {
	if s.eventPublisher == nil {
		return
	}
	if schedule.Source == hours.SourceCache || schedule.Source == hours.SourceDefault {
		return
	}
	evt := events.NewHoursRefreshedEvent(schedule.FacilityId, schedule.Source)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("assistant", "event publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func liveSource(schedule *hours.Schedule) dto.SourceResponse {
	return dto.SourceResponse{
		Title:   "Horaires " + schedule.FacilityName,
		URL:     schedule.URL,
		Source:  store.SourceLiveHours,
		Library: schedule.FacilityName,
		Score:   1.0,
	}
}
