package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/events"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/hours"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/llm/fake"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/rag/answer"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/rag/classifier"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/rag/retrieval"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/store"

	"github.com/stretchr/testify/assert"
)

type stubCacheStore struct {
	mu      sync.Mutex
	records map[string]*hours.CacheRecord
}

func newStubCacheStore() *stubCacheStore {
	return &stubCacheStore{records: make(map[string]*hours.CacheRecord)}
}

func (s *stubCacheStore) Get(_ context.Context, key string) (*hours.CacheRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[key]
	if !ok || !record.Valid(time.Now()) {
		return nil, false
	}
	return record, true
}

func (s *stubCacheStore) Put(_ context.Context, key string, payload *hours.Schedule, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = &hours.CacheRecord{Key: key, Payload: payload, FetchedAt: time.Now(), TTL: ttl}
	return nil
}

type stubHoursSource struct {
	schedules map[string]*hours.Schedule
}

func (s *stubHoursSource) Name() string { return "stub" }

func (s *stubHoursSource) Fetch(_ context.Context, f *hours.Facility) (*hours.Schedule, error) {
	sched, ok := s.schedules[f.Id]
	if !ok {
		return nil, errors.New("facility not served")
	}
	return sched, nil
}

type stubVectorSearcher struct {
	docs []store.Document
}

func (s *stubVectorSearcher) SimilaritySearch(_ context.Context, _ string, _ int) ([]store.Document, error) {
	return s.docs, nil
}

type recordingEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingEventPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func newTestAssistant(source hours.Source, searcher retrieval.VectorSearcher, provider *fake.FakeProvider) IAssistantService {
	return newTestAssistantWithBus(source, newStubCacheStore(), nil, searcher, provider)
}

func newTestAssistantWithBus(source hours.Source, cache hours.CacheStore, bus events.Publisher, searcher retrieval.VectorSearcher, provider *fake.FakeProvider) IAssistantService {
	log := logger.NewNoopLogger()
	directory := hours.DefaultDirectory()
	resolver := hours.NewResolver(directory, cache, []hours.Source{source}, nil, time.Hour, log)
	formatter := hours.NewFormatter("https://www.universite-paris-saclay.fr/vie-de-campus/bibliotheques/horaires")
	retriever := retrieval.NewRetriever(searcher, retrieval.DefaultConfig(), log)
	assembler := answer.NewAssembler(provider, log)
	return NewAssistantService(classifier.New(directory), resolver, formatter, retriever, assembler, bus, log)
}

func orsaySchedule() *hours.Schedule {
	return &hours.Schedule{
		FacilityId:   "orsay",
		FacilityName: "BU Sciences d'Orsay",
		Source:       hours.SourceAffluences,
		Days: []hours.DayHours{
			{Day: "Lundi", Hours: "08:30 - 19:00"},
			{Day: "Mardi", Hours: "08:30 - 19:00"},
		},
		URL:       "https://affluences.com/bu-orsay",
		FetchedAt: time.Now(),
	}
}

func TestAskLiveDataSingleFacility(t *testing.T) {
	source := &stubHoursSource{schedules: map[string]*hours.Schedule{"orsay": orsaySchedule()}}
	svc := newTestAssistant(source, &stubVectorSearcher{}, fake.NewFakeProvider())

	resp, err := svc.Ask(context.Background(), "Quels sont les horaires de la BU d'Orsay ?")

	assert.NoError(t, err)
	assert.Contains(t, resp.Answer, "Horaires de la BU Sciences d'Orsay:")
	assert.Contains(t, resp.Answer, "- Lundi: 08:30 - 19:00")
	assert.Contains(t, resp.Answer, answer.MsgLiveDataNote)

	assert.Len(t, resp.Sources, 1)
	assert.Equal(t, store.SourceLiveHours, resp.Sources[0].Source)
	assert.Equal(t, "BU Sciences d'Orsay", resp.Sources[0].Library)
	assert.Equal(t, float32(1.0), resp.Sources[0].Score)
}

func TestAskLiveDataFreshFetchPublishesRefresh(t *testing.T) {
	source := &stubHoursSource{schedules: map[string]*hours.Schedule{"orsay": orsaySchedule()}}
	bus := &recordingEventPublisher{}
	svc := newTestAssistantWithBus(source, newStubCacheStore(), bus, &stubVectorSearcher{}, fake.NewFakeProvider())

	_, err := svc.Ask(context.Background(), "Quels sont les horaires de la BU d'Orsay ?")

	assert.NoError(t, err)
	if assert.Len(t, bus.events, 1) {
		assert.Equal(t, events.TypeHoursRefreshed, bus.events[0].EventType())
		assert.Equal(t, hours.SourceAffluences, bus.events[0].Payload()["provider"])
		assert.Equal(t, "orsay", bus.events[0].Payload()["facility_id"])
	}
}

func TestAskLiveDataCacheHitPublishesNoEvent(t *testing.T) {
	cache := newStubCacheStore()
	key := hours.CacheKey("orsay", hours.DataKindOpeningHours)
	assert.NoError(t, cache.Put(context.Background(), key, orsaySchedule(), time.Hour))

	// An empty source map would fail any live fetch, so a correct answer
	// proves the cache served it.
	source := &stubHoursSource{schedules: map[string]*hours.Schedule{}}
	bus := &recordingEventPublisher{}
	svc := newTestAssistantWithBus(source, cache, bus, &stubVectorSearcher{}, fake.NewFakeProvider())

	resp, err := svc.Ask(context.Background(), "Quels sont les horaires de la BU d'Orsay ?")

	assert.NoError(t, err)
	assert.Contains(t, resp.Answer, "- Lundi: 08:30 - 19:00")
	assert.Empty(t, bus.events, "cache-served schedules must not emit a refresh event")
}

func TestAskLiveDataUnavailable(t *testing.T) {
	source := &stubHoursSource{schedules: map[string]*hours.Schedule{}}
	svc := newTestAssistant(source, &stubVectorSearcher{}, fake.NewFakeProvider())

	resp, err := svc.Ask(context.Background(), "La bibliothèque du Lumen est-elle ouverte ?")

	assert.NoError(t, err)
	assert.Contains(t, resp.Answer, "Je n'ai pas pu récupérer les horaires")
	assert.Contains(t, resp.Answer, "https://www.universite-paris-saclay.fr/lumen-learning-center")
	assert.Empty(t, resp.Sources)
}

func TestAskLiveDataOverview(t *testing.T) {
	source := &stubHoursSource{schedules: map[string]*hours.Schedule{"orsay": orsaySchedule()}}
	svc := newTestAssistant(source, &stubVectorSearcher{}, fake.NewFakeProvider())

	resp, err := svc.Ask(context.Background(), "Quand ouvrent les bibliothèques ?")

	assert.NoError(t, err)
	assert.Contains(t, resp.Answer, "Voici les horaires des principales bibliothèques")
	assert.Contains(t, resp.Answer, "BU Sciences d'Orsay")
	// Facilities without any live tier fall through to "non disponibles".
	assert.Contains(t, resp.Answer, "horaires non disponibles")

	assert.Len(t, resp.Sources, 1)
	assert.Equal(t, "BU Sciences d'Orsay", resp.Sources[0].Library)
}

func TestAskGeneralQuestion(t *testing.T) {
	searcher := &stubVectorSearcher{docs: []store.Document{
		{
			ID:      "doc-1",
			Content: "L'impression A4 coûte 0,10 € la page en noir et blanc.",
			Score:   0.87,
			Metadata: store.Metadata{
				Source:  store.SourceAllPages,
				Title:   "Services d'impression",
				URL:     "https://www.universite-paris-saclay.fr/impression",
				Library: "BU Sciences d'Orsay",
			},
		},
	}}
	provider := &fake.FakeProvider{Response: "L'impression A4 coûte 10 centimes la page."}
	svc := newTestAssistant(&stubHoursSource{}, searcher, provider)

	resp, err := svc.Ask(context.Background(), "Quel est le prix d'une impression A4 ?")

	assert.NoError(t, err)
	assert.Equal(t, "L'impression A4 coûte 10 centimes la page.", resp.Answer)
	assert.Len(t, resp.Sources, 1)
	assert.Equal(t, "Services d'impression", resp.Sources[0].Title)
	assert.Equal(t, store.SourceAllPages, resp.Sources[0].Source)
	assert.Equal(t, float32(0.87), resp.Sources[0].Score)
}

func TestAskGeneralQuestionNoContext(t *testing.T) {
	svc := newTestAssistant(&stubHoursSource{}, &stubVectorSearcher{}, fake.NewFakeProvider())

	resp, err := svc.Ask(context.Background(), "Comment emprunter un livre ?")

	assert.NoError(t, err)
	assert.Equal(t, answer.MsgNoInformation, resp.Answer)
	assert.Empty(t, resp.Sources)
}

func TestAskLiveAnswerDoesNotInvokeGenerator(t *testing.T) {
	provider := &fake.FakeProvider{Err: errors.New("generator must not be called")}
	source := &stubHoursSource{schedules: map[string]*hours.Schedule{"orsay": orsaySchedule()}}
	svc := newTestAssistant(source, &stubVectorSearcher{}, provider)

	resp, err := svc.Ask(context.Background(), "horaires de la bibliothèque d'Orsay")

	assert.NoError(t, err)
	assert.False(t, strings.Contains(resp.Answer, answer.MsgGenerationFailure))
	assert.Contains(t, resp.Answer, answer.MsgLiveDataNote)
}
