package bootstrap

import (
	"context"
	"log"

	"github.com/l-pommeret/RAG-DiBiSo/internal/config"
	"github.com/l-pommeret/RAG-DiBiSo/internal/controller"
	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/logger"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/implementation"
	redisrepo "github.com/l-pommeret/RAG-DiBiSo/internal/repository/redis"
	"github.com/l-pommeret/RAG-DiBiSo/internal/repository/unitofwork"
	"github.com/l-pommeret/RAG-DiBiSo/internal/service"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/embedding"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/embedding/jina"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/events"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/hours"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/llm/factory"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/rag/answer"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/rag/classifier"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/rag/retrieval"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/rag/search"

	pktNats "github.com/l-pommeret/RAG-DiBiSo/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// Core components (exposed for the CLI entrypoints)
	AssistantService service.IAssistantService
	IngestService    service.IIngestService
	ConsumerService  service.IConsumerService
	Resolver         *hours.Resolver
	Formatter        *hours.Formatter

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	case "jina":
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	case "fake":
		embeddingProvider = embedding.NewFakeProvider()
		log.Printf("[INFO] Using Embedding Provider: FAKE (offline)")
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	var eventBus events.Publisher
	if natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventBus = natsPub
	}

	// 5. Live hours chain
	directory := hours.DefaultDirectory()

	var cacheStore hours.CacheStore
	if cfg.Cache.Backend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		cacheStore = redisrepo.NewHoursCacheStore(rdb, sysLogger)
	} else {
		uow := uowFactory.NewUnitOfWork(context.Background())
		cacheStore = implementation.NewDatabaseHoursCacheStore(uow.HoursCacheRepository(), sysLogger)
	}

	resolver := hours.NewResolver(
		directory,
		cacheStore,
		[]hours.Source{
			hours.NewAffluencesClient(cfg.Hours.AffluencesBaseURL, cfg.Hours.HTTPTimeout),
			hours.NewPageScraper(cfg.Hours.HTTPTimeout),
		},
		hours.DefaultSchedules(directory),
		cfg.Cache.TTL,
		sysLogger,
	)
	formatter := hours.NewFormatter(cfg.Hours.HorairesURL)

	// 6. RAG pipeline
	orchestrator := search.NewOrchestrator(embeddingProvider, uowFactory, sysLogger)
	retriever := retrieval.NewRetriever(orchestrator, retrieval.DefaultConfig(), sysLogger)
	assembler := answer.NewAssembler(llmProvider, sysLogger)

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.IngestTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)
	ingestService := service.NewIngestService(uowFactory, publisherService, eventBus, sysLogger)

	assistantService := service.NewAssistantService(
		classifier.New(directory),
		resolver,
		formatter,
		retriever,
		assembler,
		eventBus,
		sysLogger,
	)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, resolver, formatter),

		AssistantService: assistantService,
		IngestService:    ingestService,
		ConsumerService:  consumerService,
		Resolver:         resolver,
		Formatter:        formatter,

		Logger: sysLogger,
	}
}
