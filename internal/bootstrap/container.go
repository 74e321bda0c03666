package bootstrap

import (
	"context"
	"log"

	"finance-insights-be/internal/config"
	"finance-insights-be/internal/controller"
	"finance-insights-be/internal/handler"
	"finance-insights-be/internal/pkg/logger"
	"finance-insights-be/internal/repository/implementation"
	"finance-insights-be/internal/repository/memory"
	"finance-insights-be/internal/repository/unitofwork"
	"finance-insights-be/internal/service"
	"finance-insights-be/internal/websocket"
	"finance-insights-be/pkg/embedding"
	"finance-insights-be/pkg/extract"
	"finance-insights-be/pkg/llm"
	llmGroq "finance-insights-be/pkg/llm/groq"
	llmOpenai "finance-insights-be/pkg/llm/openai"
	"finance-insights-be/pkg/rag/dispatch"
	"finance-insights-be/pkg/rag/executor"
	"finance-insights-be/pkg/rag/history"
	"finance-insights-be/pkg/rag/search"

	pktNats "finance-insights-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"finance-insights-be/internal/constant"
)

type Container struct {
	// Controllers
	SearchController controller.ISearchController
	UploadController controller.IUploadController
	HealthController controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
		log.Printf("[INFO] Using Embedding Provider: OPENAI")
	}

	// LLM providers stay nil when their credential is absent; the dispatcher
	// reports the missing key per request instead of failing startup.
	var openaiProvider llm.LLMProvider
	if cfg.Keys.OpenAI != "" {
		openaiProvider = llmOpenai.NewOpenAIProvider(cfg.Keys.OpenAI, "")
	} else {
		log.Printf("[WARN] OPENAI_API_KEY not set; OpenAI-backed models unavailable")
	}
	var groqProvider llm.LLMProvider
	if cfg.Keys.Groq != "" {
		groqProvider = llmGroq.NewGroqProvider(cfg.Keys.Groq, cfg.Keys.GroqAPIURL, "")
	} else {
		log.Printf("[WARN] GROQ_API_KEY not set; Groq-backed models unavailable")
	}
	dispatcher := dispatch.NewDispatcher(openaiProvider, groqProvider)

	// In-memory cache for recently uploaded documents
	docCache := memory.NewDocumentCache()

	// 2.5 Infrastructure (Moved up for dependency injection)
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Retrieval and generation pipeline
	newsRepo := implementation.NewNewsEmbeddingRepository(db)
	docRepo := implementation.NewDocumentRepository(db)
	historyRepo := implementation.NewChatHistoryRepository(db)

	docStore := &cachedDocumentStore{cache: docCache, repo: docRepo}
	retriever := search.NewOrchestrator(embeddingProvider, newsRepo, docStore, sysLogger)
	recorder := history.NewRecorder(historyRepo)
	pipeline := executor.NewPipeline(retriever, dispatcher, recorder, sysLogger)

	extractRegistry := extract.NewRegistry(cfg.Ai.PdfParserURL)

	publisherService := service.NewPublisherService(constant.IndexDocumentTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.IndexDocumentTopic,
		uowFactory,
		embeddingProvider,
	)

	searchService := service.NewSearchService(pipeline, uowFactory, natsPub, sysLogger)
	uploadService := service.NewUploadService(
		uowFactory,
		extractRegistry,
		pipeline,
		recorder,
		publisherService,
		docCache,
		natsPub,
		cfg.Upload.Dir,
		cfg.Upload.TextPreview,
		sysLogger,
	)
	healthService := service.NewHealthService(uowFactory)

	// 3.5 Notification System Infrastructure
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	// Note: We return the container with public fields for the server to register
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		SearchController:    controller.NewSearchController(searchService),
		UploadController:    controller.NewUploadController(uploadService),
		HealthController:    controller.NewHealthController(healthService),

		ConsumerService: consumerService,
	}
}
