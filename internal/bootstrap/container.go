package bootstrap

import (
	"context"
	"log"

	"novel-recall-be/internal/config"
	"novel-recall-be/internal/controller"
	"novel-recall-be/internal/pkg/logger"
	"novel-recall-be/internal/repository/contract"
	"novel-recall-be/internal/repository/implementation"
	"novel-recall-be/internal/repository/memory"
	"novel-recall-be/internal/repository/redisrepo"
	"novel-recall-be/internal/service"
	"novel-recall-be/pkg/drive"
	"novel-recall-be/pkg/embedding"
	pkgNats "novel-recall-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController controller.ISearchController
	ReviewController controller.IReviewController
	MetaController   controller.IMetaController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
}

// NewContainer wires the whole dependency graph. db may be nil when
// the in-memory corpus backend is configured.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Corpus store + similarity index: loaded once, read-only for the
	// process lifetime.
	var corpusRepo contract.CorpusRepository
	if cfg.Corpus.Backend == "postgres" {
		corpusRepo = implementation.NewCorpusRepository(db)
		log.Printf("[INFO] Using Corpus Backend: POSTGRES (pgvector)")
	} else {
		idx, err := memory.LoadCorpusIndex(cfg.Corpus.DatasetPath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to load corpus dataset: %v", err)
		}
		corpusRepo = idx
		log.Printf("[INFO] Using Corpus Backend: MEMORY (%s)", cfg.Corpus.DatasetPath)
	}

	// Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	// Session store
	var sessionRepo contract.SessionRepository
	if cfg.App.SessionBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisrepo.NewSessionRepository(rdb)
		log.Printf("[INFO] Using Session Backend: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Backend: MEMORY")
	}

	// Event bus for feedback-saved notifications
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// NATS is optional ops plumbing; the workflow runs without it.
	var natsPub *pkgNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pkgNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	// Remote feedback log
	remoteLog, err := drive.NewClient(context.Background(), drive.Credentials{
		PrivateKeyID: cfg.Drive.PrivateKeyID,
		PrivateKey:   cfg.Drive.PrivateKey,
		ClientEmail:  cfg.Drive.ClientEmail,
		ClientID:     cfg.Drive.ClientID,
	}, cfg.Drive.FolderID)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Drive client: %v", err)
	}

	retrievalService := service.NewRetrievalService(embeddingProvider, corpusRepo)
	enrichmentService := service.NewEnrichmentService("", cfg.Keys.NaverClientID, cfg.Keys.NaverClientSecret)
	feedbackService := service.NewFeedbackService(remoteLog, cfg.Feedback.BufferDir, pubSub, cfg.Feedback.Topic, sysLogger)
	reviewService := service.NewReviewService(sessionRepo, retrievalService, enrichmentService, feedbackService, sysLogger)
	metaService := service.NewMetaService(corpusRepo)
	consumerService := service.NewConsumerService(pubSub, cfg.Feedback.Topic, natsPub)

	return &Container{
		SearchController: controller.NewSearchController(reviewService),
		ReviewController: controller.NewReviewController(reviewService),
		MetaController:   controller.NewMetaController(metaService),
		ConsumerService:  consumerService,
	}
}
