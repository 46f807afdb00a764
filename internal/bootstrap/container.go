package bootstrap

import (
	"log"
	"os"
	"time"
	"path/filepath"

	"legislation-qa-be/internal/config"
	"legislation-qa-be/internal/controller"
	"legislation-qa-be/internal/pkg/logger"
	"legislation-qa-be/internal/repository/implementation"
	redisrepo "legislation-qa-be/internal/repository/redis"
	"legislation-qa-be/internal/service"
	"legislation-qa-be/pkg/agent"
	"legislation-qa-be/pkg/embedding"
	"legislation-qa-be/pkg/llm/factory"
	pkgNats "legislation-qa-be/pkg/nats"
	"legislation-qa-be/pkg/prompt"
	"legislation-qa-be/pkg/retrieval"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	ChatController controller.IChatController
	ChatService    service.IChatService

	Logger    logger.ILogger
	Publisher *pkgNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := initPipelineLogger()

	// Redis (session store)
	redisOpts, err := goredis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Panicf("Invalid REDIS_URL: %v", err)
	}
	redisClient := goredis.NewClient(redisOpts)
	sessionRepo := redisrepo.NewSessionRepository(redisClient)

	// NATS is optional: without a URL the chat path simply skips events.
	var publisher *pkgNats.Publisher
	if cfg.App.NatsURL != "" {
		publisher, err = pkgNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			appLogger.Warn("bootstrap", "NATS unavailable, events disabled", map[string]interface{}{"error": err.Error()})
			publisher = nil
		}
	}

	// Model clients
	embeddingProvider := newEmbeddingProvider(cfg)
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, ollamaOrOpenAIBase(cfg), cfg.Keys.OpenAI)
	if err != nil {
		log.Panicf("Unable to initialize LLM provider: %v", err)
	}

	// Answering pipeline
	passageRepo := implementation.NewPassageRepository(db)
	engine := retrieval.NewEngine(embeddingProvider, passageRepo, pipelineLogger)
	router := agent.NewRouter(llmProvider, pipelineLogger)
	templates := prompt.NewLoader(cfg.App.PromptTemplateDir)
	qaAgent := agent.NewAgent(router, engine, llmProvider, templates, pipelineLogger)

	// Services and controllers
	var eventPublisher service.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	chatService := service.NewChatService(qaAgent, sessionRepo, eventPublisher, pipelineLogger)

	return &Container{
		ChatController: controller.NewChatController(chatService, time.Duration(cfg.App.RequestTimeoutSecs)*time.Second),
		ChatService:    chatService,
		Logger:         appLogger,
		Publisher:      publisher,
	}
}

func newEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	default:
		return embedding.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
	}
}

func ollamaOrOpenAIBase(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.OpenAIBaseURL
}

func initPipelineLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[PIPELINE] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
