package bootstrap

import (
	"context"
	"time"

	"study-assistant-be/internal/config"
	"study-assistant-be/internal/controller"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/handler"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/repository/memory"
	"study-assistant-be/internal/service"
	"study-assistant-be/internal/websocket"
	"study-assistant-be/pkg/cache"
	"study-assistant-be/pkg/catalog/archive"
	"study-assistant-be/pkg/catalog/openlibrary"
	"study-assistant-be/pkg/events"
	"study-assistant-be/pkg/llm"
	"study-assistant-be/pkg/llm/factory"
	pktNats "study-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	HomeController   controller.IHomeController
	StudyController  controller.IStudyController
	SearchController controller.ISearchController
	MediaController  controller.IMediaController
	PageController   controller.IPageController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ActivityHandler *handler.ActivityHandler
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

// Deps are the external collaborators. NewContainer dials the real ones;
// tests pass fakes to Build.
type Deps struct {
	Logger         logger.ILogger
	ActivityLogger logger.ILogger
	Model          *llm.Handle // nil when no candidate answered the probe
	Books          service.BookCatalog
	Research       service.ResearchCatalog
	Cache          cache.Cache
	Redis          *redis.Client
	External       events.Publisher
}

// NewContainer wires the application. The model probe runs here, once,
// before the server starts listening; a failed probe leaves the AI routes
// unavailable but everything else working.
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	handle := selectModel(ctx, cfg, sysLogger)

	rdb := connectRedis(ctx, cfg.App.RedisURL, sysLogger)

	var external events.Publisher
	var closers []func()
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			external = natsPub
			closers = append(closers, natsPub.Close)
		}
	}
	if rdb != nil {
		closers = append(closers, func() { _ = rdb.Close() })
	}

	research := archive.NewClient(cfg.Search.ArchiveBaseURL)
	research.OnCandidateError = func(endpoint string, err error) {
		sysLogger.Warn("ArchiveSearch", "Search endpoint failed", map[string]interface{}{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
	}

	c := Build(cfg, Deps{
		Logger:         sysLogger,
		ActivityLogger: logger.NewIsolatedLogger("logs/activity.log"),
		Model:          handle,
		Books:          openlibrary.NewClient(cfg.Search.OpenLibraryBaseURL, cfg.Search.CoverBaseURL),
		Research:       research,
		Cache:          newSearchCache(cfg.Search, rdb, sysLogger),
		Redis:          rdb,
		External:       external,
	})
	c.closers = append(c.closers, closers...)
	return c
}

// Build assembles services and controllers from already-constructed deps.
func Build(cfg *config.Config, d Deps) *Container {
	if d.Logger == nil {
		d.Logger = logger.NewNopLogger()
	}
	if d.ActivityLogger == nil {
		d.ActivityLogger = d.Logger
	}

	// Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	wsHub := websocket.NewHub(d.Redis, d.ActivityLogger)

	publisherService := service.NewPublisherService(service.ActivityTopic, pubSub, d.External)
	consumerService := service.NewConsumerService(pubSub, service.ActivityTopic, wsHub, d.ActivityLogger)

	stateRepo := memory.NewStateRepository(entity.DefaultStudyState())

	assistantService := service.NewAssistantService(d.Model, publisherService, d.Logger)
	searchService := service.NewSearchService(d.Books, d.Research, d.Cache, cfg.Search.CacheTTL, d.Logger)
	mediaService := service.NewMediaService(cfg.Media.Dir, publisherService, d.Logger)
	stateService := service.NewStateService(stateRepo, publisherService, d.Logger)

	if err := mediaService.EnsureDir(); err != nil {
		d.Logger.Warn("Bootstrap", "Failed to create media directory", map[string]interface{}{"dir": cfg.Media.Dir, "error": err.Error()})
	}

	return &Container{
		HomeController:   controller.NewHomeController(stateService, assistantService),
		StudyController:  controller.NewStudyController(assistantService),
		SearchController: controller.NewSearchController(searchService),
		MediaController:  controller.NewMediaController(mediaService),
		PageController:   controller.NewPageController(),

		ConsumerService: consumerService,

		ActivityHandler: handler.NewActivityHandler(wsHub, d.Logger),
		WebSocketHub:    wsHub,

		Logger:  d.Logger,
		closers: []func(){func() { _ = pubSub.Close() }},
	}
}

// Start launches the hub and the activity consumer. They stop with ctx.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	return c.ConsumerService.Consume(ctx)
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func selectModel(ctx context.Context, cfg *config.Config, log logger.ILogger) *llm.Handle {
	baseURL := cfg.Ai.GeminiBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}

	build := factory.Builder(cfg.Ai.LLMProvider, baseURL, cfg.Keys.GoogleGemini)
	handle, err := llm.SelectModel(ctx, cfg.Ai.ModelCandidates, build, cfg.Ai.ProbePrompt, func(model string, err error) {
		log.Warn("Bootstrap", "Model candidate failed probe", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"model":    model,
			"error":    err.Error(),
		})
	})
	if err != nil {
		log.Error("Bootstrap", "No working AI model, AI routes will be unavailable", map[string]interface{}{"error": err.Error()})
		return nil
	}

	log.Info("Bootstrap", "Using LLM model", map[string]interface{}{"provider": cfg.Ai.LLMProvider, "model": handle.Model})
	return handle
}

func connectRedis(ctx context.Context, redisURL string, log logger.ILogger) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: redisURL}
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis, continuing without it", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func newSearchCache(cfg config.SearchConfig, rdb *redis.Client, log logger.ILogger) cache.Cache {
	switch cfg.CacheDriver {
	case "none":
		return cache.Nop{}
	case "redis":
		if rdb != nil {
			return cache.NewRedisCache(rdb, "search:")
		}
		log.Warn("Bootstrap", "SEARCH_CACHE_DRIVER=redis without a Redis connection, using memory", nil)
	}
	return cache.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL)
}
