package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"

	"notegraph-be/internal/config"
	"notegraph-be/internal/controller"
	"notegraph-be/internal/pkg/logger"
	"notegraph-be/internal/repository/contract"
	"notegraph-be/internal/repository/implementation"
	"notegraph-be/internal/repository/memory"
	"notegraph-be/internal/repository/unitofwork"
	"notegraph-be/internal/service"
	"notegraph-be/internal/websocket"
	"notegraph-be/pkg/graph"
	"notegraph-be/pkg/llm/breaker"
	"notegraph-be/pkg/llm/factory"
	pktNats "notegraph-be/pkg/nats"
	"notegraph-be/pkg/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController   controller.INoteController
	SearchController controller.ISearchController
	GraphController  controller.IGraphController
	ChatController   controller.IChatController
	AIController     controller.IAIController

	// Services, exposed for the CLI tools
	NoteService service.INoteService

	Logger      logger.ILogger
	SearchIndex search.Index

	consumerService service.IConsumerService
	hub             *websocket.Hub
	natsPub         *pktNats.Publisher
	natsSub         *pktNats.Subscriber
	pubSub          *gochannel.GoChannel
	rdb             *redis.Client
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	consistencyLog := logger.NewIsolatedLogger(cfg.App.ConsistencyLogPath)

	// 2. Search index
	index, err := search.NewElasticIndex(search.ElasticConfig{
		Addresses: cfg.Search.Addresses,
		Username:  cfg.Search.Username,
		Password:  cfg.Search.Password,
		IndexName: cfg.Search.IndexName,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to create search client: %v", err)
	}

	// 3. Index backlog: Redis when reachable, process memory otherwise
	var backlog contract.IndexBacklogRepository
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Index backlog kept in memory", err)
		rdb.Close()
		rdb = nil
		backlog = memory.NewIndexBacklogRepository()
	} else {
		backlog = implementation.NewIndexBacklogRepository(rdb)
	}

	// 4. Event bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	hub := websocket.NewHub(sysLogger)

	// With NATS up the hub is fed from the stream so every instance sees every change.
	var sinks []service.EventSink
	if natsPub != nil && natsSub != nil {
		sinks = append(sinks, natsPub)
	} else {
		if natsPub != nil {
			sinks = append(sinks, natsPub)
		}
		sinks = append(sinks, hub)
	}

	// 5. Language model
	llmCfg := factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.OllamaBaseURL,
		Timeout:  cfg.Ai.LLMTimeout,
	}
	if cfg.Ai.LLMProvider == "openai" || cfg.Ai.LLMProvider == "huggingface" {
		llmCfg.BaseURL = cfg.Ai.OpenAIBaseURL
		llmCfg.APIKey = cfg.Ai.OpenAIAPIKey
	}
	if cfg.Breaker.Enabled {
		llmCfg.Breaker = &breaker.Settings{
			MaxRequests: uint32(cfg.Breaker.MaxRequests),
			Interval:    cfg.Breaker.Interval,
			Timeout:     cfg.Breaker.Timeout,
			TripRatio:   cfg.Breaker.TripRatio,
		}
	}
	llmProvider, err := factory.NewLLMProvider(llmCfg, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.App.NoteEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.NoteEventsTopic, sysLogger, sinks...)

	noteService := service.NewNoteService(uowFactory, index, backlog, publisherService, sysLogger, consistencyLog)
	searchService := service.NewSearchService(index, sysLogger, consistencyLog)
	aiService := service.NewAIService(uowFactory, searchService, llmProvider, cfg.Ai.LLMTimeout, sysLogger)

	engine := graph.NewEngine(service.NewGraphStore(uowFactory), graph.WithFetchConcurrency(cfg.Graph.FetchConcurrency))
	graphService := service.NewGraphService(engine, cfg.Graph.DefaultDepth, cfg.Graph.MaxDepth)

	// 7. Controllers
	return &Container{
		NoteController:   controller.NewNoteController(noteService),
		SearchController: controller.NewSearchController(searchService, noteService),
		GraphController:  controller.NewGraphController(graphService, hub),
		ChatController:   controller.NewChatController(aiService, sysLogger),
		AIController:     controller.NewAIController(aiService),

		NoteService: noteService,
		Logger:      sysLogger,
		SearchIndex: index,

		consumerService: consumerService,
		hub:             hub,
		natsPub:         natsPub,
		natsSub:         natsSub,
		pubSub:          pubSub,
		rdb:             rdb,
	}
}

// Start runs the background workers until ctx is done: the websocket hub, the
// in-process event relay and, when NATS is connected, the graph feed consumer.
func (c *Container) Start(ctx context.Context) error {
	go c.hub.Run(ctx)

	if err := c.consumerService.Consume(ctx); err != nil {
		return fmt.Errorf("start event relay: %w", err)
	}

	if c.natsSub != nil && c.natsPub != nil {
		host, _ := os.Hostname()
		if err := c.natsSub.Subscribe(ctx, pktNats.SubjectPrefix+">", "graph-feed-"+host, c.hub.Publish); err != nil {
			return fmt.Errorf("subscribe graph feed: %w", err)
		}
	}
	return nil
}

// Close releases external clients. Call after the server stopped accepting requests.
func (c *Container) Close() {
	if err := c.pubSub.Close(); err != nil {
		log.Printf("[WARN] Failed to close event bus: %v", err)
	}
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		c.rdb.Close()
	}
	c.Logger.Sync()
}
