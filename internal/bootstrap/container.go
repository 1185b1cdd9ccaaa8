package bootstrap

import (
	"context"
	"log"
	"time"

	"whatsapp-storefront-be/internal/config"
	"whatsapp-storefront-be/internal/controller"
	"whatsapp-storefront-be/internal/pkg/logger"
	"whatsapp-storefront-be/internal/repository/contract"
	"whatsapp-storefront-be/internal/repository/implementation"
	"whatsapp-storefront-be/internal/repository/memory"
	"whatsapp-storefront-be/internal/repository/redisrepo"
	"whatsapp-storefront-be/internal/service"
	"whatsapp-storefront-be/pkg/catalog"
	"whatsapp-storefront-be/pkg/intent"
	"whatsapp-storefront-be/pkg/llm/factory"
	"whatsapp-storefront-be/pkg/reply"
	"whatsapp-storefront-be/pkg/whatsapp"

	pktNats "whatsapp-storefront-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const outboundReplyTopic = "chat.outbound"

type Container struct {
	// Controllers
	WebhookController   controller.IWebhookController
	CatalogController   controller.ICatalogController
	SimulatorController controller.ISimulatorController

	// Background Services (Exposed for main.go to run)
	DeliveryService service.IDeliveryService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	companyRepo := implementation.NewCompanyRepository(db)
	productRepo := implementation.NewProductRepository(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Services
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Session storage: Redis shares state across replicas, memory is the
	// single-instance default.
	var sessionRepo contract.SessionRepository
	if cfg.App.SessionBackend == "redis" {
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
		sessionRepo = redisrepo.NewSessionRepository(rdb)
		log.Printf("[INFO] Using Session Backend: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Backend: MEMORY")
	}

	// NATS (handoff events)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	catalogService := service.NewCatalogService(companyRepo, productRepo)
	resolver := catalog.NewResolver(catalogService, catalog.DefaultThresholds())
	classifier := intent.NewClassifier(llmProvider)
	generator := reply.NewGenerator(llmProvider)
	humanizer := reply.NewHumanizer(llmProvider)

	publisherService := service.NewPublisherService(outboundReplyTopic, pubSub)

	var eventPub service.EventPublisher
	if natsPub != nil {
		eventPub = natsPub
	}

	dialogService := service.NewDialogService(
		companyRepo,
		sessionRepo,
		catalogService,
		resolver,
		classifier,
		generator,
		humanizer,
		publisherService,
		eventPub,
		sysLogger,
		service.DialogConfig{
			MinConfidence:     cfg.Chat.MinConfidence,
			RescueConfidence:  cfg.Chat.RescueConfidence,
			GenerationTimeout: time.Duration(cfg.Chat.GenerationTimeoutSeconds) * time.Second,
		},
	)

	sender := whatsapp.NewClient(cfg.WhatsApp.AccessToken)
	deliveryService := service.NewDeliveryService(pubSub, outboundReplyTopic, sender, sysLogger)

	// 4. Controllers
	return &Container{
		WebhookController:   controller.NewWebhookController(dialogService, cfg.WhatsApp.VerifyToken, sysLogger),
		CatalogController:   controller.NewCatalogController(catalogService),
		SimulatorController: controller.NewSimulatorController(dialogService),

		DeliveryService: deliveryService,
	}
}
