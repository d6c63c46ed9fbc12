package bootstrap

import (
	"context"
	"log"

	"fashion-chatbot-be/internal/config"
	"fashion-chatbot-be/internal/controller"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/pkg/mailer"
	"fashion-chatbot-be/internal/repository/memory"
	"fashion-chatbot-be/internal/repository/unitofwork"
	"fashion-chatbot-be/internal/service"
	"fashion-chatbot-be/internal/websocket"
	"fashion-chatbot-be/pkg/payment/momo"

	pktNats "fashion-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController  controller.IChatbotController
	ProductController  controller.IProductController
	CartController     controller.ICartController
	PaymentController  controller.IPaymentController
	RealtimeController controller.IRealtimeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger       logger.ILogger
	WebSocketHub *websocket.Hub

	cancel   context.CancelFunc
	pubSub   *gochannel.GoChannel
	natsPub  *pktNats.Publisher
	rdb      *redis.Client
	wsLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			sysLogger,
		)
	} else {
		log.Printf("[WARN] SMTP_HOST not set, order confirmation emails are disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	// Redis
	opt, err := redis.ParseURL(cfg.Events.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.Events.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	ctx, cancel := context.WithCancel(context.Background())
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run(ctx)

	// Payment gateway
	var gateway service.PaymentGateway
	if cfg.Momo.AccessKey != "" && cfg.Momo.SecretKey != "" {
		gateway = momo.NewClient(momo.Config{
			Endpoint:    cfg.Momo.Endpoint,
			PartnerCode: cfg.Momo.PartnerCode,
			PartnerName: cfg.Momo.PartnerName,
			StoreId:     cfg.Momo.StoreId,
			AccessKey:   cfg.Momo.AccessKey,
			SecretKey:   cfg.Momo.SecretKey,
			RedirectUrl: cfg.Momo.RedirectUrl,
			IpnUrl:      cfg.Momo.IpnUrl,
			RequestType: cfg.Momo.RequestType,
			OrderInfo:   cfg.Momo.OrderInfo,
			Lang:        cfg.Momo.Lang,
			AutoCapture: cfg.Momo.AutoCapture,
			Timeout:     cfg.Momo.Timeout,
		})
	} else {
		log.Printf("[WARN] MoMo credentials not set, wallet checkout is disabled")
	}

	// 3. Services
	productService := service.NewProductService(uowFactory, memory.NewProductCache(cfg.App.ProductCacheTTL))
	publisherService := service.NewPublisherService(pubSub, cfg.Events.FinalizedTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.FinalizedTopic,
		uowFactory,
		wsHub,
		emailService,
		sysLogger,
	)

	chatbotService := service.NewChatbotService(uowFactory, productService, sysLogger)
	cartService := service.NewCartService(uowFactory, productService, sysLogger)
	checkoutService := service.NewCheckoutService(
		uowFactory,
		productService,
		gateway,
		eventPublisher,
		publisherService,
		cfg.Momo.OrderInfo,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		ChatbotController:  controller.NewChatbotController(chatbotService, sysLogger),
		ProductController:  controller.NewProductController(productService),
		CartController:     controller.NewCartController(cartService, checkoutService),
		PaymentController:  controller.NewPaymentController(checkoutService, sysLogger),
		RealtimeController: controller.NewRealtimeController(wsHub, cfg.Auth.JwtSecret, wsLogger),

		ConsumerService: consumerService,

		Logger:       sysLogger,
		WebSocketHub: wsHub,

		cancel:   cancel,
		pubSub:   pubSub,
		natsPub:  natsPub,
		rdb:      rdb,
		wsLogger: wsLogger,
	}
}

// Close stops the hub and releases broker connections.
func (c *Container) Close() {
	c.cancel()
	if err := c.pubSub.Close(); err != nil {
		log.Printf("[WARN] Failed to close event bus: %v", err)
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if err := c.rdb.Close(); err != nil {
		log.Printf("[WARN] Failed to close Redis: %v", err)
	}
	_ = c.wsLogger.Sync()
	_ = c.Logger.Sync()
}
