package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/internal/service"
	"ai-chat-be/pkg/extract"
	"ai-chat-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	MessageController    controller.IMessageController
	AttachmentController controller.IAttachmentController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Blob storage gateway
	gateway, err := storage.NewS3Gateway(context.Background(), storage.S3Config{
		Endpoint:     cfg.Storage.Endpoint,
		Region:       cfg.Storage.Region,
		AccessKeyID:  cfg.Storage.AccessKeyID,
		SecretKey:    cfg.Storage.SecretKey,
		UsePathStyle: cfg.Storage.UsePathStyle,
	}, cfg.Storage.Bucket)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize storage gateway: %v", err)
	}

	// 3. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 4. Services
	dispatcher := extract.NewDispatcher(gateway, sysLogger, nil)
	publisherService := service.NewPublisherService(pubSub, cfg.App.AttachmentTopic)

	uploadService := service.NewUploadService(
		gateway,
		dispatcher,
		publisherService,
		sysLogger,
		cfg.Storage.Bucket,
		time.Duration(cfg.Storage.SignedURLTTL)*time.Second,
	)

	aggregator := service.NewAttachmentAggregator(uowFactory, sysLogger)
	chatService := service.NewChatService(uowFactory, aggregator)
	messageService := service.NewMessageService(uowFactory, aggregator)

	consumerService := service.NewConsumerService(pubSub, cfg.App.AttachmentTopic, uploadService, sysLogger)

	// 5. Controllers
	return &Container{
		ChatController:       controller.NewChatController(chatService),
		MessageController:    controller.NewMessageController(messageService),
		AttachmentController: controller.NewAttachmentController(uploadService, uowFactory),
		ConsumerService:      consumerService,
		Logger:               sysLogger,
	}
}
