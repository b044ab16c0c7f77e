package service

import (
	"context"
	"encoding/json"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains attachment-uploaded events and warms the
// extraction cache so the first parse request answers immediately.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	uploadService IUploadService
	logger        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uploadService IUploadService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		uploadService: uploadService,
		logger:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	if msg.Metadata.Get(metadataEventType) != events.AttachmentUploaded {
		msg.Ack()
		return
	}

	var payload dto.PublishAttachmentUploadedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal uploaded event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("consumer", "warming extraction cache", map[string]interface{}{
		"path": payload.StoragePath,
	})

	// Parse caches internally and never fails from the caller's view.
	cs.uploadService.Parse(ctx, payload.StoragePath, payload.MimeType, payload.OriginalName)
	msg.Ack()
}
