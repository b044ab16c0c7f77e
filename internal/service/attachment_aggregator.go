package service

import (
	"context"
	"sync"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
)

// IAttachmentAggregator joins attachments onto a set of messages.
// Fetches run concurrently per message; a failed fetch degrades that one
// message to an empty attachment list instead of failing the batch.
type IAttachmentAggregator interface {
	Aggregate(ctx context.Context, messages []*entity.Message) []*entity.MessageWithAttachments
}

type attachmentAggregator struct {
	uowFactory    unitofwork.RepositoryFactory
	logger        logger.ILogger
	maxConcurrent int
}

func NewAttachmentAggregator(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAttachmentAggregator {
	return &attachmentAggregator{
		uowFactory:    uowFactory,
		logger:        log,
		maxConcurrent: 8,
	}
}

func (a *attachmentAggregator) Aggregate(ctx context.Context, messages []*entity.Message) []*entity.MessageWithAttachments {
	results := make([]*entity.MessageWithAttachments, len(messages))

	sem := make(chan struct{}, a.maxConcurrent)
	var wg sync.WaitGroup

	for i, msg := range messages {
		wg.Add(1)
		go func(i int, msg *entity.Message) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			uow := a.uowFactory.NewUnitOfWork(ctx)
			attachments, err := uow.AttachmentRepository().FindAll(ctx,
				specification.ByMessageID{MessageID: msg.Id},
			)
			if err != nil {
				a.logger.Warn("aggregator", "failed to load attachments for message", map[string]interface{}{
					"message_id": msg.Id.String(),
					"error":      err.Error(),
				})
				attachments = []*entity.Attachment{}
			}

			results[i] = &entity.MessageWithAttachments{
				Message:     *msg,
				Attachments: attachments,
			}
		}(i, msg)
	}

	wg.Wait()
	return results
}
