package service

import (
	"context"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IMessageService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.MessageResponse, error)
	GetByChatId(ctx context.Context, chatId uuid.UUID) ([]*dto.MessageWithAttachmentsResponse, error)
	Update(ctx context.Context, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type messageService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator IAttachmentAggregator
}

func NewMessageService(uowFactory unitofwork.RepositoryFactory, aggregator IAttachmentAggregator) IMessageService {
	return &messageService{
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

func (s *messageService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	toolsUsed := req.ToolsUsed
	if toolsUsed == nil {
		toolsUsed = []string{}
	}
	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	message := entity.Message{
		Id:        uuid.New(),
		ChatId:    req.ChatId,
		UserId:    userId,
		Role:      req.Role,
		Content:   req.Content,
		Model:     req.Model,
		ToolsUsed: toolsUsed,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}

	if len(req.Attachments) == 0 {
		if err := uow.MessageRepository().Create(ctx, &message); err != nil {
			return nil, err
		}
		return messageToResponse(&message), nil
	}

	// Message and its attachment rows land together or not at all.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		uow.Rollback()
		return nil, err
	}

	attachments := make([]*entity.Attachment, len(req.Attachments))
	for i, a := range req.Attachments {
		attachments[i] = &entity.Attachment{
			Id:           uuid.New(),
			MessageId:    message.Id,
			Filename:     a.Filename,
			OriginalName: a.OriginalName,
			MimeType:     a.MimeType,
			FileSize:     a.FileSize,
			StoragePath:  a.StoragePath,
		}
	}

	if err := uow.AttachmentRepository().CreateBulk(ctx, attachments); err != nil {
		uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return messageToResponse(&message), nil
}

func (s *messageService) Show(ctx context.Context, id uuid.UUID) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, nil // Not found
	}

	return messageToResponse(message), nil
}

func (s *messageService) GetByChatId(ctx context.Context, chatId uuid.UUID) ([]*dto.MessageWithAttachmentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chatId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	withAttachments := s.aggregator.Aggregate(ctx, messages)
	return messagesToResponse(withAttachments), nil
}

func (s *messageService) Update(ctx context.Context, req *dto.UpdateMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}

	if req.Content != nil {
		message.Content = *req.Content
	}
	if req.Model != nil {
		message.Model = *req.Model
	}
	if req.ToolsUsed != nil {
		message.ToolsUsed = req.ToolsUsed
	}
	if req.Metadata != nil {
		message.Metadata = req.Metadata
	}

	if err := uow.MessageRepository().Update(ctx, message); err != nil {
		return nil, err
	}

	return messageToResponse(message), nil
}

func (s *messageService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if message == nil {
		return ErrMessageNotFound
	}

	return uow.MessageRepository().Delete(ctx, id)
}

func messageToResponse(message *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        message.Id,
		ChatId:    message.ChatId,
		UserId:    message.UserId,
		Role:      message.Role,
		Content:   message.Content,
		Model:     message.Model,
		ToolsUsed: message.ToolsUsed,
		Metadata:  message.Metadata,
		CreatedAt: message.CreatedAt,
	}
}

func messagesToResponse(messages []*entity.MessageWithAttachments) []*dto.MessageWithAttachmentsResponse {
	res := make([]*dto.MessageWithAttachmentsResponse, len(messages))
	for i, m := range messages {
		attachments := make([]*dto.AttachmentResponse, len(m.Attachments))
		for j, a := range m.Attachments {
			attachments[j] = &dto.AttachmentResponse{
				Id:           a.Id,
				Filename:     a.Filename,
				OriginalName: a.OriginalName,
				MimeType:     a.MimeType,
				FileSize:     a.FileSize,
				StoragePath:  a.StoragePath,
			}
		}
		res[i] = &dto.MessageWithAttachmentsResponse{
			MessageResponse: *messageToResponse(&m.Message),
			Attachments:     attachments,
		}
	}
	return res
}
