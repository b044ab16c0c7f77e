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

type IChatService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ChatResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ChatResponse, error)
	Update(ctx context.Context, req *dto.UpdateChatRequest) (*dto.ChatResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.ChatResponse, error)
	GetWithMessages(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*dto.TranscriptResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator IAttachmentAggregator
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, aggregator IAttachmentAggregator) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

func (s *chatService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	chat := entity.Chat{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.ChatRepository().Create(ctx, &chat); err != nil {
		return nil, err
	}

	return chatToResponse(&chat), nil
}

func (s *chatService) Show(ctx context.Context, id uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, nil // Not found
	}

	return chatToResponse(chat), nil
}

func (s *chatService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chats, err := uow.ChatRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatResponse, len(chats))
	for i, chat := range chats {
		res[i] = chatToResponse(chat)
	}
	return res, nil
}

func (s *chatService) Update(ctx context.Context, req *dto.UpdateChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	chat.Title = req.Title
	chat.UpdatedAt = time.Now()

	if err := uow.ChatRepository().Update(ctx, chat); err != nil {
		return nil, err
	}

	return chatToResponse(chat), nil
}

func (s *chatService) Delete(ctx context.Context, id uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	// No cascade: messages and attachments of the chat are left in place.
	if err := uow.ChatRepository().Delete(ctx, id); err != nil {
		return nil, err
	}

	return chatToResponse(chat), nil
}

func (s *chatService) GetWithMessages(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*dto.TranscriptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Ownership scoped: absence and foreign ownership both read as not found.
	chat, err := uow.ChatRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, nil
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	withAttachments := s.aggregator.Aggregate(ctx, messages)

	return &dto.TranscriptResponse{
		Id:        chat.Id,
		UserId:    chat.UserId,
		Title:     chat.Title,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
		Messages:  messagesToResponse(withAttachments),
	}, nil
}

func chatToResponse(chat *entity.Chat) *dto.ChatResponse {
	return &dto.ChatResponse{
		Id:        chat.Id,
		UserId:    chat.UserId,
		Title:     chat.Title,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}
}
