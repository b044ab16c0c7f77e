package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Chat Mappers

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}

	return &entity.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}

	return &model.Chat{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	metadata := map[string]interface{}(msg.Metadata)
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	toolsUsed := []string(msg.ToolsUsed)
	if toolsUsed == nil {
		toolsUsed = []string{}
	}

	return &entity.Message{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		UserId:    msg.UserId,
		Role:      msg.Role,
		Content:   msg.Content,
		Model:     msg.Model,
		ToolsUsed: toolsUsed,
		Metadata:  metadata,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	return &model.Message{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		UserId:    msg.UserId,
		Role:      msg.Role,
		Content:   msg.Content,
		Model:     msg.Model,
		ToolsUsed: datatypes.NewJSONSlice(msg.ToolsUsed),
		Metadata:  datatypes.JSONMap(msg.Metadata),
		CreatedAt: msg.CreatedAt,
	}
}
