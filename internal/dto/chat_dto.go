package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	Title string `json:"title" validate:"required"`
}

type UpdateChatRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required"`
}

type ChatResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TranscriptResponse is a chat with its ordered messages and their attachments.
type TranscriptResponse struct {
	Id        uuid.UUID                        `json:"id"`
	UserId    uuid.UUID                        `json:"user_id"`
	Title     string                           `json:"title"`
	CreatedAt time.Time                        `json:"created_at"`
	UpdatedAt time.Time                        `json:"updated_at"`
	Messages  []*MessageWithAttachmentsResponse `json:"messages"`
}
