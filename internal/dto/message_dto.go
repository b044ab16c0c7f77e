package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMessageRequest struct {
	ChatId      uuid.UUID              `json:"chat_id" validate:"required"`
	Role        string                 `json:"role" validate:"required"`
	Content     string                 `json:"content"`
	Model       string                 `json:"model"`
	ToolsUsed   []string               `json:"tools_used"`
	Metadata    map[string]interface{} `json:"metadata"`
	Attachments []AttachmentPayload    `json:"attachments"`
}

// AttachmentPayload carries upload metadata the client got back from the
// upload endpoint, to be persisted as attachment rows with the message.
type AttachmentPayload struct {
	Filename     string `json:"filename" validate:"required"`
	OriginalName string `json:"original_name" validate:"required"`
	MimeType     string `json:"mime_type" validate:"required"`
	FileSize     int64  `json:"file_size"`
	StoragePath  string `json:"storage_path" validate:"required"`
}

type UpdateMessageRequest struct {
	Id        uuid.UUID
	Content   *string                `json:"content"`
	Model     *string                `json:"model"`
	ToolsUsed []string               `json:"tools_used"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type MessageResponse struct {
	Id        uuid.UUID              `json:"id"`
	ChatId    uuid.UUID              `json:"chat_id"`
	UserId    uuid.UUID              `json:"user_id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Model     string                 `json:"model,omitempty"`
	ToolsUsed []string               `json:"tools_used"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

type MessageWithAttachmentsResponse struct {
	MessageResponse
	Attachments []*AttachmentResponse `json:"attachments"`
}
