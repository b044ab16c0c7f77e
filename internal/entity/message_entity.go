package entity

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	UserId    uuid.UUID
	Role      string
	Content   string
	Model     string
	ToolsUsed []string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

// MessageWithAttachments augments a message with the files bound to it.
// The attachment slice carries no ordering guarantee.
type MessageWithAttachments struct {
	Message
	Attachments []*Attachment
}
