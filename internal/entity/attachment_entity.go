package entity

import (
	"github.com/google/uuid"
)

type Attachment struct {
	Id           uuid.UUID
	MessageId    uuid.UUID
	Filename     string
	OriginalName string
	MimeType     string
	FileSize     int64
	StoragePath  string
}
