package model

import (
	"github.com/google/uuid"
)

type Attachment struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	MessageId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename     string    `gorm:"type:text;not null"`
	OriginalName string    `gorm:"type:text;not null"`
	MimeType     string    `gorm:"type:varchar(255);not null"`
	FileSize     int64     `gorm:"not null"`
	StoragePath  string    `gorm:"type:text;not null;uniqueIndex"` // Resolves to exactly one blob
}

func (Attachment) TableName() string {
	return "attachments"
}
