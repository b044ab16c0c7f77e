package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

type ByMessageID struct {
	MessageID uuid.UUID
}

func (s ByMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("message_id = ?", s.MessageID)
}

type ByStoragePath struct {
	StoragePath string
}

func (s ByStoragePath) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("storage_path = ?", s.StoragePath)
}
