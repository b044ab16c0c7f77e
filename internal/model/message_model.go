package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id        uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	ChatId    uuid.UUID                   `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Role      string                      `gorm:"type:varchar(50);not null"` // user / assistant / system
	Content   string                      `gorm:"type:text"`
	Model     string                      `gorm:"type:varchar(100)"`
	ToolsUsed datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Metadata  datatypes.JSONMap           `gorm:"type:jsonb"`
	CreatedAt time.Time                   `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
