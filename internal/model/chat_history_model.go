package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatHistory struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string         `gorm:"type:text;not null;index"` // User ownership for data isolation
	Title     string         `gorm:"type:text;not null"`
	Messages  datatypes.JSON `gorm:"type:jsonb"` // Full message pair, stored as the client renders it
	Model     string         `gorm:"type:text"`
	Region    string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChatHistory) TableName() string {
	return "chat_histories"
}
