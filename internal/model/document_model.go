package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename   string         `gorm:"type:text;not null;uniqueIndex"` // Follow-up questions look documents up by filename
	StoredPath string         `gorm:"type:text"`
	Text       string         `gorm:"type:text"`
	TextLength int            `gorm:"default:0"`
	UserId     string         `gorm:"type:text;index"`
	UploadDate time.Time      `gorm:"autoCreateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
