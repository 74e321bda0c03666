package dto

import "github.com/google/uuid"

type UploadResponse struct {
	Filename   string    `json:"filename"`
	Analysis   string    `json:"analysis"`
	TextLength int       `json:"textLength"`
	ChatId     uuid.UUID `json:"chatId"`
}

type DocumentDetailResponse struct {
	Filename    string `json:"filename"`
	UploadDate  string `json:"upload_date"`
	TextPreview string `json:"text_preview"`
	TextLength  int    `json:"text_length"`
}
