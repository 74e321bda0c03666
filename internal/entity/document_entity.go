package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded file with its extracted text.
// The raw bytes live on disk under the uploads directory; only the
// extracted text is kept here for follow-up questions and analysis.
type Document struct {
	Id         uuid.UUID
	Filename   string
	StoredPath string
	Text       string
	TextLength int
	UserId     string
	UploadDate time.Time
}
