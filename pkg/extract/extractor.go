package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFileType is returned for extensions no extractor handles.
type ErrUnsupportedFileType struct {
	Extension string
}

func (e *ErrUnsupportedFileType) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Extension)
}

// Extractor pulls plain text out of an uploaded file.
type Extractor interface {
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

// Registry routes a file to the extractor for its extension.
type Registry struct {
	byExtension map[string]Extractor
}

func NewRegistry(pdfServiceURL string) *Registry {
	txt := NewTextExtractor()
	docx := NewDocxExtractor()
	pdf := NewPDFExtractor(pdfServiceURL)

	return &Registry{
		byExtension: map[string]Extractor{
			".txt":  txt,
			".md":   txt,
			".docx": docx,
			".pdf":  pdf,
		},
	}
}

func (r *Registry) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	extractor, ok := r.byExtension[ext]
	if !ok {
		return "", &ErrUnsupportedFileType{Extension: ext}
	}
	return extractor.Extract(ctx, data, filename)
}

// Supported reports whether the filename's extension can be extracted.
func (r *Registry) Supported(filename string) bool {
	_, ok := r.byExtension[strings.ToLower(filepath.Ext(filename))]
	return ok
}
