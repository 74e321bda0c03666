package extract

import (
	"context"
	"unicode/utf8"
)

// TextExtractor handles plain-text files. Non-UTF-8 input is decoded as
// Latin-1 so legacy exports do not fail the upload.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (e *TextExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}
