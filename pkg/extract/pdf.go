package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PDFExtractor calls the companion PDF extraction service. PDF parsing is
// delegated to a sidecar rather than linked in; layout-aware extraction
// libraries are large and the service already exists for ingestion jobs.
type PDFExtractor struct {
	serviceURL string
	client     *http.Client
}

func NewPDFExtractor(serviceURL string) *PDFExtractor {
	if serviceURL == "" {
		serviceURL = "http://localhost:8081"
	}
	return &PDFExtractor{
		serviceURL: serviceURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type pdfParseResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
	Error string `json:"error,omitempty"`
}

func (e *PDFExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", e.serviceURL+"/parse", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling PDF service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("PDF service returned status %d", resp.StatusCode)
	}

	var result pdfParseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if result.Error != "" {
		return "", fmt.Errorf("PDF parse error: %s", result.Error)
	}

	return result.Text, nil
}
