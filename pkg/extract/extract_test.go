package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySupported(t *testing.T) {
	r := NewRegistry("")

	assert.True(t, r.Supported("report.pdf"))
	assert.True(t, r.Supported("notes.txt"))
	assert.True(t, r.Supported("README.md"))
	assert.True(t, r.Supported("filing.DOCX"))
	assert.False(t, r.Supported("image.png"))
	assert.False(t, r.Supported("archive.zip"))
	assert.False(t, r.Supported("noextension"))
}

func TestRegistryRejectsUnknownExtension(t *testing.T) {
	r := NewRegistry("")

	_, err := r.Extract(context.Background(), []byte("data"), "slides.pptx")
	var unsupported *ErrUnsupportedFileType
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".pptx", unsupported.Extension)
}

func TestTextExtractorUTF8(t *testing.T) {
	e := NewTextExtractor()

	got, err := e.Extract(context.Background(), []byte("plain utf-8 text with é"), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "plain utf-8 text with é", got)
}

func TestTextExtractorLatin1Fallback(t *testing.T) {
	e := NewTextExtractor()

	// 0xE9 is é in Latin-1 but invalid as a standalone UTF-8 byte.
	got, err := e.Extract(context.Background(), []byte{'c', 'a', 'f', 0xE9}, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDocxExtractorReadsParagraphs(t *testing.T) {
	doc := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	e := NewDocxExtractor()
	got, err := e.Extract(context.Background(), doc, "doc.docx")
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", got)
}

func TestDocxExtractorMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, _ := w.Create("word/styles.xml")
	f.Write([]byte("<styles/>"))
	w.Close()

	e := NewDocxExtractor()
	_, err := e.Extract(context.Background(), buf.Bytes(), "doc.docx")
	assert.ErrorContains(t, err, "word/document.xml")
}

func TestDocxExtractorRejectsNonZip(t *testing.T) {
	e := NewDocxExtractor()
	_, err := e.Extract(context.Background(), []byte("not a zip archive"), "doc.docx")
	assert.Error(t, err)
}

func TestPDFExtractorCallsParserService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parse", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"text":  "parsed pdf text",
			"pages": 3,
		})
	}))
	defer server.Close()

	e := NewPDFExtractor(server.URL)
	got, err := e.Extract(context.Background(), []byte("%PDF-1.4 fake"), "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "parsed pdf text", got)
}

func TestPDFExtractorSurfacesServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "encrypted document"})
	}))
	defer server.Close()

	e := NewPDFExtractor(server.URL)
	_, err := e.Extract(context.Background(), []byte("%PDF"), "report.pdf")
	assert.ErrorContains(t, err, "encrypted document")
}
