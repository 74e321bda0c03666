package search

import (
	"context"
	"fmt"
	"strings"

	"finance-insights-be/internal/constant"
	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/pkg/logger"
	"finance-insights-be/pkg/embedding"
	"finance-insights-be/pkg/store"
	"finance-insights-be/pkg/utils"
)

// NoDocumentsSentinel is the context handed to the prompt builder when
// retrieval comes back empty. Downstream must still produce a valid prompt
// so the model can degrade to general knowledge.
const NoDocumentsSentinel = "No relevant documents were retrieved from the knowledge base."

const (
	// TopKPrimary is the neighbor count for the main ask flow.
	TopKPrimary = 5
	// TopKSimplified is the neighbor count for the lightweight flow.
	TopKSimplified = 3

	// maxInlineChars caps a single document's inlined summary so one long
	// article cannot blow up the prompt.
	maxInlineChars = 2000

	// docOverridePrefixChars is how much of an uploaded document's text is
	// inlined for document-scoped follow-up questions.
	docOverridePrefixChars = 5000
)

// VectorIndex is the nearest-neighbor search the orchestrator queries.
type VectorIndex interface {
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int, region string) ([]*entity.ScoredNewsArticle, error)
}

// DocumentStore resolves an uploaded document by filename for the
// document-override branch.
type DocumentStore interface {
	FindByFilename(ctx context.Context, filename string) (*entity.Document, error)
}

// Orchestrator turns a query into grounding context: embed, k-nearest search
// with optional region filter, or a single-document override.
type Orchestrator struct {
	embedder  embedding.Provider
	index     VectorIndex
	documents DocumentStore
	logger    logger.ILogger
	topK      int
}

func NewOrchestrator(embedder embedding.Provider, index VectorIndex, documents DocumentStore, log logger.ILogger) *Orchestrator {
	return &Orchestrator{
		embedder:  embedder,
		index:     index,
		documents: documents,
		logger:    log,
		topK:      TopKPrimary,
	}
}

// WithTopK overrides the neighbor count, used by the simplified flow.
func (o *Orchestrator) WithTopK(k int) *Orchestrator {
	clone := *o
	clone.topK = k
	return &clone
}

// Retrieve produces the context for a query. When documentName is set the
// vector store is never queried; answers must stay grounded in exactly that
// document.
func (o *Orchestrator) Retrieve(ctx context.Context, query, region, documentName string) (store.Context, error) {
	if documentName != "" {
		return o.retrieveDocumentOverride(ctx, documentName)
	}
	return o.retrieveCorpus(ctx, query, region)
}

func (o *Orchestrator) retrieveDocumentOverride(ctx context.Context, documentName string) (store.Context, error) {
	doc, err := o.documents.FindByFilename(ctx, documentName)
	if err != nil {
		return store.Context{}, fmt.Errorf("document lookup failed: %w", err)
	}
	if doc == nil || doc.Text == "" {
		o.logger.Warn("search", "Document text not found for override", map[string]interface{}{
			"filename": documentName,
		})
		return store.Context{
			Text:     NoDocumentsSentinel,
			Override: true,
		}, nil
	}

	text := utils.TruncateRunes(doc.Text, docOverridePrefixChars)

	return store.Context{
		Text:     fmt.Sprintf("DOCUMENT: %s\n\nContent: %s...", documentName, text),
		Override: true,
	}, nil
}

func (o *Orchestrator) retrieveCorpus(ctx context.Context, query, region string) (store.Context, error) {
	if strings.TrimSpace(query) == "" {
		return store.Context{}, fmt.Errorf("cannot embed an empty query")
	}

	queryEmbedding, err := o.embedder.Generate(ctx, query)
	if err != nil {
		return store.Context{}, fmt.Errorf("embedding generation failed: %w", err)
	}

	// "Global" is the no-filter sentinel.
	regionFilter := ""
	if region != "" && region != constant.RegionGlobal {
		regionFilter = region
	}

	scored, err := o.index.SearchSimilar(ctx, queryEmbedding, o.topK, regionFilter)
	if err != nil {
		return store.Context{}, fmt.Errorf("vector search failed: %w", err)
	}

	if len(scored) == 0 {
		o.logger.Info("search", "No relevant documents found", map[string]interface{}{
			"region": region,
		})
		return store.Context{Text: NoDocumentsSentinel}, nil
	}

	docs := make([]store.RetrievedDocument, 0, len(scored))
	var sb strings.Builder
	for i, hit := range scored {
		summary := utils.TruncateRunes(hit.Article.DetailedSummary, maxInlineChars)

		doc := store.RetrievedDocument{
			ID:         hit.Article.Id.String(),
			Date:       hit.Article.Date,
			Source:     hit.Article.Source,
			Region:     hit.Article.Region,
			Summary:    summary,
			Similarity: hit.Similarity,
		}
		docs = append(docs, doc)

		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("DOCUMENT %d:\n", i+1))
		sb.WriteString(fmt.Sprintf("Date: %s\n", orDefault(doc.Date, "N/A")))
		sb.WriteString(fmt.Sprintf("Source: %s\n", orDefault(doc.Source, "Unknown")))
		sb.WriteString(fmt.Sprintf("Region: %s\n", orDefault(doc.Region, constant.RegionGlobal)))
		sb.WriteString(fmt.Sprintf("Content: %s", doc.Summary))
	}

	return store.Context{
		Text:      sb.String(),
		Documents: docs,
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
