package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/repository/specification"
	"finance-insights-be/pkg/llm"
	"finance-insights-be/pkg/rag/dispatch"
	"finance-insights-be/pkg/rag/history"
	"finance-insights-be/pkg/rag/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return []float32{0.1, 0.2}, nil
}

type fakeIndex struct {
	results []*entity.ScoredNewsArticle
	calls   int
}

func (f *fakeIndex) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int, region string) ([]*entity.ScoredNewsArticle, error) {
	f.calls++
	return f.results, nil
}

type fakeDocStore struct {
	doc *entity.Document
}

func (f *fakeDocStore) FindByFilename(ctx context.Context, filename string) (*entity.Document, error) {
	return f.doc, nil
}

type fakeHistoryRepo struct {
	created []*entity.ChatHistory
	err     error
}

func (f *fakeHistoryRepo) Create(ctx context.Context, h *entity.ChatHistory) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, h)
	return nil
}

func (f *fakeHistoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatHistory, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatHistory, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) Delete(ctx context.Context, id uuid.UUID, userId string) (int64, error) {
	return 0, nil
}

type fakeLLM struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
	lastOpts   llm.Options
	calls      int
}

func (f *fakeLLM) Chat(ctx context.Context, hist []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	f.lastOpts = llm.Options{}
	for _, o := range options {
		o(&f.lastOpts)
	}
	for _, m := range hist {
		switch m.Role {
		case "system":
			f.lastSystem = m.Content
		case "user":
			f.lastUser = m.Content
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, p string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: p}}, options...)
}

type pipelineFixture struct {
	pipeline *Pipeline
	embedder *fakeEmbedder
	index    *fakeIndex
	docs     *fakeDocStore
	repo     *fakeHistoryRepo
	openai   *fakeLLM
	groq     *fakeLLM
}

func newFixture() *pipelineFixture {
	f := &pipelineFixture{
		embedder: &fakeEmbedder{},
		index:    &fakeIndex{},
		docs:     &fakeDocStore{},
		repo:     &fakeHistoryRepo{},
		openai:   &fakeLLM{reply: "openai answer"},
		groq:     &fakeLLM{reply: "groq answer"},
	}

	retriever := search.NewOrchestrator(f.embedder, f.index, f.docs, noopLogger{})
	dispatcher := dispatch.NewDispatcher(f.openai, f.groq)
	recorder := history.NewRecorder(f.repo)
	f.pipeline = NewPipeline(retriever, dispatcher, recorder, noopLogger{})
	return f
}

func article(summary string) *entity.ScoredNewsArticle {
	return &entity.ScoredNewsArticle{
		Article: &entity.NewsArticle{
			Id:              uuid.New(),
			Source:          "Reuters",
			Region:          "US",
			Date:            "2025-02-01",
			DetailedSummary: summary,
		},
		Similarity: 0.9,
	}
}

func TestAnswerQueryFullFlow(t *testing.T) {
	f := newFixture()
	f.index.results = []*entity.ScoredNewsArticle{article("Markets gained on earnings.")}
	f.openai.reply = "<think>hidden</think>Markets gained because of strong earnings."

	result, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query:  "why did markets gain",
		Model:  "chatgpt",
		Region: "US",
		UserId: "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Markets gained because of strong earnings.", result.Answer)
	assert.Equal(t, 1, result.Retrieved)
	assert.NotEqual(t, uuid.Nil, result.HistoryId)

	assert.Contains(t, f.openai.lastUser, "Markets gained on earnings.")
	assert.Contains(t, f.openai.lastSystem, "US region")

	require.Len(t, f.repo.created, 1)
	assert.Equal(t, "Markets gained because of strong earnings.", f.repo.created[0].Messages[1].Content)
	assert.Zero(t, f.groq.calls)
}

func TestAnswerQueryRoutesGroqModels(t *testing.T) {
	f := newFixture()
	f.index.results = []*entity.ScoredNewsArticle{article("context")}

	result, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: "q", Model: "llama", UserId: "u",
	})
	require.NoError(t, err)
	assert.Equal(t, "groq answer", result.Answer)
	assert.Zero(t, f.openai.calls)
}

func TestAnswerQueryUnsupportedModel(t *testing.T) {
	f := newFixture()

	result, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: "q", Model: "claude", UserId: "u",
	})
	require.NoError(t, err)
	assert.Equal(t, "Unsupported model: claude", result.Answer)

	// The error string still gets recorded like any other answer.
	require.Len(t, f.repo.created, 1)
	assert.Equal(t, "Unsupported model: claude", f.repo.created[0].Messages[1].Content)
	assert.Zero(t, f.index.calls)
}

func TestAnswerQueryMetaSkipsRetrieval(t *testing.T) {
	f := newFixture()

	result, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: "what can you do", Model: "chatgpt", IsMetaQuery: true, UserId: "u",
	})
	require.NoError(t, err)
	assert.Equal(t, "openai answer", result.Answer)
	assert.Zero(t, f.embedder.calls)
	assert.Zero(t, f.index.calls)
	assert.Contains(t, f.openai.lastSystem, "financial news search engine")
}

func TestAnswerQueryMetaAlwaysRoutesToOpenAI(t *testing.T) {
	f := newFixture()

	result, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: "how does this work", Model: "llama", IsMetaQuery: true, UserId: "u",
	})
	require.NoError(t, err)
	assert.Equal(t, "openai answer", result.Answer)
	assert.Zero(t, f.groq.calls)
	assert.Equal(t, "gpt-4o-mini", f.openai.lastOpts.Model)
	assert.Equal(t, 500, f.openai.lastOpts.MaxTokens)
}

func TestAnswerQueryProviderTimeout(t *testing.T) {
	f := newFixture()
	f.openai.err = &llm.ClientError{Provider: "OpenAI", Cause: context.DeadlineExceeded}

	result, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: "slow question", Model: "chatgpt", UserId: "u",
	})
	require.NoError(t, err)
	assert.Equal(t, "Error: OpenAI request timed out. Please try again.", result.Answer)
	assert.Zero(t, f.groq.calls)
}

func TestAnswerQueryDocumentOverride(t *testing.T) {
	f := newFixture()
	f.docs.doc = &entity.Document{Filename: "report.pdf", Text: "Revenue grew."}

	result, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: "what grew", Model: "chatgpt", DocumentName: "report.pdf", UserId: "u",
	})
	require.NoError(t, err)
	assert.Equal(t, "openai answer", result.Answer)
	assert.Zero(t, f.index.calls)
	assert.Contains(t, f.openai.lastUser, "DOCUMENT: report.pdf")
}

func TestAnswerQueryEmptyRetrievalUsesSentinel(t *testing.T) {
	f := newFixture()

	result, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: "q", Model: "chatgpt", UserId: "u",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Retrieved)
	assert.Contains(t, f.openai.lastUser, search.NoDocumentsSentinel)
}

func TestAnswerQueryProviderHTTPError(t *testing.T) {
	f := newFixture()
	f.openai.err = &llm.HTTPError{Provider: "OpenAI", Status: 429, Body: "rate limited"}

	result, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: "q", Model: "chatgpt", UserId: "u",
	})
	require.NoError(t, err)
	assert.Equal(t, "OpenAI API Error: 429 - rate limited", result.Answer)
	// No cross-provider fallback for chat.
	assert.Zero(t, f.groq.calls)
}

func TestAnswerQueryMissingCredential(t *testing.T) {
	f := newFixture()
	retriever := search.NewOrchestrator(f.embedder, f.index, f.docs, noopLogger{})
	dispatcher := dispatch.NewDispatcher(nil, nil)
	p := NewPipeline(retriever, dispatcher, history.NewRecorder(f.repo), noopLogger{})

	result, err := p.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: "q", Model: "deepseek", UserId: "u",
	})
	require.NoError(t, err)
	assert.Equal(t, "Error: Groq API key not configured. Please set the GROQ_API_KEY environment variable.", result.Answer)
}

func TestAnswerQueryRecordFailureStillReturnsAnswer(t *testing.T) {
	f := newFixture()
	f.repo.err = errors.New("db down")

	result, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: "q", Model: "chatgpt", UserId: "u",
	})
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "openai answer", result.Answer)
	assert.Equal(t, uuid.Nil, result.HistoryId)
}

func TestAnalyzeDocumentEmptyText(t *testing.T) {
	f := newFixture()

	got := f.pipeline.AnalyzeDocument(context.Background(), "", "comment")
	assert.Equal(t, "No text to analyze.", got.Analysis)
	assert.False(t, got.IsFinancial)
	assert.Zero(t, f.openai.calls)
}

func TestAnalyzeDocumentFinancialText(t *testing.T) {
	f := newFixture()
	f.openai.reply = "## Analysis\nSolid quarter."

	got := f.pipeline.AnalyzeDocument(context.Background(),
		"Income statement: Total Revenue: $100.0M this quarter.", "please analyze")
	assert.True(t, got.IsFinancial)
	assert.Equal(t, "## Analysis\nSolid quarter.", got.Analysis)
	assert.Contains(t, f.openai.lastUser, "1. TITLE:")
	assert.Contains(t, f.openai.lastUser, `"revenue": "100.0"`)
}

func TestAnalyzeDocumentGeneralText(t *testing.T) {
	f := newFixture()
	f.openai.reply = "Key takeaways."

	got := f.pipeline.AnalyzeDocument(context.Background(), "Team offsite planning notes.", "")
	assert.False(t, got.IsFinancial)
	assert.NotContains(t, f.openai.lastUser, "1. TITLE:")
}

func TestAnalyzeDocumentFallsBackToGroq(t *testing.T) {
	f := newFixture()
	f.openai.err = errors.New("openai outage")
	f.groq.reply = "fallback analysis"

	got := f.pipeline.AnalyzeDocument(context.Background(), "general notes", "")
	assert.Equal(t, "fallback analysis", got.Analysis)
	assert.Equal(t, 1, f.groq.calls)
}

func TestAnalyzeDocumentCombinedFailure(t *testing.T) {
	f := newFixture()
	f.openai.err = errors.New("primary down")
	f.groq.err = errors.New("fallback down")

	got := f.pipeline.AnalyzeDocument(context.Background(), "general notes", "")
	assert.Equal(t, "Analysis Error: primary down (OpenAI) and fallback down (Groq)", got.Analysis)
}

func TestAnswerQueryLongQueryTitleTruncation(t *testing.T) {
	f := newFixture()
	longQuery := strings.Repeat("x", 120)

	_, err := f.pipeline.AnswerQuery(context.Background(), AnswerQueryRequest{
		Query: longQuery, Model: "chatgpt", UserId: "u",
	})
	require.NoError(t, err)
	assert.Equal(t, longQuery[:50]+"...", f.repo.created[0].Title)
}
