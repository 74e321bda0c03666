package executor

import (
	"context"
	"errors"
	"fmt"

	"finance-insights-be/internal/pkg/logger"
	"finance-insights-be/pkg/llm"
	"finance-insights-be/pkg/rag/analysis"
	"finance-insights-be/pkg/rag/dispatch"
	"finance-insights-be/pkg/rag/history"
	"finance-insights-be/pkg/rag/prompt"
	"finance-insights-be/pkg/rag/response"
	"finance-insights-be/pkg/rag/search"

	"github.com/google/uuid"
)

// Pipeline runs the full answer flow: retrieve, build prompt, dispatch,
// sanitize, record. Failures never escape as raw errors; they are converted
// into user-visible error strings at this boundary so callers always receive
// a response value.
type Pipeline struct {
	retriever  *search.Orchestrator
	dispatcher *dispatch.Dispatcher
	recorder   *history.Recorder
	logger     logger.ILogger
}

func NewPipeline(retriever *search.Orchestrator, dispatcher *dispatch.Dispatcher, recorder *history.Recorder, log logger.ILogger) *Pipeline {
	return &Pipeline{
		retriever:  retriever,
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     log,
	}
}

// AnswerQueryRequest carries one chat question through the pipeline.
type AnswerQueryRequest struct {
	Query        string
	Model        string
	Region       string
	DocumentName string
	IsMetaQuery  bool
	UserId       string
}

// AnswerQueryResult is always populated; Answer may be an error string.
type AnswerQueryResult struct {
	Answer    string
	HistoryId uuid.UUID
	Retrieved int
}

// AnswerQuery runs one synchronous pipeline execution and records the
// exchange. The returned error is only non-nil for infrastructure faults
// that also prevented recording; provider and routing failures come back
// inside Answer.
func (p *Pipeline) AnswerQuery(ctx context.Context, req AnswerQueryRequest) (*AnswerQueryResult, error) {
	answer, retrieved := p.answer(ctx, req)

	historyId, err := p.recorder.Record(ctx, req.Query, answer, req.Model, req.Region, req.UserId)
	if err != nil {
		p.logger.Error("executor", "Failed to record history", map[string]interface{}{
			"error": err.Error(),
		})
		return &AnswerQueryResult{Answer: answer, Retrieved: retrieved}, err
	}

	return &AnswerQueryResult{
		Answer:    answer,
		HistoryId: historyId,
		Retrieved: retrieved,
	}, nil
}

func (p *Pipeline) answer(ctx context.Context, req AnswerQueryRequest) (string, int) {
	model, err := dispatch.ParseModelID(req.Model)
	if err != nil {
		return errorText(err), 0
	}

	if req.IsMetaQuery {
		// Questions about the engine itself skip retrieval and always
		// run on the fixed OpenAI binding, whatever model was picked.
		pr := prompt.BuildMeta(req.Query)
		text, err := p.dispatcher.DispatchMeta(ctx, pr.System, pr.User)
		if err != nil {
			return errorText(err), 0
		}
		return response.Sanitize(text), 0
	}

	retrievedCtx, err := p.retriever.Retrieve(ctx, req.Query, req.Region, req.DocumentName)
	if err != nil {
		p.logger.Error("executor", "Retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Sprintf("Error from AI service: %v", err), 0
	}
	retrieved := len(retrievedCtx.Documents)
	pr := prompt.Build(req.Query, req.Region, retrievedCtx)

	text, err := p.dispatcher.Dispatch(ctx, pr.System, pr.User, model)
	if err != nil {
		return errorText(err), retrieved
	}

	return response.Sanitize(text), retrieved
}

// AnalyzeResult carries the analysis and what the detector decided.
type AnalyzeResult struct {
	Analysis    string
	IsFinancial bool
}

// AnalyzeDocument classifies the text, extracts structured financial data
// when present, and dispatches the analysis prompt with single-retry
// fallback. Like AnswerQuery, failures are returned as error strings.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, text, userComment string) *AnalyzeResult {
	if text == "" {
		return &AnalyzeResult{Analysis: "No text to analyze."}
	}

	isFinancial := analysis.IsFinancial(text)
	var extracted *analysis.FinancialData
	if isFinancial {
		extracted = analysis.ExtractFinancialData(text)
	}

	pr := prompt.BuildAnalysis(text, userComment, extracted)

	result, err := p.dispatcher.DispatchAnalysis(ctx, pr.System, pr.User, isFinancial)
	if err != nil {
		return &AnalyzeResult{Analysis: errorText(err), IsFinancial: isFinancial}
	}

	return &AnalyzeResult{
		Analysis:    response.Sanitize(result),
		IsFinancial: isFinancial,
	}
}

// errorText converts the error taxonomy into the category-prefixed strings
// callers see. Raw provider faults never reach the user unprefixed.
func errorText(err error) string {
	var unsupported *dispatch.UnsupportedModelError
	if errors.As(err, &unsupported) {
		return unsupported.Error()
	}

	var unconfigured *dispatch.UnconfiguredCredentialError
	if errors.As(err, &unconfigured) {
		return unconfigured.Error()
	}

	var timedOut *dispatch.ProviderTimeoutError
	if errors.As(err, &timedOut) {
		return timedOut.Error()
	}

	var combined *dispatch.AnalysisFallbackError
	if errors.As(err, &combined) {
		return combined.Error()
	}

	var httpErr *llm.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("%s API Error: %d - %s", httpErr.Provider, httpErr.Status, httpErr.Body)
	}

	var clientErr *llm.ClientError
	if errors.As(err, &clientErr) {
		return fmt.Sprintf("%s API Error: %v", clientErr.Provider, clientErr.Cause)
	}

	return fmt.Sprintf("Error from AI service: %v", err)
}
