package dispatch

import (
	"context"
	"errors"
	"time"

	"finance-insights-be/pkg/llm"
)

// Chat generation parameters. Q&A runs warmer and shorter than analysis.
const (
	chatTemperature = 0.7
	chatMaxTokens   = 800

	analysisTemperature       = 0.4
	analysisMaxTokensDefault  = 800
	analysisMaxTokensDetailed = 1500

	analysisFallbackModel = "gemma-7b-it"
	analysisPrimaryModel  = "gpt-4o"

	// Questions about the assistant itself always go to the cheapest
	// OpenAI model with a tight budget, regardless of the caller's pick.
	metaModel     = "gpt-4o-mini"
	metaMaxTokens = 500

	// A hung provider must not block the request forever.
	providerTimeout = 120 * time.Second
)

// Dispatcher routes prompts to the provider a model ID is bound to.
// Providers are injected once at startup; a nil provider means its
// credential was never configured.
type Dispatcher struct {
	openai llm.LLMProvider
	groq   llm.LLMProvider
}

func NewDispatcher(openaiProvider, groqProvider llm.LLMProvider) *Dispatcher {
	return &Dispatcher{
		openai: openaiProvider,
		groq:   groqProvider,
	}
}

func (d *Dispatcher) providerFor(model ModelID) (llm.LLMProvider, *modelBinding, error) {
	binding, ok := bindings[model]
	if !ok {
		return nil, nil, &UnsupportedModelError{Name: model.String()}
	}

	switch binding.provider {
	case providerOpenAI:
		if d.openai == nil {
			return nil, nil, &UnconfiguredCredentialError{Provider: "OpenAI", EnvVar: "OPENAI_API_KEY"}
		}
		return d.openai, &binding, nil
	case providerGroq:
		if d.groq == nil {
			return nil, nil, &UnconfiguredCredentialError{Provider: "Groq", EnvVar: "GROQ_API_KEY"}
		}
		return d.groq, &binding, nil
	default:
		return nil, nil, &UnsupportedModelError{Name: binding.name}
	}
}

// Dispatch sends a system+user prompt to the provider bound to the model.
// Chat is user-directed model selection, so there is no cross-provider
// fallback here: a failed call surfaces as an error for the caller to report.
func (d *Dispatcher) Dispatch(ctx context.Context, systemMessage, userMessage string, model ModelID) (string, error) {
	provider, binding, err := d.providerFor(model)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	history := []llm.Message{
		{Role: "system", Content: systemMessage},
		{Role: "user", Content: userMessage},
	}

	text, err := provider.Chat(ctx, history,
		llm.WithModel(binding.modelName),
		llm.WithTemperature(chatTemperature),
		llm.WithMaxTokens(chatMaxTokens),
	)
	if err != nil {
		return "", timeoutOr(providerLabel(binding.provider), err)
	}
	return text, nil
}

// DispatchMeta answers a question about the assistant itself. The routing is
// fixed: OpenAI, small model, short answer. The model the caller selected is
// not consulted.
func (d *Dispatcher) DispatchMeta(ctx context.Context, systemMessage, userMessage string) (string, error) {
	if d.openai == nil {
		return "", &UnconfiguredCredentialError{Provider: "OpenAI", EnvVar: "OPENAI_API_KEY"}
	}

	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	history := []llm.Message{
		{Role: "system", Content: systemMessage},
		{Role: "user", Content: userMessage},
	}

	text, err := d.openai.Chat(ctx, history,
		llm.WithModel(metaModel),
		llm.WithTemperature(chatTemperature),
		llm.WithMaxTokens(metaMaxTokens),
	)
	if err != nil {
		return "", timeoutOr("OpenAI", err)
	}
	return text, nil
}

// DispatchAnalysis sends a document-analysis prompt to the primary provider
// and retries once against the fallback when the primary raises. Detailed
// runs (structured financial data detected) get a larger token budget.
func (d *Dispatcher) DispatchAnalysis(ctx context.Context, systemMessage, userMessage string, detailed bool) (string, error) {
	maxTokens := analysisMaxTokensDefault
	if detailed {
		maxTokens = analysisMaxTokensDetailed
	}

	history := []llm.Message{
		{Role: "system", Content: systemMessage},
		{Role: "user", Content: userMessage},
	}

	if d.openai == nil {
		return "", &UnconfiguredCredentialError{Provider: "OpenAI", EnvVar: "OPENAI_API_KEY"}
	}

	primaryCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	text, primaryErr := d.openai.Chat(primaryCtx, history,
		llm.WithModel(analysisPrimaryModel),
		llm.WithTemperature(analysisTemperature),
		llm.WithMaxTokens(maxTokens),
	)
	if primaryErr == nil {
		return text, nil
	}
	primaryErr = timeoutOr("OpenAI", primaryErr)

	if d.groq == nil {
		return "", &UnconfiguredCredentialError{Provider: "Groq", EnvVar: "GROQ_API_KEY"}
	}

	fallbackCtx, cancelFallback := context.WithTimeout(ctx, providerTimeout)
	defer cancelFallback()

	text, fallbackErr := d.groq.Chat(fallbackCtx, history,
		llm.WithModel(analysisFallbackModel),
		llm.WithTemperature(analysisTemperature),
		llm.WithMaxTokens(maxTokens),
	)
	if fallbackErr == nil {
		return text, nil
	}
	fallbackErr = timeoutOr("Groq", fallbackErr)

	return "", &AnalysisFallbackError{Primary: primaryErr, Fallback: fallbackErr}
}

func providerLabel(kind providerKind) string {
	if kind == providerGroq {
		return "Groq"
	}
	return "OpenAI"
}

// timeoutOr maps a deadline expiry onto the timeout error kind. Other
// provider failures pass through untouched.
func timeoutOr(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ProviderTimeoutError{Provider: provider}
	}
	return err
}
