package dispatch

import "fmt"

// UnsupportedModelError means the caller named a model outside the closed set.
type UnsupportedModelError struct {
	Name string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("Unsupported model: %s", e.Name)
}

// UnconfiguredCredentialError means the provider the model routes to has no
// API key configured. Raised before any network call is attempted.
type UnconfiguredCredentialError struct {
	Provider string
	EnvVar   string
}

func (e *UnconfiguredCredentialError) Error() string {
	return fmt.Sprintf("Error: %s API key not configured. Please set the %s environment variable.", e.Provider, e.EnvVar)
}

// ProviderTimeoutError means the provider did not answer within the
// dispatch deadline. Distinct from other transport faults so callers can
// tell a slow provider from an unreachable one.
type ProviderTimeoutError struct {
	Provider string
}

func (e *ProviderTimeoutError) Error() string {
	return fmt.Sprintf("Error: %s request timed out. Please try again.", e.Provider)
}

// AnalysisFallbackError carries both failures when the primary and the
// fallback analysis providers both raise.
type AnalysisFallbackError struct {
	Primary  error
	Fallback error
}

func (e *AnalysisFallbackError) Error() string {
	return fmt.Sprintf("Analysis Error: %v (OpenAI) and %v (Groq)", e.Primary, e.Fallback)
}
