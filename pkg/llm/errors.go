package llm

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse means the provider answered 200 but the body did not
// carry a usable completion.
var ErrMalformedResponse = errors.New("malformed provider response")

// HTTPError is a non-2xx answer from a provider API.
type HTTPError struct {
	Provider string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.Status, e.Body)
}

// ClientError wraps transport failures (connection refused, DNS, timeouts).
type ClientError struct {
	Provider string
	Cause    error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Cause)
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}
