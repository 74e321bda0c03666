package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"finance-insights-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsRequestAndParsesResponse(t *testing.T) {
	var gotReq groqChatRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "the answer"}},
			},
		})
	}))
	defer server.Close()

	p := NewGroqProvider("test-key", server.URL, "llama3-70b-8192")

	got, err := p.Chat(context.Background(),
		[]llm.Message{
			{Role: "system", Content: "be helpful"},
			{Role: "user", Content: "hello"},
		},
		llm.WithTemperature(0.4),
		llm.WithMaxTokens(800),
	)
	require.NoError(t, err)

	assert.Equal(t, "the answer", got)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "llama3-70b-8192", gotReq.Model)
	assert.Equal(t, 0.4, gotReq.Temperature)
	assert.Equal(t, 800, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestChatModelOptionOverridesDefault(t *testing.T) {
	var gotReq groqChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	p := NewGroqProvider("key", server.URL, "default-model")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "q"}},
		llm.WithModel("gemma-7b-it"))
	require.NoError(t, err)
	assert.Equal(t, "gemma-7b-it", gotReq.Model)
}

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	var gotReq groqChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	p := NewGroqProvider("key", server.URL, "m")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "model", Content: "earlier reply"}})
	require.NoError(t, err)
	assert.Equal(t, "assistant", gotReq.Messages[0].Role)
}

func TestChatNon200ReturnsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limit exceeded"}`))
	}))
	defer server.Close()

	p := NewGroqProvider("key", server.URL, "m")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "q"}})

	var httpErr *llm.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Groq", httpErr.Provider)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Status)
	assert.Contains(t, httpErr.Body, "rate limit exceeded")
}

func TestChatTransportFailureReturnsClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	p := NewGroqProvider("key", server.URL, "m")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "q"}})

	var clientErr *llm.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, "Groq", clientErr.Provider)
}

func TestChatEmptyChoicesReturnsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	p := NewGroqProvider("key", server.URL, "m")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "q"}})
	assert.True(t, errors.Is(err, llm.ErrMalformedResponse))
}

func TestNewGroqProviderDefaultsURL(t *testing.T) {
	p := NewGroqProvider("key", "", "m")
	assert.Equal(t, DefaultAPIURL, p.APIURL)
}
