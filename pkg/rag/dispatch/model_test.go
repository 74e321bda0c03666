package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseModelID(t *testing.T) {
	cases := []struct {
		input string
		want  ModelID
	}{
		{"chatgpt", ModelChatGPT},
		{"llama", ModelLlama},
		{"deepseek", ModelDeepSeek},
		{"ChatGPT", ModelChatGPT},
		{"  llama  ", ModelLlama},
	}

	for _, tc := range cases {
		got, err := ParseModelID(tc.input)
		assert.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func TestParseModelIDRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "gpt-4o", "claude", "mistral"} {
		_, err := ParseModelID(name)
		assert.Error(t, err, name)

		var unsupported *UnsupportedModelError
		assert.ErrorAs(t, err, &unsupported)
	}
}

func TestModelIDString(t *testing.T) {
	assert.Equal(t, "chatgpt", ModelChatGPT.String())
	assert.Equal(t, "llama", ModelLlama.String())
	assert.Equal(t, "deepseek", ModelDeepSeek.String())
	assert.Equal(t, "unknown", ModelID(99).String())
}
