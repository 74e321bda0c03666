package dispatch

import (
	"strings"
)

// ModelID is the closed set of logical model names a caller may pick.
// Each ID carries a fixed binding to a concrete provider and model string;
// adding a provider means adding a new ID, never changing existing bindings.
type ModelID int

const (
	ModelChatGPT ModelID = iota + 1
	ModelLlama
	ModelDeepSeek
)

// Provider families. ChatGPT goes through the OpenAI client, the rest
// through the Groq HTTP endpoint.
type providerKind int

const (
	providerOpenAI providerKind = iota + 1
	providerGroq
)

type modelBinding struct {
	name      string
	provider  providerKind
	modelName string
}

var bindings = map[ModelID]modelBinding{
	ModelChatGPT:  {name: "chatgpt", provider: providerOpenAI, modelName: "gpt-4o-mini"},
	ModelLlama:    {name: "llama", provider: providerGroq, modelName: "llama3-70b-8192"},
	ModelDeepSeek: {name: "deepseek", provider: providerGroq, modelName: "deepseek-r1-distill-llama-70b"},
}

func (m ModelID) String() string {
	if b, ok := bindings[m]; ok {
		return b.name
	}
	return "unknown"
}

// ParseModelID maps an external string onto the closed model set.
// Unrecognized names fail explicitly; there is no default provider.
func ParseModelID(s string) (ModelID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chatgpt":
		return ModelChatGPT, nil
	case "llama":
		return ModelLlama, nil
	case "deepseek":
		return ModelDeepSeek, nil
	default:
		return 0, &UnsupportedModelError{Name: s}
	}
}
