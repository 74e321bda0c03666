package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRemovesThinkingBlocks(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "think tag",
			input: "<think>internal chain of thought</think>The market rose today.",
			want:  "The market rose today.",
		},
		{
			name:  "thinking tag",
			input: "<thinking>hidden</thinking>Answer here.",
			want:  "Answer here.",
		},
		{
			name:  "mixed case tag spanning lines",
			input: "<Think>line one\nline two</Think>\n\nVisible text.",
			want:  "Visible text.",
		},
		{
			name:  "multiple blocks",
			input: "<think>a</think>First.<think>b</think> Second.",
			want:  "First. Second.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.input))
		})
	}
}

func TestSanitizeRemovesMetaCommentary(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "let me think prefix",
			input: "Let me think about this. Oil prices climbed on supply concerns.",
			want:  "Oil prices climbed on supply concerns.",
		},
		{
			name:  "thinking line",
			input: "Thinking: consider the CPI print first\nInflation eased in July.",
			want:  "Inflation eased in July.",
		},
		{
			name:  "step lines",
			input: "Step 1: read the filing\nStep 2: compare margins\nMargins expanded year over year.",
			want:  "Margins expanded year over year.",
		},
		{
			name:  "case insensitive",
			input: "LET ME ANALYZE THIS. Rates held steady.",
			want:  "Rates held steady.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.input))
		})
	}
}

func TestSanitizeRepairsMarkdown(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "padded bold markers",
			input: "The outlook is ** cautiously positive ** overall.",
			want:  "The outlook is **cautiously positive** overall.",
		},
		{
			name:  "bullet missing space",
			input: "*revenue up 12%\n*margin flat",
			want:  "* revenue up 12%\n* margin flat",
		},
		{
			name:  "dash bullet missing space",
			input: "-first point\n-second point",
			want:  "- first point\n- second point",
		},
		{
			name:  "ordinal missing space",
			input: "1.Revenue\n2.Costs",
			want:  "1. Revenue\n2. Costs",
		},
		{
			name:  "heading missing space",
			input: "##Outlook\nStable.",
			want:  "## Outlook\nStable.",
		},
		{
			name:  "blank line runs collapse",
			input: "First paragraph.\n\n\n\nSecond paragraph.",
			want:  "First paragraph.\n\nSecond paragraph.",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  \n Answer. \n ",
			want:  "Answer.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.input))
		})
	}
}

func TestSanitizeLeavesWellFormedBoldAlone(t *testing.T) {
	input := "**Key risks** remain elevated.\n\n* existing bullet\n- another bullet"
	assert.Equal(t, input, Sanitize(input))
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"<think>x</think>** padded ** and *tight\n\n\nrest",
		"Step 1: a\n1.item\n##Header",
		"plain text with **bold** and a list:\n* one\n* two",
	}
	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once))
	}
}
