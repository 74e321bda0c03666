package response

import (
	"regexp"
	"strings"
)

// Sanitizer strips leaked reasoning artifacts from model output and repairs
// common markdown irregularities. It is a fixed ordered list of rules so each
// one stays independently testable. Sanitize is pure and idempotent.

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Paired reasoning-tag blocks are removed with their content.
var thinkingBlockRe = regexp.MustCompile(`(?is)<think(?:ing)?>.*?</think(?:ing)?>`)

// Meta-commentary phrases that models sometimes emit despite being told not to.
var thinkingPhraseRules = []rule{
	{regexp.MustCompile(`(?i)Let me think about this\.?`), ""},
	{regexp.MustCompile(`(?i)Let's think through this\.?`), ""},
	{regexp.MustCompile(`(?i)Thinking through this\.?`), ""},
	{regexp.MustCompile(`(?i)I need to reason through this\.?`), ""},
	{regexp.MustCompile(`(?i)Let me analyze this\.?`), ""},
	{regexp.MustCompile(`(?i)Let me break this down\.?`), ""},
	{regexp.MustCompile(`(?i)Let's analyze this step by step\.?`), ""},
	{regexp.MustCompile(`(?i)Let me work through this\.?`), ""},
	{regexp.MustCompile(`(?i)I'll think about this\.?`), ""},
	{regexp.MustCompile(`(?i)Thinking:.*?\n`), ""},
	{regexp.MustCompile(`(?i)Internal reasoning:.*?\n`), ""},
	{regexp.MustCompile(`(?i)Step \d+:.*?\n`), ""},
}

// Markdown repairs: interior padding around bold markers, missing space after
// list/ordinal/heading markers at line start, runs of blank lines.
var markdownRules = []rule{
	{regexp.MustCompile(`\*\* (.*?) \*\*`), "**$1**"},
	{regexp.MustCompile(`(?m)^\*([^\s*])`), "* $1"},
	{regexp.MustCompile(`(?m)^-([^\s])`), "- $1"},
	{regexp.MustCompile(`(?m)^(\d+)\.([^\s])`), "$1. $2"},
	{regexp.MustCompile(`(?m)^(#+)([^\s#])`), "$1 $2"},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// Sanitize removes reasoning tags, meta-commentary and formatting artifacts
// before a response is returned or recorded.
func Sanitize(text string) string {
	cleaned := thinkingBlockRe.ReplaceAllString(text, "")

	for _, r := range thinkingPhraseRules {
		cleaned = r.pattern.ReplaceAllString(cleaned, r.replacement)
	}

	for _, r := range markdownRules {
		cleaned = r.pattern.ReplaceAllString(cleaned, r.replacement)
	}

	return strings.TrimSpace(cleaned)
}
