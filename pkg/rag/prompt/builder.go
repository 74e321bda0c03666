package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"finance-insights-be/internal/constant"
	"finance-insights-be/pkg/rag/analysis"
	"finance-insights-be/pkg/store"
	"finance-insights-be/pkg/utils"
)

// Prompt is the two-message structure every dispatch receives. The system
// message is never echoed back to the caller.
type Prompt struct {
	System string
	User   string
}

// How much document text is inlined into an analysis prompt.
const (
	analysisExcerptDetailed = 6000
	analysisExcerptDefault  = 4000
)

// Build assembles the chat Q&A prompt. The system message carries the
// persona, the formatting rules and the negative instructions matching what
// the sanitizer strips; the user message carries the query, the retrieved
// context and the task instructions.
func Build(query, region string, context store.Context) Prompt {
	if region == "" {
		region = constant.RegionGlobal
	}

	system := fmt.Sprintf(`You are a financial insights assistant specializing in the %s region.
Your task is to provide accurate, helpful information based on retrieved documents and your knowledge.

IMPORTANT: You must use internal reasoning to analyze the query and formulate your response.
This means you should:
1. Analyze what the user is asking
2. Consider the relevant information from retrieved documents
3. Reason through the best way to answer
4. Provide only your final, polished response

FORMATTING INSTRUCTIONS:
- Use proper markdown formatting for your response
- For bold text, use **bold text** format (not ** bold text **)
- For bullet points, use proper markdown: "- Point 1" with a space after the dash
- For numbered lists, use: "1. First item" with a space after the number
- For headings, use: "## Heading" with a space after the #
- Ensure there are no spaces between the asterisks and the text for bold/italic formatting

DO NOT share your internal reasoning process with the user. They should only see your final answer.
DO NOT use <Thinking> or <Think> tags in your response.
DO NOT include phrases like "Let me think about this" or "Analyzing this step by step".
DO NOT number your reasoning steps or include any meta-commentary about your thinking process.
`, region)

	regionScope := ""
	if region != constant.RegionGlobal {
		regionScope = " relevant to the " + region + " region"
	}

	user := fmt.Sprintf(`USER QUERY: %s

RETRIEVED CONTEXT:
%s

INSTRUCTIONS:
1. First, internally analyze what information from the retrieved documents is relevant to the query.
2. If the retrieved documents don't contain relevant information, use your general knowledge.
3. Format your response with bullet points for clarity where appropriate.
4. Focus exclusively on financial insights%s.
5. Keep your response concise and directly address the user's query.
6. DO NOT mention that you're using retrieved documents or reference this prompt.
7. DO NOT include any thinking tags, reasoning steps, or internal analysis in your final response.
`, query, context.Text, regionScope)

	return Prompt{System: system, User: user}
}

// BuildAnalysis assembles the document-analysis prompt. Financial documents
// get the structured nine-section outline and the regex-extracted metrics;
// general text gets a shorter free-form brief.
func BuildAnalysis(text, userComment string, extracted *analysis.FinancialData) Prompt {
	system := `You are a financial analyst specializing in detailed financial report analysis.

IMPORTANT: You must use internal reasoning to analyze the document and formulate your response.
This means you should:
1. Analyze the document content
2. Identify key financial metrics and trends
3. Reason through the best way to present your analysis
4. Provide only your final, polished analysis

FORMATTING INSTRUCTIONS:
- Use proper markdown formatting for your response
- For bold text, use **bold text** format (not ** bold text **)
- For bullet points, use proper markdown: "- Point 1" with a space after the dash
- For numbered lists, use: "1. First item" with a space after the number
- For headings, use: "## Heading" with a space after the #
- Ensure there are no spaces between the asterisks and the text for bold/italic formatting

DO NOT share your internal reasoning process with the user. They should only see your final analysis.
DO NOT use <Thinking> or <Think> tags in your response.
DO NOT include phrases like "Let me think about this" or "Analyzing this step by step".
DO NOT number your reasoning steps or include any meta-commentary about your thinking process.
`

	var user string
	if extracted != nil {
		user = fmt.Sprintf(`Analyze this financial document and provide a comprehensive analysis with the following structure:

1. TITLE: Create a clear title for the analysis
2. EXECUTIVE SUMMARY: 2-3 sentences summarizing the overall financial health
3. OVERALL PERFORMANCE: Analyze revenue, profitability, and cash flow trends
4. KEY FINANCIAL METRICS: Present the most important metrics with their values and significance
5. SEGMENT ANALYSIS: Analyze performance across business segments and geographies if mentioned
6. FINANCIAL HEALTH INDICATORS: Analyze profitability, liquidity, and solvency ratios
7. FUTURE OUTLOOK: Summarize forecasts and management's forward-looking statements
8. RISK ASSESSMENT: Identify key risks and mitigation strategies mentioned
9. CONCLUSION: Provide a balanced conclusion about the company's financial position

Format your analysis with clear section headings, bullet points for key insights, and concise paragraphs.
Make sure your analysis is factual, balanced, and based only on information in the document.

USER COMMENT: %s

EXTRACTED FINANCIAL METRICS:
%s

EXTRACTED FINANCIAL RATIOS:
%s

EXTRACTED BUSINESS SEGMENTS:
%s

DOCUMENT TEXT (EXCERPT):
%s`, userComment, toJSON(extracted.Metrics), toJSON(extracted.Ratios), toJSON(extracted.Segments), excerpt(text, analysisExcerptDetailed))
	} else {
		user = fmt.Sprintf(`Analyze this document and provide key insights. Focus on main points, important information, and key takeaways.
Format your response with clear headings, bullet points for key insights, and concise paragraphs.

USER COMMENT: %s

Text:
%s`, userComment, excerpt(text, analysisExcerptDefault))
	}

	return Prompt{System: system, User: user}
}

// BuildMeta assembles the prompt for questions about the search engine
// itself. No retrieval feeds this path.
func BuildMeta(query string) Prompt {
	system := `You are a helpful assistant for a financial news search engine. Answer questions about how the system works.
The system retrieves relevant financial news documents, supports region filtering, multiple AI models (ChatGPT, Llama, DeepSeek), document upload and analysis, and chat history.

IMPORTANT: DO NOT use <Thinking> or <Think> tags in your response.
DO NOT include phrases like "Let me think about this" or "Analyzing this step by step".
DO NOT number your reasoning steps or include any meta-commentary about your thinking process.
`

	user := strings.TrimSpace(query)
	return Prompt{System: system, User: user}
}

func excerpt(text string, limit int) string {
	return utils.TruncateRunes(text, limit)
}

func toJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
