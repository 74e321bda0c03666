package analysis

import (
	"regexp"
	"strings"
)

// Keywords that mark a document as a financial report rather than general text.
var financialKeywords = []string{
	"balance sheet", "income statement", "cash flow", "financial report",
	"revenue", "profit margin", "finance", "money", "cash", "ebitda",
	"shareholders' equity",
}

// FinancialData is the structured data pulled out of a financial document
// before analysis. The extraction is regex-based and best-effort; missing
// fields are simply absent.
type FinancialData struct {
	Metrics  map[string]string `json:"metrics"`
	Ratios   map[string]string `json:"ratios"`
	Segments []Segment         `json:"segments"`
}

type Segment struct {
	Name                string `json:"name"`
	RevenueContribution string `json:"revenue_contribution"`
}

// IsFinancial reports whether the text looks like a financial document.
func IsFinancial(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range financialKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

var metricPatterns = []struct {
	re  *regexp.Regexp
	key string
}{
	{regexp.MustCompile(`(?i)Total Revenue.*?\$([0-9,.]+)M`), "revenue"},
	{regexp.MustCompile(`(?i)Net Income.*?\$([0-9,.]+)M`), "net_income"},
	{regexp.MustCompile(`(?i)Earnings Per Share.*?\$([0-9.]+)`), "eps"},
	{regexp.MustCompile(`(?i)EBITDA.*?\$([0-9,.]+)M`), "ebitda"},
}

var ratioPatterns = []struct {
	re  *regexp.Regexp
	key string
}{
	{regexp.MustCompile(`(?i)Gross Margin:?\s*([0-9.]+)%`), "gross_margin"},
	{regexp.MustCompile(`(?i)Operating Margin:?\s*([0-9.]+)%`), "operating_margin"},
	{regexp.MustCompile(`(?i)Net Profit Margin:?\s*([0-9.]+)%`), "net_profit_margin"},
	{regexp.MustCompile(`(?i)Return on Assets.*?([0-9.]+)%`), "roa"},
	{regexp.MustCompile(`(?i)Return on Equity.*?([0-9.]+)%`), "roe"},
}

var segmentSectionRe = regexp.MustCompile(`(?s)Business Segments(.*?)(?:Geographic Distribution|\z)`)
var segmentEntryRe = regexp.MustCompile(`(?s)(\d+)\.\s*([^:]+):[^%]*?Revenue Contribution:\s*([0-9]+)%`)

// ExtractFinancialData pulls metrics, ratios and business segments out of
// the document text.
func ExtractFinancialData(text string) *FinancialData {
	data := &FinancialData{
		Metrics:  make(map[string]string),
		Ratios:   make(map[string]string),
		Segments: []Segment{},
	}

	for _, p := range metricPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			data.Metrics[p.key] = m[1]
		}
	}

	for _, p := range ratioPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			data.Ratios[p.key] = m[1]
		}
	}

	if section := segmentSectionRe.FindStringSubmatch(text); section != nil {
		for _, m := range segmentEntryRe.FindAllStringSubmatch(section[1], -1) {
			data.Segments = append(data.Segments, Segment{
				Name:                strings.TrimSpace(m[2]),
				RevenueContribution: strings.TrimSpace(m[3]) + "%",
			})
		}
	}

	return data
}
