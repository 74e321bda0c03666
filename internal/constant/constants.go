package constant

// Chat message roles stored in history documents
const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// RegionGlobal is the sentinel region meaning "no region filter".
const RegionGlobal = "Global"

// Regions supported as retrieval filters. Global applies no filter.
var Regions = []string{
	RegionGlobal,
	"US",
	"Europe",
	"Asia Pacific",
	"Middle East",
	"Africa",
	"Latin America",
}

// IsValidRegion reports whether the given label is a known region.
func IsValidRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

// Pub/sub topics and event types
const (
	IndexDocumentTopic = "INDEX_DOCUMENT"

	EventQueryAnswered    = "QUERY_ANSWERED"
	EventDocumentAnalyzed = "DOCUMENT_ANALYZED"
)
