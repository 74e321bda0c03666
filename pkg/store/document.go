package store

// RetrievedDocument is one knowledge-base hit carried through the answer flow.
type RetrievedDocument struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	Source     string  `json:"source"`
	Region     string  `json:"region"`
	Summary    string  `json:"summary"`
	Similarity float64 `json:"similarity"`
}

// Context is the assembled grounding material handed to the prompt builder.
type Context struct {
	Text      string              `json:"text"`
	Documents []RetrievedDocument `json:"documents"`

	// Override marks a context built from an uploaded document rather
	// than from retrieval.
	Override bool `json:"override"`
}

func (c Context) Empty() bool {
	return !c.Override && len(c.Documents) == 0
}
