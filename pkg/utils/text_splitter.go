package utils

// SplitText splits a long string into chunks of approximately chunkSize
// characters with an overlap to preserve context across boundaries.
// Character-based on purpose; summaries here are short enough that a
// tokenizer-aware splitter is not worth the dependency.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	runes := []rune(text)
	for i := 0; i < len(runes); i += step {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}

	return chunks
}
