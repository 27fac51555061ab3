package ingest

import (
	"regexp"
	"strings"
)

// Chunking parameters matching the knowledge base's indexing setup
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+\s+`)

// ChunkText splits text into chunks of at most chunkSize characters,
// accumulating whole sentences and carrying roughly overlap characters
// of trailing sentences into the next chunk.
func ChunkText(text string, chunkSize, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	sentences := splitIntoSentences(text)

	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if currentLen == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, " "))

		// Keep trailing sentences as overlap for the next chunk
		var carried []string
		carriedLen := 0
		for i := len(current) - 1; i >= 0 && carriedLen < overlap; i-- {
			carried = append([]string{current[i]}, carried...)
			carriedLen += len(current[i]) + 1
		}
		current = carried
		currentLen = carriedLen
	}

	for _, sentence := range sentences {
		if currentLen+len(sentence) > chunkSize && currentLen > 0 {
			flush()
		}
		current = append(current, sentence)
		currentLen += len(sentence) + 1
	}

	if currentLen > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// splitIntoSentences splits text at sentence boundaries, dropping
// empty fragments
func splitIntoSentences(text string) []string {
	parts := sentenceSplitter.Split(text, -1)

	var sentences []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}
