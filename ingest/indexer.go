package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/philippgille/chromem-go"
)

// Indexer persists document chunks into a chromem-go collection so the
// knowledge service can answer semantic queries over them.
type Indexer struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewIndexer opens (or creates) a persistent vector store at dbPath.
// When an OpenAI API key is supplied, chunks are embedded remotely;
// otherwise chromem's default local embeddings are used.
func NewIndexer(dbPath, collectionName, openaiAPIKey string) (*Indexer, error) {
	db, err := chromem.NewPersistentDB(dbPath, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector store: %w", err)
	}

	var embeddingFunc chromem.EmbeddingFunc
	if openaiAPIKey != "" {
		embeddingFunc = chromem.NewEmbeddingFuncOpenAI(openaiAPIKey, chromem.EmbeddingModelOpenAI3Small)
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return &Indexer{db: db, collection: collection}, nil
}

// Index chunks every document and adds the chunks to the collection.
// It returns the number of chunks written.
func (ix *Indexer) Index(ctx context.Context, documents []Document) (int, error) {
	indexed := 0

	for _, doc := range documents {
		chunks := ChunkText(doc.Content, DefaultChunkSize, DefaultChunkOverlap)
		name := filepath.Base(doc.Source)
		stem := strings.TrimSuffix(name, filepath.Ext(name))

		for i, chunk := range chunks {
			err := ix.collection.AddDocument(ctx, chromem.Document{
				ID:      fmt.Sprintf("%s_chunk_%d", stem, i),
				Content: chunk,
				Metadata: map[string]string{
					"file_name":    name,
					"file_path":    doc.Source,
					"chunk_index":  strconv.Itoa(i),
					"total_chunks": strconv.Itoa(len(chunks)),
					"indexed_at":   time.Now().UTC().Format(time.RFC3339),
				},
			})
			if err != nil {
				return indexed, fmt.Errorf("failed to add chunk %d of %s: %w", i, doc.Source, err)
			}
			indexed++
		}
	}

	return indexed, nil
}

// Count returns the number of documents in the collection
func (ix *Indexer) Count() int {
	return ix.collection.Count()
}
