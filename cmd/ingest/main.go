package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"petcare-chatbot/ingest"
)

func main() {
	dataPath := flag.String("data", "data", "directory holding source documents (.txt, .md, .pdf)")
	dbPath := flag.String("db", "vectorstore", "directory for the persistent vector store")
	collection := flag.String("collection", "petcare-knowledge", "vector store collection name")
	flag.Parse()

	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	documents, err := ingest.LoadDocuments(*dataPath)
	if err != nil {
		logger.Fatal("failed to load documents", zap.Error(err))
	}
	if len(documents) == 0 {
		logger.Warn("no documents found", zap.String("data", *dataPath))
		return
	}
	logger.Info("loaded documents", zap.Int("count", len(documents)))

	indexer, err := ingest.NewIndexer(*dbPath, *collection, os.Getenv("OPENAI_API_KEY"))
	if err != nil {
		logger.Fatal("failed to open indexer", zap.Error(err))
	}

	indexed, err := indexer.Index(context.Background(), documents)
	if err != nil {
		logger.Fatal("indexing failed", zap.Error(err), zap.Int("indexed", indexed))
	}

	logger.Info("indexing complete",
		zap.Int("chunks", indexed),
		zap.Int("collection_size", indexer.Count()),
		zap.String("db", *dbPath))
}
