package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/l-pommeret/RAG-DiBiSo/internal/bootstrap"
	"github.com/l-pommeret/RAG-DiBiSo/internal/config"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/database"
)

// Loads the scraped corpus (all_pages.json, all_libraries.json) into the
// database and embeds every document through the ingestion pipeline.
func main() {
	cfg := config.Load()

	dataDir := flag.String("data", cfg.App.DataDir, "directory containing all_pages.json / all_libraries.json")
	drain := flag.Duration("drain", 30*time.Second, "how long to wait for the embedding consumer to finish")
	flag.Parse()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	ctx := context.Background()

	// The consumer must be running before ingest publishes, or the
	// gochannel messages have no subscriber.
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}

	count, err := container.IngestService.IngestDir(ctx, *dataDir)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}
	log.Printf("Ingested %d documents from %s", count, *dataDir)

	// gochannel delivery is async; give the consumer time to embed.
	log.Printf("Waiting %s for embedding to drain...", *drain)
	time.Sleep(*drain)

	log.Println("✅ Ingestion completed")
}
